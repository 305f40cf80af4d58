package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		content     string
		writeFile   bool
		wantErr     string
		wantPDFName string
	}{
		{
			name:        "markdown file",
			fileName:    "cat.md",
			content:     "# Cat\n\n- A. Canidae\n- B. Felidae\n\n**Answer:** Felidae\n",
			writeFile:   true,
			wantPDFName: "cat.pdf",
		},
		{
			name:      "wrong extension",
			fileName:  "cat.txt",
			content:   "# Cat\n",
			writeFile: true,
			wantErr:   "input file must have .md extension",
		},
		{
			name:     "missing file",
			fileName: "missing.md",
			wantErr:  "os.ReadFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			markdownPath := filepath.Join(dir, tt.fileName)
			if tt.writeFile {
				require.NoError(t, os.WriteFile(markdownPath, []byte(tt.content), 0644))
			}

			got, err := ConvertMarkdownToPDF(markdownPath)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.wantPDFName), got)

			content, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.True(t, len(content) > 4 && string(content[:4]) == "%PDF")
		})
	}
}

func TestRender_RejectsNonPDFPath(t *testing.T) {
	err := Render([]byte("# Cat\n"), filepath.Join(t.TempDir(), "cat.md"))
	assert.ErrorContains(t, err, "output file must have .pdf extension")
}
