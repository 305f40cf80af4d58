package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:      3,
		Title:   "Cat",
		URL:     "https://en.wikipedia.org/wiki/Cat",
		Summary: "The cat is a small domesticated carnivorous mammal.",
		KeyEntities: map[string][]string{
			"people":    {"Carl Linnaeus"},
			"locations": {"Near East", "Egypt"},
			"empty":     {},
		},
		Sections:      []string{"Etymology", "Taxonomy"},
		RelatedTopics: []string{"Felidae"},
		Questions: []quiz.Question{
			{
				Question:    "Which family do cats belong to?",
				Options:     []string{"Canidae", "Felidae"},
				Answer:      "Felidae",
				Difficulty:  "easy",
				Explanation: "Cats are felids.",
			},
		},
		Flashcards: []quiz.Flashcard{
			{Term: "Felis catus", Definition: "The domestic cat"},
		},
	}
}

func TestNewQuizSheet(t *testing.T) {
	exportedAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	sheet := NewQuizSheet(sheetQuiz(), exportedAt)

	assert.Equal(t, []EntityGroup{
		{Type: "locations", Names: []string{"Near East", "Egypt"}},
		{Type: "people", Names: []string{"Carl Linnaeus"}},
	}, sheet.Entities)
	assert.Equal(t, exportedAt, sheet.ExportedAt)
}

func TestWriteQuizSheet(t *testing.T) {
	tests := []struct {
		name         string
		templatePath func(t *testing.T) string
		contains     []string
		notContains  []string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `Custom: {{ .Quiz.Title }} {{ range $i, $q := .Quiz.Questions }}{{ inc $i }}{{ letter $i }}{{ end }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			},
			contains:    []string{"Custom: Cat 1A"},
			notContains: []string{"## Questions"},
		},
		{
			name: "uses embedded template without a path",
			templatePath: func(t *testing.T) string {
				return ""
			},
			contains: []string{
				"# Cat\n",
				"Source: https://en.wikipedia.org/wiki/Cat",
				"**Sections:** Etymology, Taxonomy",
				"**Related topics:** Felidae",
				"- **locations:** Near East, Egypt",
				"- **people:** Carl Linnaeus",
				"### 1. Which family do cats belong to?",
				"_Difficulty: easy_",
				"- A. Canidae\n- B. Felidae",
				"**Answer:** Felidae",
				"Cats are felids.",
				"- **Felis catus**: The domestic cat",
				"_Exported on 2024-05-01_",
			},
			notContains: []string{"empty"},
		},
		{
			name: "uses embedded template when file doesn't exist",
			templatePath: func(t *testing.T) string {
				return "/non/existent/invalid.md.go.tmpl"
			},
			contains: []string{"## Questions"},
		},
		{
			name: "uses embedded template when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			},
			contains:    []string{"## Questions"},
			notContains: []string{"Bad:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sheet := NewQuizSheet(sheetQuiz(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

			require.NoError(t, WriteQuizSheet(&buf, tt.templatePath(t), sheet))
			got := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestWriteQuizSheet_ExecuteError(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .Missing.Field }}`), 0644))

	var buf bytes.Buffer
	err := WriteQuizSheet(&buf, templatePath, NewQuizSheet(sheetQuiz(), time.Now()))
	assert.ErrorContains(t, err, "tmpl.Execute()")
}
