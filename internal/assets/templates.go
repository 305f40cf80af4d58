// Package assets holds the embedded templates of exported study sheets.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join":   strings.Join,
		"letter": quiz.OptionLetter,
		"inc": func(i int) int {
			return i + 1
		},
	}
}

// parseTemplateWithFallback parses the template at templatePath, or the embedded
// fallback when the path is empty, missing or does not parse.
func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(templateFuncs()).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(templateFuncs()).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
