package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
)

const quizSheetTemplateName = "quiz-sheet.md.go.tmpl"

//go:embed templates/quiz-sheet.md.go.tmpl
var fallbackQuizSheetTemplate string

// QuizSheet is the data of an exported study sheet.
type QuizSheet struct {
	Quiz       quiz.Quiz
	Entities   []EntityGroup
	ExportedAt time.Time
}

// EntityGroup lists the key entities of one type.
type EntityGroup struct {
	Type  string
	Names []string
}

func NewQuizSheet(q quiz.Quiz, exportedAt time.Time) QuizSheet {
	sheet := QuizSheet{
		Quiz:       q,
		ExportedAt: exportedAt,
	}
	for _, entityType := range q.EntityTypes() {
		names := q.KeyEntities[entityType]
		if len(names) == 0 {
			continue
		}
		sheet.Entities = append(sheet.Entities, EntityGroup{Type: entityType, Names: names})
	}
	return sheet
}

// WriteQuizSheet renders sheet as markdown with the template at templatePath,
// or the embedded one.
func WriteQuizSheet(output io.Writer, templatePath string, sheet QuizSheet) error {
	tmpl, err := parseTemplateWithFallback(templatePath, quizSheetTemplateName, fallbackQuizSheetTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, sheet); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
