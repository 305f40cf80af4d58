// Package testutil provides shared test helpers for config files and quiz fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file pointing at baseURL with an export directory under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	exportDir := filepath.Join(tmpDir, "exports")
	require.NoError(t, os.MkdirAll(exportDir, 0755))

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout: 5s
outputs:
  export_directory: %s
`,
		baseURL,
		exportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// QuizOption configures optional fields of a quiz fixture.
type QuizOption func(*quiz.Quiz)

func WithTitle(title string) QuizOption {
	return func(q *quiz.Quiz) {
		q.Title = title
	}
}

// WithoutQuestions removes every question of the fixture.
func WithoutQuestions() QuizOption {
	return func(q *quiz.Quiz) {
		q.Questions = nil
	}
}

// NewQuiz returns a quiz with two questions and two flashcards.
func NewQuiz(id int, opts ...QuizOption) quiz.Quiz {
	q := quiz.Quiz{
		ID:      id,
		Title:   "Alan Turing",
		URL:     "https://en.wikipedia.org/wiki/Alan_Turing",
		Summary: "Alan Turing was an English mathematician and computer scientist.",
		KeyEntities: map[string][]string{
			"people":        {"Alan Turing", "Alonzo Church"},
			"organizations": {"Bletchley Park"},
		},
		Sections:      []string{"Early life", "Career"},
		RelatedTopics: []string{"Cryptography", "Computability"},
		Questions: []quiz.Question{
			{
				Question:    "Where did Turing work during the Second World War?",
				Options:     []string{"Bletchley Park", "Los Alamos", "Bell Labs", "CERN"},
				Answer:      "Bletchley Park",
				Difficulty:  "easy",
				Explanation: "He worked at Bletchley Park on codebreaking.",
			},
			{
				Question:    "Which model of computation is named after him?",
				Options:     []string{"Lambda calculus", "Turing machine", "Register machine", "Petri net"},
				Answer:      "Turing machine",
				Difficulty:  "medium",
				Explanation: "The Turing machine was described in 1936.",
			},
		},
		Flashcards: []quiz.Flashcard{
			{Term: "Enigma", Definition: "A German cipher machine"},
			{Term: "Turing test", Definition: "A test of machine intelligence"},
		},
	}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}
