// Package quiz holds the quiz data model and the local state machines used to play it.
package quiz

import (
	"fmt"
	"slices"
	"time"
)

// Record is a lightweight history entry without question bodies.
type Record struct {
	ID          int       `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	URL         string    `json:"url" yaml:"url"`
	GeneratedAt time.Time `json:"date_generated" yaml:"date_generated"`
}

// Quiz is the full generated artifact returned by the quiz API.
type Quiz struct {
	ID            int                 `json:"id" yaml:"id"`
	Title         string              `json:"title" yaml:"title"`
	URL           string              `json:"url,omitempty" yaml:"url,omitempty"`
	Summary       string              `json:"summary" yaml:"summary"`
	KeyEntities   map[string][]string `json:"key_entities,omitempty" yaml:"key_entities,omitempty"`
	Sections      []string            `json:"sections,omitempty" yaml:"sections,omitempty"`
	RelatedTopics []string            `json:"related_topics,omitempty" yaml:"related_topics,omitempty"`
	Questions     []Question          `json:"quiz" yaml:"quiz"`
	Flashcards    []Flashcard         `json:"flashcards,omitempty" yaml:"flashcards,omitempty"`
	CreatedAt     *time.Time          `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Record builds the history entry for a quiz generated from url at generatedAt.
func (q Quiz) Record(url string, generatedAt time.Time) Record {
	return Record{
		ID:          q.ID,
		Title:       q.Title,
		URL:         url,
		GeneratedAt: generatedAt,
	}
}

// EntityTypes returns the key entity types in a stable order.
func (q Quiz) EntityTypes() []string {
	types := make([]string, 0, len(q.KeyEntities))
	for entityType := range q.KeyEntities {
		types = append(types, entityType)
	}
	slices.Sort(types)
	return types
}

// Question is a single multiple choice question.
// Options are displayed in order and lettered A, B, C...
type Question struct {
	Question    string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Answer      string   `json:"answer" yaml:"answer"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	return slices.Contains(q.Options, option)
}

// IsCorrect reports whether option is exactly the correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// Validate checks that the answer is one of the options.
func (q Question) Validate() error {
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options", q.Question)
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("answer %q of question %q is not one of its options", q.Answer, q.Question)
	}
	return nil
}

// Flashcard is a key term and its definition.
type Flashcard struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
}

// OptionLetter returns the answer letter for the option at index i.
func OptionLetter(i int) string {
	if i < 0 || i >= 26 {
		return fmt.Sprintf("%d", i+1)
	}
	return string(rune('A' + i))
}

// OptionIndex parses an answer letter (case-insensitive) or 1-based number into an option index.
func OptionIndex(input string, optionCount int) (int, bool) {
	if input == "" {
		return 0, false
	}
	if len(input) == 1 {
		c := input[0]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
			fallthrough
		case c >= 'A' && c <= 'Z':
			i := int(c - 'A')
			return i, i < optionCount
		}
	}
	var n int
	if _, err := fmt.Sscanf(input, "%d", &n); err != nil || fmt.Sprint(n) != input {
		return 0, false
	}
	if n < 1 || n > optionCount {
		return 0, false
	}
	return n - 1, true
}

// Score is the number of correct answers out of the total questions.
type Score struct {
	Correct int `json:"correct" yaml:"correct"`
	Total   int `json:"total" yaml:"total"`
}

// Percent returns the accuracy rounded to the nearest integer.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Correct*200 + s.Total) / (s.Total * 2)
}

func (s Score) String() string {
	return fmt.Sprintf("%d / %d", s.Correct, s.Total)
}
