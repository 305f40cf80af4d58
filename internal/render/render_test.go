package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*Renderer, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})

	var buf bytes.Buffer
	return NewRenderer(&buf, DefaultTheme()), &buf
}

func sampleQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:      3,
		Title:   "Cat",
		URL:     "https://en.wikipedia.org/wiki/Cat",
		Summary: "The cat is a small domesticated carnivorous mammal.",
		KeyEntities: map[string][]string{
			"people":        {"Carl Linnaeus"},
			"organizations": {},
		},
		Sections:      []string{"Etymology", "Taxonomy"},
		RelatedTopics: []string{"Felidae", "Pet"},
		Questions: []quiz.Question{
			{
				Question:    "Which family do cats belong to?",
				Options:     []string{"Canidae", "Felidae", "Ursidae", "Mustelidae"},
				Answer:      "Felidae",
				Difficulty:  "easy",
				Explanation: "Cats are felids.",
			},
		},
		Flashcards: []quiz.Flashcard{
			{Term: "Felis catus", Definition: "The domestic cat"},
			{Term: "Purring", Definition: "A tonal buzzing sound"},
		},
	}
}

func TestRenderer_Quiz(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.Quiz(sampleQuiz())

	out := buf.String()
	assert.Contains(t, out, "Cat\n───\n")
	assert.Contains(t, out, "Topics: [Felidae] [Pet]")
	assert.Contains(t, out, "Sections: [Etymology] [Taxonomy]")
	assert.Contains(t, out, "people: Carl Linnaeus")
	assert.NotContains(t, out, "organizations:")
	assert.Contains(t, out, "Q1. Which family do cats belong to? [easy]")
	assert.Contains(t, out, " ✔ B. Felidae")
	assert.Contains(t, out, "   A. Canidae")
	assert.Contains(t, out, "Correct Answer: Felidae")
	assert.Contains(t, out, "Cats are felids.")
	assert.NotContains(t, out, "Score:")
}

func TestRenderer_Playback(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, p *quiz.Playback)
		contains    []string
		notContains []string
	}{
		{
			name: "quiz mode hides the answer",
			setup: func(t *testing.T, p *quiz.Playback) {
				require.NoError(t, p.Start())
			},
			contains:    []string{"(not answered)", "   B. Felidae"},
			notContains: []string{"Correct Answer:", "Cats are felids.", "✔"},
		},
		{
			name: "quiz mode marks the selected option",
			setup: func(t *testing.T, p *quiz.Playback) {
				require.NoError(t, p.Start())
				require.NoError(t, p.Answer(0, "Canidae"))
			},
			contains:    []string{" ● A. Canidae"},
			notContains: []string{"(not answered)"},
		},
		{
			name: "result mode grades the answers",
			setup: func(t *testing.T, p *quiz.Playback) {
				require.NoError(t, p.Start())
				require.NoError(t, p.Answer(0, "Canidae"))
				_, err := p.Grade()
				require.NoError(t, err)
			},
			contains: []string{" ✘ A. Canidae", " ✔ B. Felidae", "Cats are felids.", "Score: 0 / 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(t)
			p := quiz.NewPlayback(sampleQuiz())
			tt.setup(t, p)

			r.Playback(p)
			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRenderer_ActiveQuiz(t *testing.T) {
	r, buf := newTestRenderer(t)
	active, err := quiz.NewActiveQuiz(sampleQuiz())
	require.NoError(t, err)

	r.ActiveQuestion(active)
	r.ActiveFeedback(active)
	assert.Contains(t, buf.String(), "Question 1 of 1    Score: 0")
	assert.NotContains(t, buf.String(), "Correct!")

	buf.Reset()
	_, err = active.Select("Ursidae")
	require.NoError(t, err)
	r.ActiveQuestion(active)
	r.ActiveFeedback(active)
	out := buf.String()
	assert.Contains(t, out, " ✘ C. Ursidae")
	assert.Contains(t, out, " ✔ B. Felidae")
	assert.Contains(t, out, "❌ Incorrect")
	assert.Contains(t, out, "Cats are felids.")

	buf.Reset()
	r.ScoreBoard(quiz.Score{Correct: 2, Total: 3})
	assert.Equal(t, "\nQuiz Completed!\n2 / 3\n67% Accuracy\n", buf.String())
}

func TestRenderer_RateLimitPanel(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "server detail", message: "Rate limit exceeded: 2 per 1 hour", want: "Rate limit exceeded: 2 per 1 hour"},
		{name: "fallback", message: "", want: "You have reached the hourly limit for the Free Tier."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(t)
			r.RateLimitPanel(tt.message)

			out := buf.String()
			assert.Contains(t, out, "Whoa, Slow Down!")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Quota: 2 Quizzes / Hour")
		})
	}
}

func TestRenderer_HistoryTable(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r, buf := newTestRenderer(t)
		r.HistoryTable(nil, nil)
		assert.Contains(t, buf.String(), "No quizzes generated yet.")
	})

	t.Run("rows", func(t *testing.T) {
		r, buf := newTestRenderer(t)
		records := []quiz.Record{
			{ID: 2, Title: "Dog", URL: "https://en.wikipedia.org/wiki/Dog", GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
			{ID: 1, Title: "Cat", URL: "https://en.wikipedia.org/wiki/Cat"},
		}
		r.HistoryTable(records, func(id int) bool { return id == 1 })

		out := buf.String()
		assert.Contains(t, out, "Article Title")
		assert.Contains(t, out, "https://en.wikipedia.org/wiki/Dog")
		assert.Regexp(t, `(?m)^1\s+Cat\s+\S+\s+-\s+loading\.\.\.`, out)
		assert.NotRegexp(t, `(?m)^2\s+Dog.*loading`, out)
	})
}

func TestRenderer_Deck(t *testing.T) {
	r, buf := newTestRenderer(t)
	deck := quiz.NewDeck(sampleQuiz().Flashcards)

	r.Deck(deck)
	assert.NotContains(t, buf.String(), "The domestic cat")

	buf.Reset()
	deck.Flip(0)
	r.Deck(deck)
	out := buf.String()
	assert.Contains(t, out, " 1. Felis catus → The domestic cat")
	assert.Contains(t, out, " 2. Purring\n")
	assert.NotContains(t, out, "A tonal buzzing sound")
}

func TestRenderer_HelperText(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.HelperText("Paste a Wikipedia article URL.", nil)
	r.HelperText("Paste a Wikipedia article URL.", errors.New("URL is required."))
	assert.Equal(t, "Paste a Wikipedia article URL.\nURL is required.\n", buf.String())
}

func TestRenderer_StatusAlert(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.StatusAlert(VariantInfo, "Generating...")
	r.StatusAlert(VariantError, "Generation failed.")
	assert.Equal(t, "Generating...\nGeneration failed.\n", buf.String())
}
