package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeck_FlipIsExclusive(t *testing.T) {
	d := NewDeck([]Flashcard{
		{Term: "A", Definition: "first"},
		{Term: "B", Definition: "second"},
		{Term: "C", Definition: "third"},
	})
	_, ok := d.Active()
	assert.False(t, ok)
	assert.False(t, d.Dimmed(0))

	assert.True(t, d.Flip(0))
	assert.True(t, d.Flipped(0))
	assert.True(t, d.Dimmed(1))
	assert.False(t, d.Dimmed(0))

	assert.True(t, d.Flip(1))
	assert.False(t, d.Flipped(0))
	assert.True(t, d.Flipped(1))
	assert.True(t, d.Dimmed(0))

	assert.True(t, d.Flip(1))
	assert.False(t, d.Flipped(1))
	_, ok = d.Active()
	assert.False(t, ok)

	assert.False(t, d.Flip(3))
	assert.False(t, d.Flip(-1))
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{name: "answer in options", question: Question{Question: "q", Options: []string{"a", "b"}, Answer: "b"}},
		{name: "answer missing", question: Question{Question: "q", Options: []string{"a", "b"}, Answer: "c"}, wantErr: true},
		{name: "no options", question: Question{Question: "q", Answer: "c"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOptionIndex(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{input: "A", want: 0, wantOK: true},
		{input: "c", want: 2, wantOK: true},
		{input: "D", want: 3, wantOK: true},
		{input: "E", want: 4, wantOK: false},
		{input: "1", want: 0, wantOK: true},
		{input: "4", want: 3, wantOK: true},
		{input: "5", wantOK: false},
		{input: "0", wantOK: false},
		{input: "", wantOK: false},
		{input: "AB", wantOK: false},
		{input: "2x", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := OptionIndex(tt.input, 4)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
	assert.Equal(t, "A", OptionLetter(0))
	assert.Equal(t, "D", OptionLetter(3))
}

func TestQuiz_Record(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q := Quiz{
		ID:          7,
		Title:       "X",
		KeyEntities: map[string][]string{"people": {"Ada"}, "locations": {"London"}},
	}
	assert.Equal(t, Record{ID: 7, Title: "X", URL: "U", GeneratedAt: now}, q.Record("U", now))
	assert.Equal(t, []string{"locations", "people"}, q.EntityTypes())
}
