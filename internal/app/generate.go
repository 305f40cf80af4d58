package app

import (
	"context"
	"errors"
	"sync"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
)

// Generator is the part of the shell the Generate tab drives.
type Generator interface {
	BeginGeneration() (*Generation, error)
	Generating() bool
	LastQuiz() (quiz.Quiz, bool)
}

var _ Generator = (*Shell)(nil)

// GenerateTab validates the URL input and switches between the static
// display of the last quiz and its interactive play mode.
type GenerateTab struct {
	generator Generator

	mu         sync.Mutex
	inputError error
	playing    bool
}

func NewGenerateTab(generator Generator) *GenerateTab {
	return &GenerateTab{generator: generator}
}

// Validate checks raw and records the inline error for it.
// A valid URL clears the previous error.
func (t *GenerateTab) Validate(raw string) (string, error) {
	url, err := quiz.ValidateURL(raw)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputError = err
	return url, err
}

// Submit validates raw and runs a generation for it.
// No request is made for an invalid URL or while a generation is running.
func (t *GenerateTab) Submit(ctx context.Context, raw string) (quiz.Quiz, error) {
	url, generation, err := t.Prepare(raw)
	if err != nil {
		return quiz.Quiz{}, err
	}
	return generation.Run(ctx, url)
}

// Prepare validates raw and claims the generation slot without making a request.
// The caller runs the returned generation, usually in the background.
func (t *GenerateTab) Prepare(raw string) (string, *Generation, error) {
	url, err := t.Validate(raw)
	if err != nil {
		return "", nil, err
	}
	generation, err := t.generator.BeginGeneration()
	if err != nil {
		return "", nil, err
	}

	t.mu.Lock()
	t.playing = false
	t.mu.Unlock()
	return url, generation, nil
}

// InputError returns the inline validation error of the last input.
func (t *GenerateTab) InputError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inputError
}

// Play switches the last quiz to interactive mode.
func (t *GenerateTab) Play() (quiz.Quiz, bool) {
	q, ok := t.generator.LastQuiz()
	if !ok {
		return quiz.Quiz{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = true
	return q, true
}

// ExitPlay returns to the static display of the last quiz.
func (t *GenerateTab) ExitPlay() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = false
}

func (t *GenerateTab) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// FailureMessage returns the message shown to the user for a failed request:
// the server detail when there is one, otherwise fallback.
func FailureMessage(err error, fallback string) string {
	var responseErr *api.ResponseError
	if errors.As(err, &responseErr) && responseErr.Detail != "" {
		return responseErr.Detail
	}
	return fallback
}
