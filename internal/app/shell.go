// Package app holds the state of the quiz application: the shell that owns the
// history and the last generated quiz, and the tabs that read and update it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
)

// Tab is a top level view of the shell.
type Tab string

const (
	TabGenerate Tab = "generate"
	TabHistory  Tab = "history"
)

var (
	ErrGenerationInFlight = errors.New("a quiz generation is already running")
	ErrGenerationFailed   = errors.New("Generation failed.")
)

// Shell owns the application state shared by the tabs.
// It is safe for concurrent use, so a generation may run while the history is browsed.
type Shell struct {
	client api.Client
	clock  func() time.Time
	logger *slog.Logger

	mu            sync.Mutex
	activeTab     Tab
	historyLoaded bool
	history       []quiz.Record
	lastQuiz      *quiz.Quiz
	generating    bool
	rateLimited   bool
	rateLimitMsg  string
}

type ShellOption func(*Shell)

// WithClock overrides the time used for optimistic history records.
func WithClock(clock func() time.Time) ShellOption {
	return func(s *Shell) {
		s.clock = clock
	}
}

func WithLogger(logger *slog.Logger) ShellOption {
	return func(s *Shell) {
		s.logger = logger
	}
}

func NewShell(client api.Client, opts ...ShellOption) *Shell {
	shell := &Shell{
		client:    client,
		clock:     time.Now,
		logger:    slog.Default(),
		activeTab: TabGenerate,
	}
	for _, opt := range opts {
		opt(shell)
	}
	return shell
}

func (s *Shell) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Shell) SetActiveTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

// LoadHistory fetches the history the first time it is called on this shell.
// Later calls return without a request. A failure is only logged and leaves the history empty.
func (s *Shell) LoadHistory(ctx context.Context) {
	s.mu.Lock()
	if s.historyLoaded {
		s.mu.Unlock()
		return
	}
	s.historyLoaded = true
	s.mu.Unlock()

	records, err := s.client.History(ctx)
	if err != nil {
		s.logger.Error("Failed to load history", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = records
}

// RefreshHistory re-fetches the whole history and replaces the local list.
func (s *Shell) RefreshHistory(ctx context.Context) error {
	records, err := s.client.History(ctx)
	if err != nil {
		return fmt.Errorf("client.History > %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyLoaded = true
	s.history = records
	return nil
}

// History returns a copy of the history, most recent first.
func (s *Shell) History() []quiz.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// LastQuiz returns the quiz generated by the last successful generation.
func (s *Shell) LastQuiz() (quiz.Quiz, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastQuiz == nil {
		return quiz.Quiz{}, false
	}
	return *s.lastQuiz, true
}

func (s *Shell) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// RateLimit returns the server message of the last rate-limited generation
// until it is dismissed.
func (s *Shell) RateLimit() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rateLimitMsg, s.rateLimited
}

func (s *Shell) DismissRateLimit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateLimited = false
	s.rateLimitMsg = ""
}

// StartGeneration generates a quiz from url.
// On success the quiz becomes the last quiz and a record is prepended to the history
// without re-fetching it. The last quiz is hidden while the request runs; a rate-limited
// request restores it and only sets the rate-limit message.
func (s *Shell) StartGeneration(ctx context.Context, url string) (quiz.Quiz, error) {
	generation, err := s.BeginGeneration()
	if err != nil {
		return quiz.Quiz{}, err
	}
	return generation.Run(ctx, url)
}

// Generation is a generation that holds the in-flight slot of its shell.
type Generation struct {
	shell    *Shell
	previous *quiz.Quiz
	done     bool
}

// BeginGeneration claims the in-flight slot before any request is made,
// so a second trigger is rejected at once. Run releases the slot.
func (s *Shell) BeginGeneration() (*Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return nil, ErrGenerationInFlight
	}
	s.generating = true
	generation := &Generation{shell: s, previous: s.lastQuiz}
	s.lastQuiz = nil
	s.rateLimited = false
	s.rateLimitMsg = ""
	return generation, nil
}

// Run requests the quiz for url. It may be called once.
func (g *Generation) Run(ctx context.Context, url string) (quiz.Quiz, error) {
	s := g.shell
	s.mu.Lock()
	if g.done {
		s.mu.Unlock()
		return quiz.Quiz{}, ErrGenerationInFlight
	}
	g.done = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.generating = false
	}()

	generated, err := s.client.GenerateQuiz(ctx, url)
	if err != nil {
		var rateLimitErr *api.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.mu.Lock()
			s.rateLimited = true
			s.rateLimitMsg = rateLimitErr.Detail
			s.lastQuiz = g.previous
			s.mu.Unlock()
			return quiz.Quiz{}, err
		}

		s.logger.Error("Generation failed", "url", url, "error", err)
		return quiz.Quiz{}, fmt.Errorf("%w %w", ErrGenerationFailed, err)
	}

	record := generated.Record(url, s.clock())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuiz = &generated
	s.history = append([]quiz.Record{record}, s.history...)
	return generated, nil
}
