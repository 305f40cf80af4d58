package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"golang.org/x/sync/singleflight"
)

var (
	ErrDetailsFailed = errors.New("Failed to fetch quiz details.")
	// ErrStaleResponse is returned when a lookup finished after its modal was
	// closed, replaced by another lookup, or the tab was closed.
	ErrStaleResponse = errors.New("stale quiz details response")
	ErrTabClosed     = errors.New("history tab is closed")
)

// HistorySource provides the history list rendered by the History tab.
type HistorySource interface {
	History() []quiz.Record
}

var _ HistorySource = (*Shell)(nil)

// HistoryTab lists past generations and fetches the full quiz of a row into a modal.
// Lookups of different rows run concurrently, each with its own loading flag.
type HistoryTab struct {
	source HistorySource
	client api.Client
	logger *slog.Logger
	group  singleflight.Group

	lifetime context.Context
	cancel   context.CancelFunc

	mu         sync.Mutex
	loading    map[int]int
	closed     bool
	modalOpen  bool
	modalSeq   uint64
	selected   *quiz.Quiz
	modalError error
}

func NewHistoryTab(source HistorySource, client api.Client) *HistoryTab {
	lifetime, cancel := context.WithCancel(context.Background())
	return &HistoryTab{
		source:   source,
		client:   client,
		logger:   slog.Default(),
		lifetime: lifetime,
		cancel:   cancel,
		loading:  make(map[int]int),
	}
}

// Records returns the rows of the tab.
func (t *HistoryTab) Records() []quiz.Record {
	return t.source.History()
}

// Details opens the modal for quiz id and fetches it.
// Concurrent lookups for the same id share one request.
func (t *HistoryTab) Details(ctx context.Context, id int) (quiz.Quiz, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return quiz.Quiz{}, ErrTabClosed
	}
	t.loading[id]++
	t.modalOpen = true
	t.modalSeq++
	seq := t.modalSeq
	t.selected = nil
	t.modalError = nil
	t.mu.Unlock()

	result := t.group.DoChan(strconv.Itoa(id), func() (any, error) {
		return t.client.Quiz(t.lifetime, id)
	})

	var (
		details quiz.Quiz
		err     error
	)
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-t.lifetime.Done():
		err = t.lifetime.Err()
	case res := <-result:
		err = res.Err
		if err == nil {
			details = res.Val.(quiz.Quiz)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading[id]--
	if t.loading[id] <= 0 {
		delete(t.loading, id)
	}
	if t.closed || seq != t.modalSeq {
		return details, ErrStaleResponse
	}

	if err != nil {
		t.logger.Error("Failed to fetch quiz details", "id", id, "error", err)
		t.modalOpen = false
		t.selected = nil
		t.modalError = ErrDetailsFailed
		return quiz.Quiz{}, fmt.Errorf("%w %w", ErrDetailsFailed, err)
	}
	t.selected = &details
	return details, nil
}

// IsLoading reports whether a lookup for row id is pending.
func (t *HistoryTab) IsLoading(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading[id] > 0
}

func (t *HistoryTab) ModalOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modalOpen
}

// Selected returns the quiz shown in the modal.
func (t *HistoryTab) Selected() (quiz.Quiz, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return quiz.Quiz{}, false
	}
	return *t.selected, true
}

// ModalError returns the error of the last failed lookup.
func (t *HistoryTab) ModalError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modalError
}

// CloseModal clears the selection. A lookup still running for it is ignored when it finishes.
func (t *HistoryTab) CloseModal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modalOpen = false
	t.modalSeq++
	t.selected = nil
}

// Close cancels every pending lookup of the tab.
func (t *HistoryTab) Close() {
	t.mu.Lock()
	t.closed = true
	t.modalOpen = false
	t.selected = nil
	t.mu.Unlock()
	t.cancel()
}
