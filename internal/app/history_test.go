package app

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_api "github.com/at-ishikawa/wikiquiz/internal/mocks/api"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type staticHistory []quiz.Record

func (h staticHistory) History() []quiz.Record {
	return h
}

func TestHistoryTab_Details(t *testing.T) {
	tests := []struct {
		name      string
		quizErr   error
		wantErr   error
		wantOpen  bool
		wantQuiz  bool
		wantModal error
	}{
		{
			name:     "success opens the modal",
			wantOpen: true,
			wantQuiz: true,
		},
		{
			name:      "failure closes the modal",
			quizErr:   errors.New("response error 404: Quiz not found"),
			wantErr:   ErrDetailsFailed,
			wantModal: ErrDetailsFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_api.NewMockClient(ctrl)
			tab := NewHistoryTab(staticHistory(existingHistory), client)
			defer tab.Close()

			details := quiz.Quiz{ID: 1, Title: "Cat"}
			client.EXPECT().Quiz(gomock.Any(), 1).Return(details, tt.quizErr)

			got, err := tab.Details(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, details, got)
			}

			assert.Equal(t, tt.wantOpen, tab.ModalOpen())
			selected, ok := tab.Selected()
			assert.Equal(t, tt.wantQuiz, ok)
			if tt.wantQuiz {
				assert.Equal(t, details, selected)
			}
			assert.Equal(t, tt.wantModal, tab.ModalError())
			assert.False(t, tab.IsLoading(1))
		})
	}
}

func TestHistoryTab_ConcurrentRowsHaveOwnLoadingFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)
	tab := NewHistoryTab(staticHistory(existingHistory), client)
	defer tab.Close()

	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})
	client.EXPECT().Quiz(gomock.Any(), 1).DoAndReturn(func(ctx context.Context, id int) (quiz.Quiz, error) {
		close(firstStarted)
		<-releaseFirst
		return quiz.Quiz{}, errors.New("boom")
	})
	client.EXPECT().Quiz(gomock.Any(), 2).Return(quiz.Quiz{ID: 2, Title: "Dog"}, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := tab.Details(context.Background(), 1)
		firstDone <- err
	}()
	<-firstStarted
	assert.True(t, tab.IsLoading(1))
	assert.False(t, tab.IsLoading(2))

	got, err := tab.Details(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Dog", got.Title)
	assert.True(t, tab.IsLoading(1))
	assert.False(t, tab.IsLoading(2))

	close(releaseFirst)
	assert.ErrorIs(t, <-firstDone, ErrStaleResponse)
	assert.False(t, tab.IsLoading(1))

	// the older failure does not affect the row opened later
	selected, ok := tab.Selected()
	assert.True(t, ok)
	assert.Equal(t, "Dog", selected.Title)
	assert.NoError(t, tab.ModalError())
}

func TestHistoryTab_CloseModalIgnoresLateResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)
	tab := NewHistoryTab(staticHistory(existingHistory), client)
	defer tab.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().Quiz(gomock.Any(), 1).DoAndReturn(func(ctx context.Context, id int) (quiz.Quiz, error) {
		close(started)
		<-release
		return quiz.Quiz{ID: 1, Title: "Cat"}, nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := tab.Details(context.Background(), 1)
		done <- err
	}()
	<-started
	tab.CloseModal()
	close(release)

	assert.ErrorIs(t, <-done, ErrStaleResponse)
	assert.False(t, tab.ModalOpen())
	_, ok := tab.Selected()
	assert.False(t, ok)
}

func TestHistoryTab_CloseCancelsPendingLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)
	tab := NewHistoryTab(staticHistory(existingHistory), client)

	started := make(chan struct{})
	client.EXPECT().Quiz(gomock.Any(), 1).DoAndReturn(func(ctx context.Context, id int) (quiz.Quiz, error) {
		close(started)
		<-ctx.Done()
		return quiz.Quiz{}, ctx.Err()
	})

	done := make(chan error, 1)
	go func() {
		_, err := tab.Details(context.Background(), 1)
		done <- err
	}()
	<-started
	tab.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStaleResponse)
	case <-time.After(time.Second):
		t.Fatal("lookup was not canceled")
	}

	_, err := tab.Details(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTabClosed)
}

func TestHistoryTab_Records(t *testing.T) {
	tab := NewHistoryTab(staticHistory(existingHistory), nil)
	defer tab.Close()
	assert.Equal(t, existingHistory, tab.Records())
}
