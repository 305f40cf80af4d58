// Package api is the HTTP client of the quiz generation service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/google/uuid"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000"
	DefaultTimeout = 120 * time.Second

	requestIDHeader = "X-Request-Id"
)

//go:generate mockgen -source=client.go -destination=../mocks/api/mock_client.go -package=mock_api

// Client defines the calls the quiz application makes to the quiz service
type Client interface {
	GenerateQuiz(ctx context.Context, url string) (quiz.Quiz, error)
	History(ctx context.Context) ([]quiz.Record, error)
	Quiz(ctx context.Context, id int) (quiz.Quiz, error)
}

type HTTPClient struct {
	httpClient *resty.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{
		httpClient: client,
	}
}

func (client *HTTPClient) Close() error {
	return client.httpClient.Close()
}

type generateQuizRequest struct {
	URL string `json:"url"`
}

// GenerateQuiz asks the service to generate a quiz from a Wikipedia article.
// A 429 response is returned as *RateLimitError.
func (client *HTTPClient) GenerateQuiz(ctx context.Context, url string) (quiz.Quiz, error) {
	var result quiz.Quiz
	if err := client.do(ctx, http.MethodPost, "/generate_quiz", nil, generateQuizRequest{URL: url}, &result); err != nil {
		return quiz.Quiz{}, fmt.Errorf("POST /generate_quiz > %w", err)
	}
	warnInvalidQuestions(result)
	return result, nil
}

// History returns the quizzes generated so far, most recent first.
func (client *HTTPClient) History(ctx context.Context) ([]quiz.Record, error) {
	var result []quiz.Record
	if err := client.do(ctx, http.MethodGet, "/history", nil, nil, &result); err != nil {
		return nil, fmt.Errorf("GET /history > %w", err)
	}
	return result, nil
}

// Quiz fetches the full quiz by its ID.
func (client *HTTPClient) Quiz(ctx context.Context, id int) (quiz.Quiz, error) {
	var result quiz.Quiz
	pathParams := map[string]string{"id": strconv.Itoa(id)}
	if err := client.do(ctx, http.MethodGet, "/quiz/{id}", pathParams, nil, &result); err != nil {
		return quiz.Quiz{}, fmt.Errorf("GET /quiz/%d > %w", id, err)
	}
	warnInvalidQuestions(result)
	return result, nil
}

// warnInvalidQuestions logs questions whose answer is not one of the options.
// Such a question can never be answered correctly, but the quiz is still returned.
func warnInvalidQuestions(q quiz.Quiz) {
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			slog.Default().Warn("invalid question in quiz", "quiz_id", q.ID, "index", i, "error", err)
		}
	}
}

func (client *HTTPClient) do(
	ctx context.Context,
	method string,
	path string,
	pathParams map[string]string,
	body any,
	result any,
) error {
	requestID := uuid.NewString()
	request := client.httpClient.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID).
		SetResult(result)
	if pathParams != nil {
		request.SetPathParams(pathParams)
	}
	if body != nil {
		request.SetBody(body)
	}

	startedAt := time.Now()
	response, err := request.Execute(method, path)
	if err != nil {
		return fmt.Errorf("httpClient.Execute > %w", err)
	}
	slog.Default().Debug("quiz api response",
		"method", method,
		"path", path,
		"status", response.StatusCode(),
		"request_id", requestID,
		"elapsed", time.Since(startedAt),
	)
	if response.IsError() {
		return newResponseError(response.StatusCode(), response.String())
	}
	return nil
}
