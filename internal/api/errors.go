package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// RateLimitError is returned when the quiz API rejects a request with HTTP 429.
type RateLimitError struct {
	Detail string
}

func (e *RateLimitError) Error() string {
	if e.Detail == "" {
		return "rate limited"
	}
	return "rate limited: " + e.Detail
}

// ResponseError is returned for any other non-2xx response.
type ResponseError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

// newResponseError builds the error for a non-2xx status from the raw body.
func newResponseError(statusCode int, body string) error {
	detail := parseDetail(body)
	if statusCode == http.StatusTooManyRequests {
		return &RateLimitError{Detail: detail}
	}
	return &ResponseError{
		StatusCode: statusCode,
		Detail:     detail,
		Body:       body,
	}
}

// parseDetail extracts the "detail" message of an error body.
// A detail that is not a string, such as a list of validation errors, is returned as raw JSON.
func parseDetail(body string) string {
	var decoded struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil || len(decoded.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(decoded.Detail, &detail); err == nil {
		return detail
	}
	return strings.TrimSpace(string(decoded.Detail))
}
