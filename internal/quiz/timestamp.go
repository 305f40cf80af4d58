package quiz

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order. The quiz service emits ISO 8601 timestamps
// that may lack a zone, which are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	type record Record
	var decoded struct {
		record
		GeneratedAt string `json:"date_generated"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("json.Unmarshal(record) > %w", err)
	}
	*r = Record(decoded.record)
	if decoded.GeneratedAt == "" {
		return nil
	}
	generatedAt, err := parseTimestamp(decoded.GeneratedAt)
	if err != nil {
		return fmt.Errorf("record %d date_generated > %w", decoded.ID, err)
	}
	r.GeneratedAt = generatedAt
	return nil
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	type plainQuiz Quiz
	var decoded struct {
		plainQuiz
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("json.Unmarshal(quiz) > %w", err)
	}
	*q = Quiz(decoded.plainQuiz)
	if decoded.CreatedAt == "" {
		return nil
	}
	createdAt, err := parseTimestamp(decoded.CreatedAt)
	if err != nil {
		return fmt.Errorf("quiz %d created_at > %w", decoded.ID, err)
	}
	q.CreatedAt = &createdAt
	return nil
}
