package quiz

import (
	"errors"
	"regexp"
	"strings"
)

// wikiURLPattern matches a Wikipedia article URL with an optional language subdomain
// such as "en", "simple" or "zh-yue".
var wikiURLPattern = regexp.MustCompile(`^https?://(?:[a-z]{2,}(?:-[a-z]+)*\.)?wikipedia\.org/wiki/[\w\-()%]+$`)

var (
	ErrURLRequired    = errors.New("URL is required.")
	ErrInvalidWikiURL = errors.New("Please enter a valid Wikipedia article URL (e.g., https://en.wikipedia.org/wiki/AI).")
)

// IsValidWikiURL reports whether url is a Wikipedia article URL.
func IsValidWikiURL(url string) bool {
	return wikiURLPattern.MatchString(url)
}

// ValidateURL trims raw and returns it if it is a Wikipedia article URL.
func ValidateURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", ErrURLRequired
	}
	if !IsValidWikiURL(url) {
		return "", ErrInvalidWikiURL
	}
	return url, nil
}
