package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSearchRequestFailed wraps any failure of the search endpoint:
	// transport errors, non-2xx statuses, undecodable bodies and breaker
	// rejections.
	ErrSearchRequestFailed = errors.New("search request failed")

	// ErrRecommendationRequestFailed is the recommend_books/recommend_movies
	// counterpart of ErrSearchRequestFailed.
	ErrRecommendationRequestFailed = errors.New("recommendation request failed")
)

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d from %s", e.Code, e.URL)
}

func wrap(kind error, op string, err error) error {
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}
