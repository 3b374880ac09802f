package domain

import "errors"

var (
	// ErrInvalidInput indicates empty or whitespace-only user text.
	ErrInvalidInput = errors.New("message text is empty")

	// ErrNoData indicates a prompt was requested before any transcript exists.
	ErrNoData = errors.New("no business information collected yet")

	// ErrResearchFailed indicates the research run failed after retries.
	ErrResearchFailed = errors.New("research run failed")

	// ErrMissingResult indicates prompt composition was attempted without
	// a research result.
	ErrMissingResult = errors.New("no research result available")

	// ErrResearchInFlight indicates another research run already holds the
	// session.
	ErrResearchInFlight = errors.New("research already in progress")
)
