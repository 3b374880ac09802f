package llm

import "errors"

var (
	// ErrServiceUnavailable indicates the completion endpoint is unreachable.
	ErrServiceUnavailable = errors.New("completion service unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
