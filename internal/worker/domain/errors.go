package domain

import "errors"

var (
	// ErrUnknownEventKind is returned for events the dispatcher has no handler for
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrInvalidPayload is returned when the event body JSON is malformed
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrNoRecipient is returned when an event that requires a recipient has none
	ErrNoRecipient = errors.New("event has no recipient")

	// ErrNotificationNotFound is returned when a notification row cannot be found
	ErrNotificationNotFound = errors.New("notification not found")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
