package domain

import (
	"errors"
)

var (
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidTransition is returned when a lifecycle event is not allowed
	// in the job's current state
	ErrInvalidTransition = errors.New("invalid job state transition")

	// ErrActorNotAllowed is returned when the event exists for the current
	// state but the caller's role may not fire it
	ErrActorNotAllowed = errors.New("actor role not allowed for this transition")

	ErrJobNotAcceptingApplications = errors.New("job is not accepting applications")
	ErrApplicationNotFound         = errors.New("application not found for job")
	ErrDuplicateApplication        = errors.New("cleaner already applied to this job")

	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrExceedsOriginalPayment = errors.New("refund exceeds original payment amount")
	ErrJobNotSettled          = errors.New("no completed payment entry for job")
	ErrLedgerEntryNotFound    = errors.New("ledger entry not found")

	ErrJobNotCompleted       = errors.New("job is not completed")
	ErrDuplicateReview       = errors.New("review already submitted for this job and role")
	ErrRatingOutOfRange      = errors.New("rating must be between 1 and 5")
	ErrResponseAlreadyExists = errors.New("review already has a response")
	ErrNotSubject            = errors.New("caller is not the subject of this review")
	ErrReviewNotFound        = errors.New("review not found")
)
