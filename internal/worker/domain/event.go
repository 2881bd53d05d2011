package domain

import "time"

// Event kinds emitted by the API service on committed job transitions
const (
	EventJobApplied      = "job.applied"
	EventJobAssigned     = "job.assigned"
	EventJobStarted      = "job.started"
	EventJobCompleted    = "job.completed"
	EventJobDisputed     = "job.disputed"
	EventJobResolved     = "job.resolved"
	EventJobCancelled    = "job.cancelled"
	EventReviewSubmitted = "review.submitted"
)

// Event mirrors the transition message published by the API service.
type Event struct {
	Kind        string    `json:"kind"`
	JobID       string    `json:"job_id"`
	JobTitle    string    `json:"job_title,omitempty"`
	ActorID     string    `json:"actor_id"`
	RecipientID string    `json:"recipient_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventMessage couples a decoded event to its broker delivery tag so worker
// goroutines can ACK/NACK the exact delivery they processed.
type EventMessage struct {
	Event       Event
	DeliveryTag uint64
}

// Notification is a persisted in-app notification row.
type Notification struct {
	NotificationID string     `db:"notification_id"`
	RecipientID    string     `db:"recipient_id"`
	JobID          string     `db:"job_id"`
	Kind           string     `db:"kind"`
	Title          string     `db:"title"`
	Body           string     `db:"body"`
	CreatedAt      time.Time  `db:"created_at"`
	ReadAt         *time.Time `db:"read_at"`
}
