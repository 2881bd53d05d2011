package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Transition event kinds consumed by the notification worker
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

// Event is the message published for every committed transition.
type Event struct {
	Kind        string    `json:"kind"`
	JobID       string    `json:"job_id"`
	JobTitle    string    `json:"job_title,omitempty"`
	ActorID     string    `json:"actor_id"`
	RecipientID string    `json:"recipient_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// publishEvent is fire-and-forget: the transition has already committed, so
// a publish failure is logged and swallowed, never propagated to the caller.
func (s *Service) publishEvent(ctx context.Context, event Event) {
	if s.publisher == nil {
		return
	}

	event.OccurredAt = time.Now().UTC()

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal transition event",
			slog.String("kind", event.Kind),
			slog.String("job_id", event.JobID),
			slog.Any("error", err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, body, "application/json"); err != nil {
		s.logger.Error("Failed to publish transition event",
			slog.String("kind", event.Kind),
			slog.String("job_id", event.JobID),
			slog.Any("error", err),
		)
	}
}
