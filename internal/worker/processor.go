package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleanconnect/platform-be/internal/worker/domain"
	"github.com/google/uuid"
)

// processEvent turns one transition event into its notification side effects:
// an in-app notification row for the affected party, plus an ops email for
// disputes.
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	event := msg.Event

	w.logger.Info("Processing event",
		slog.String("kind", event.Kind),
		slog.String("job_id", event.JobID),
		slog.String("worker_id", w.workerID),
	)

	title, body, err := renderNotification(event)
	if err != nil {
		return err
	}

	if event.RecipientID == "" {
		// A job cancelled before assignment has no counterparty to notify
		if event.Kind == domain.EventJobCancelled {
			w.logger.Debug("Cancellation before assignment, no one to notify",
				slog.String("job_id", event.JobID),
			)
			return nil
		}
		return fmt.Errorf("%s event for job %s: %w", event.Kind, event.JobID, domain.ErrNoRecipient)
	}

	notification := &domain.Notification{
		NotificationID: uuid.New().String(),
		RecipientID:    event.RecipientID,
		JobID:          event.JobID,
		Kind:           event.Kind,
		Title:          title,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}

	if err := w.storage.InsertNotification(ctx, notification); err != nil {
		// Database failures are transient, requeue and retry
		return domain.NewRetryableError(err)
	}

	// Disputes page the operations inbox so an admin picks them up
	if event.Kind == domain.EventJobDisputed && w.mailer != nil && w.opsEmail != "" {
		subject := fmt.Sprintf("Dispute raised on job %s", event.JobID)
		if mailErr := w.mailer.Send(w.opsEmail, subject, body); mailErr != nil {
			// The notification row is already committed; losing the email is
			// preferable to double-inserting on redelivery
			w.logger.Error("Failed to email ops about dispute",
				slog.String("job_id", event.JobID),
				slog.String("error", mailErr.Error()),
			)
		}
	}

	return nil
}

// renderNotification maps an event kind onto notification copy
func renderNotification(event domain.Event) (title, body string, err error) {
	jobLabel := event.JobTitle
	if jobLabel == "" {
		jobLabel = event.JobID
	}

	switch event.Kind {
	case domain.EventJobApplied:
		title = "New application"
		body = fmt.Sprintf("A cleaner applied to %q.", jobLabel)

	case domain.EventJobAssigned:
		title = "Job assigned"
		body = fmt.Sprintf("You have been assigned to %q.", jobLabel)

	case domain.EventJobStarted:
		title = "Work started"
		body = fmt.Sprintf("Work on %q has started.", jobLabel)

	case domain.EventJobCompleted:
		title = "Job completed"
		body = fmt.Sprintf("%q was marked completed and payment was settled.", jobLabel)

	case domain.EventJobDisputed:
		title = "Dispute raised"
		body = fmt.Sprintf("A dispute was raised on %q: %s", jobLabel, event.Detail)

	case domain.EventJobResolved:
		title = "Dispute resolved"
		body = fmt.Sprintf("The dispute on %q was resolved: %s", jobLabel, event.Detail)

	case domain.EventJobCancelled:
		title = "Job cancelled"
		body = fmt.Sprintf("%q was cancelled.", jobLabel)

	case domain.EventReviewSubmitted:
		title = "New review"
		body = fmt.Sprintf("You received a review on %q.", jobLabel)

	default:
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnknownEventKind, event.Kind)
	}

	return title, body, nil
}
