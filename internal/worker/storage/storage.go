package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cleanconnect/platform-be/internal/worker/domain"
	"github.com/jmoiron/sqlx"
)

// Storage handles notification persistence for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// InsertNotification persists one in-app notification row
func (s *Storage) InsertNotification(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_id, job_id, kind, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		n.NotificationID,
		n.RecipientID,
		n.JobID,
		n.Kind,
		n.Title,
		n.Body,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	s.logger.Debug("Notification persisted",
		slog.String("notification_id", n.NotificationID),
		slog.String("recipient_id", n.RecipientID),
		slog.String("kind", n.Kind),
	)

	return nil
}

// ListUnreadByRecipient returns unread notifications, newest first
func (s *Storage) ListUnreadByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, recipient_id, job_id, kind, title, body, created_at, read_at
		FROM notifications
		WHERE recipient_id = $1 AND read_at IS NULL
		ORDER BY created_at DESC
	`

	notifications := []domain.Notification{}
	if err := s.db.SelectContext(ctx, &notifications, query, recipientID); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead stamps read_at on an unread notification
func (s *Storage) MarkRead(ctx context.Context, notificationID string) error {
	query := `
		UPDATE notifications
		SET read_at = NOW()
		WHERE notification_id = $1 AND read_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

// GetNotification fetches one notification by id
func (s *Storage) GetNotification(ctx context.Context, notificationID string) (*domain.Notification, error) {
	query := `
		SELECT notification_id, recipient_id, job_id, kind, title, body, created_at, read_at
		FROM notifications
		WHERE notification_id = $1
	`

	var n domain.Notification
	if err := s.db.GetContext(ctx, &n, query, notificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &n, nil
}
