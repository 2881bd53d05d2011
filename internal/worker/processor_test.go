package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cleanconnect/platform-be/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotification(t *testing.T) {
	tests := []struct {
		name      string
		event     domain.Event
		wantTitle string
		wantBody  string
		wantErr   error
	}{
		{
			name: "applied uses the job title",
			event: domain.Event{
				Kind:     domain.EventJobApplied,
				JobID:    "5a1f0000-0000-0000-0000-000000000001",
				JobTitle: "Deep clean floors 3-5",
			},
			wantTitle: "New application",
			wantBody:  `A cleaner applied to "Deep clean floors 3-5".`,
		},
		{
			name: "falls back to job id when title is missing",
			event: domain.Event{
				Kind:  domain.EventJobAssigned,
				JobID: "5a1f0000-0000-0000-0000-000000000002",
			},
			wantTitle: "Job assigned",
			wantBody:  `You have been assigned to "5a1f0000-0000-0000-0000-000000000002".`,
		},
		{
			name: "dispute carries the reason",
			event: domain.Event{
				Kind:     domain.EventJobDisputed,
				JobID:    "5a1f0000-0000-0000-0000-000000000003",
				JobTitle: "Turnover clean",
				Detail:   "rooms 301-305 not cleaned to standard",
			},
			wantTitle: "Dispute raised",
			wantBody:  `A dispute was raised on "Turnover clean": rooms 301-305 not cleaned to standard`,
		},
		{
			name: "review submitted",
			event: domain.Event{
				Kind:     domain.EventReviewSubmitted,
				JobID:    "5a1f0000-0000-0000-0000-000000000004",
				JobTitle: "Turnover clean",
			},
			wantTitle: "New review",
			wantBody:  `You received a review on "Turnover clean".`,
		},
		{
			name: "unknown kind",
			event: domain.Event{
				Kind:  "job.teleported",
				JobID: "5a1f0000-0000-0000-0000-000000000005",
			},
			wantErr: domain.ErrUnknownEventKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body, err := renderNotification(tt.event)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestProcessEvent_MissingRecipient(t *testing.T) {
	w := &Worker{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	msg := &domain.EventMessage{
		Event: domain.Event{
			Kind:  domain.EventJobApplied,
			JobID: "5a1f0000-0000-0000-0000-000000000006",
		},
	}

	err := w.processEvent(context.Background(), msg)

	require.ErrorIs(t, err, domain.ErrNoRecipient)
	assert.False(t, w.shouldRequeueEvent(err))
}

func TestProcessEvent_UnassignedCancellation(t *testing.T) {
	w := &Worker{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	msg := &domain.EventMessage{
		Event: domain.Event{
			Kind:     domain.EventJobCancelled,
			JobID:    "5a1f0000-0000-0000-0000-000000000007",
			JobTitle: "Turnover clean",
		},
	}

	require.NoError(t, w.processEvent(context.Background(), msg))
}

func TestShouldRequeueEvent(t *testing.T) {
	w := &Worker{}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown kind is dropped",
			err:  domain.ErrUnknownEventKind,
			want: false,
		},
		{
			name: "invalid payload is dropped",
			err:  domain.ErrInvalidPayload,
			want: false,
		},
		{
			name: "missing recipient is dropped",
			err:  domain.ErrNoRecipient,
			want: false,
		},
		{
			name: "transient failure is requeued",
			err:  domain.NewRetryableError(errors.New("connection refused")),
			want: true,
		},
		{
			name: "unclassified error is dropped",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldRequeueEvent(tt.err))
		})
	}
}
