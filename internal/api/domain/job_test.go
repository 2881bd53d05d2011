package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextState(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		event   string
		role    string
		want    string
		wantErr error
	}{
		{
			name:  "first application moves job out of posted",
			from:  JobStatePosted,
			event: EventApplicationSubmitted,
			role:  RoleCleaner,
			want:  JobStateApplicationsReceived,
		},
		{
			name:  "further applications keep job accepting",
			from:  JobStateApplicationsReceived,
			event: EventApplicationSubmitted,
			role:  RoleCleaner,
			want:  JobStateApplicationsReceived,
		},
		{
			name:  "hotel accepts an application",
			from:  JobStateApplicationsReceived,
			event: EventApplicationAccepted,
			role:  RoleHotel,
			want:  JobStateAssigned,
		},
		{
			name:  "cleaner starts work",
			from:  JobStateAssigned,
			event: EventWorkStarted,
			role:  RoleCleaner,
			want:  JobStateInProgress,
		},
		{
			name:  "cleaner completes work",
			from:  JobStateInProgress,
			event: EventWorkCompleted,
			role:  RoleCleaner,
			want:  JobStateCompleted,
		},
		{
			name:  "hotel cancels a posted job",
			from:  JobStatePosted,
			event: EventCancel,
			role:  RoleHotel,
			want:  JobStateCancelled,
		},
		{
			name:  "hotel cancels after applications arrived",
			from:  JobStateApplicationsReceived,
			event: EventCancel,
			role:  RoleHotel,
			want:  JobStateCancelled,
		},
		{
			name:  "hotel cancels an assigned job",
			from:  JobStateAssigned,
			event: EventCancel,
			role:  RoleHotel,
			want:  JobStateCancelled,
		},
		{
			name:  "hotel disputes in-progress work",
			from:  JobStateInProgress,
			event: EventDisputeRaised,
			role:  RoleHotel,
			want:  JobStateDisputed,
		},
		{
			name:  "cleaner disputes a completed job",
			from:  JobStateCompleted,
			event: EventDisputeRaised,
			role:  RoleCleaner,
			want:  JobStateDisputed,
		},
		{
			name:    "cannot cancel in-progress work",
			from:    JobStateInProgress,
			event:   EventCancel,
			role:    RoleHotel,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cannot complete before starting",
			from:    JobStateAssigned,
			event:   EventWorkCompleted,
			role:    RoleCleaner,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cannot apply to an assigned job",
			from:    JobStateAssigned,
			event:   EventApplicationSubmitted,
			role:    RoleCleaner,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cancelled is terminal",
			from:    JobStateCancelled,
			event:   EventApplicationSubmitted,
			role:    RoleCleaner,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "dispute resolution never goes through NextState",
			from:    JobStateDisputed,
			event:   EventDisputeResolved,
			role:    RoleAdmin,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cleaner may not accept applications",
			from:    JobStateApplicationsReceived,
			event:   EventApplicationAccepted,
			role:    RoleCleaner,
			wantErr: ErrActorNotAllowed,
		},
		{
			name:    "hotel may not start work",
			from:    JobStateAssigned,
			event:   EventWorkStarted,
			role:    RoleHotel,
			wantErr: ErrActorNotAllowed,
		},
		{
			name:    "admin may not complete work",
			from:    JobStateInProgress,
			event:   EventWorkCompleted,
			role:    RoleAdmin,
			wantErr: ErrActorNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextState(tt.from, tt.event, tt.role)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Every (state, event, role) triple outside the transition table must be
// rejected without mutating anything.
func TestNextState_OffTableExhaustive(t *testing.T) {
	states := []string{
		JobStatePosted, JobStateApplicationsReceived, JobStateAssigned,
		JobStateInProgress, JobStateCompleted, JobStateDisputed, JobStateCancelled,
	}
	events := []string{
		EventApplicationSubmitted, EventApplicationAccepted, EventWorkStarted,
		EventWorkCompleted, EventCancel, EventDisputeRaised, EventDisputeResolved,
	}
	roles := []string{RoleHotel, RoleCleaner, RoleAdmin}

	for _, state := range states {
		for _, event := range events {
			for _, role := range roles {
				got, err := NextState(state, event, role)
				if err != nil {
					assert.Empty(t, got)
					continue
				}

				rule, ok := transitions[transitionKey{state, event}]
				require.True(t, ok, "NextState accepted an edge missing from the table: %s + %s", state, event)
				assert.Equal(t, rule.to, got)
				assert.Contains(t, rule.roles, role)
			}
		}
	}
}

func TestResolveDisputeState(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		outcome string
		role    string
		want    string
		wantErr error
	}{
		{
			name:    "uphold finishes the job",
			from:    JobStateDisputed,
			outcome: DisputeOutcomeUphold,
			role:    RoleAdmin,
			want:    JobStateCompleted,
		},
		{
			name:    "refund cancels the job",
			from:    JobStateDisputed,
			outcome: DisputeOutcomeRefund,
			role:    RoleAdmin,
			want:    JobStateCancelled,
		},
		{
			name:    "only disputed jobs can be resolved",
			from:    JobStateCompleted,
			outcome: DisputeOutcomeUphold,
			role:    RoleAdmin,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "only admins resolve disputes",
			from:    JobStateDisputed,
			outcome: DisputeOutcomeRefund,
			role:    RoleHotel,
			wantErr: ErrActorNotAllowed,
		},
		{
			name:    "unknown outcome is rejected",
			from:    JobStateDisputed,
			outcome: "split",
			role:    RoleAdmin,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDisputeState(tt.from, tt.outcome, tt.role)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAcceptsApplications(t *testing.T) {
	assert.True(t, AcceptsApplications(JobStatePosted))
	assert.True(t, AcceptsApplications(JobStateApplicationsReceived))
	assert.False(t, AcceptsApplications(JobStateAssigned))
	assert.False(t, AcceptsApplications(JobStateInProgress))
	assert.False(t, AcceptsApplications(JobStateCompleted))
	assert.False(t, AcceptsApplications(JobStateDisputed))
	assert.False(t, AcceptsApplications(JobStateCancelled))
}
