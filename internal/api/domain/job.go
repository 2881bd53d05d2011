package domain

// Job state constants
const (
	JobStatePosted               = "POSTED"
	JobStateApplicationsReceived = "APPLICATIONS_RECEIVED"
	JobStateAssigned             = "ASSIGNED"
	JobStateInProgress           = "IN_PROGRESS"
	JobStateCompleted            = "COMPLETED"
	JobStateDisputed             = "DISPUTED"
	JobStateCancelled            = "CANCELLED"
)

// Lifecycle events
const (
	EventApplicationSubmitted = "APPLICATION_SUBMITTED"
	EventApplicationAccepted  = "APPLICATION_ACCEPTED"
	EventWorkStarted          = "WORK_STARTED"
	EventWorkCompleted        = "WORK_COMPLETED"
	EventCancel               = "CANCEL"
	EventDisputeRaised        = "DISPUTE_RAISED"
	EventDisputeResolved      = "DISPUTE_RESOLVED"
)

// Actor roles, supplied by the identity provider
const (
	RoleHotel   = "hotel"
	RoleCleaner = "cleaner"
	RoleAdmin   = "admin"
)

// Job priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Dispute resolution outcomes
const (
	DisputeOutcomeUphold = "uphold"
	DisputeOutcomeRefund = "refund"
)

type transitionKey struct {
	from  string
	event string
}

type transitionRule struct {
	to    string
	roles []string
}

// transitions is the full lifecycle table. Any (state, event) pair not listed
// here is rejected with ErrInvalidTransition.
var transitions = map[transitionKey]transitionRule{
	{JobStatePosted, EventApplicationSubmitted}:               {JobStateApplicationsReceived, []string{RoleCleaner}},
	{JobStatePosted, EventCancel}:                             {JobStateCancelled, []string{RoleHotel}},
	{JobStateApplicationsReceived, EventCancel}:               {JobStateCancelled, []string{RoleHotel}},
	{JobStateApplicationsReceived, EventApplicationSubmitted}: {JobStateApplicationsReceived, []string{RoleCleaner}},
	{JobStateApplicationsReceived, EventApplicationAccepted}:  {JobStateAssigned, []string{RoleHotel}},
	{JobStateAssigned, EventWorkStarted}:                      {JobStateInProgress, []string{RoleCleaner}},
	{JobStateAssigned, EventCancel}:                           {JobStateCancelled, []string{RoleHotel}},
	{JobStateInProgress, EventWorkCompleted}:                  {JobStateCompleted, []string{RoleCleaner}},
	{JobStateInProgress, EventDisputeRaised}:                  {JobStateDisputed, []string{RoleHotel, RoleCleaner}},
	{JobStateCompleted, EventDisputeRaised}:                   {JobStateDisputed, []string{RoleHotel, RoleCleaner}},
}

// NextState resolves a lifecycle event against the transition table.
// It returns the target state, ErrInvalidTransition when the event is not
// allowed in the current state, or ErrActorNotAllowed when the event exists
// but the actor's role may not fire it.
func NextState(from, event, role string) (string, error) {
	if event == EventDisputeResolved {
		return "", ErrInvalidTransition // resolved via ResolveDispute, outcome-dependent
	}

	rule, ok := transitions[transitionKey{from, event}]
	if !ok {
		return "", ErrInvalidTransition
	}

	for _, r := range rule.roles {
		if r == role {
			return rule.to, nil
		}
	}

	return "", ErrActorNotAllowed
}

// ResolveDisputeState maps a dispute outcome to the job's final state.
// Only admins may resolve disputes, and only disputed jobs can be resolved.
func ResolveDisputeState(from, outcome, role string) (string, error) {
	if from != JobStateDisputed {
		return "", ErrInvalidTransition
	}
	if role != RoleAdmin {
		return "", ErrActorNotAllowed
	}

	switch outcome {
	case DisputeOutcomeUphold:
		return JobStateCompleted, nil
	case DisputeOutcomeRefund:
		return JobStateCancelled, nil
	default:
		return "", ErrInvalidTransition
	}
}

// AcceptsApplications reports whether cleaners may still bid on a job.
func AcceptsApplications(state string) bool {
	return state == JobStatePosted || state == JobStateApplicationsReceived
}

// ValidPriority reports whether p is a recognized job priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
