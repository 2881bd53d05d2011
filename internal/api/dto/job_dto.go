package dto

type CreateJobRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	ScheduledDate    string   `json:"scheduled_date" binding:"required"`
	ScheduledTime    string   `json:"scheduled_time" binding:"required"`
	RoomCount        int      `json:"room_count" binding:"required,gt=0"`
	Requirements     []string `json:"requirements"`
	Priority         string   `json:"priority" binding:"required,oneof=low medium high"`
	GrossAmountCents int64    `json:"gross_amount_cents" binding:"required,gt=0"`
}

type ListJobsRequest struct {
	PosterID  string `form:"poster_id"`
	CleanerID string `form:"cleaner_id"`
	State     string `form:"state"`
	Priority  string `form:"priority"`
	PageSize  int    `form:"page_size"`
	Cursor    string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type JobDTO struct {
	JobID             string   `json:"job_id"`
	PosterID          string   `json:"poster_id"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	ScheduledDate     string   `json:"scheduled_date"`
	ScheduledTime     string   `json:"scheduled_time"`
	RoomCount         int      `json:"room_count"`
	Requirements      []string `json:"requirements"`
	Priority          string   `json:"priority"`
	GrossAmountCents  int64    `json:"gross_amount_cents"`
	State             string   `json:"state"`
	AssignedCleanerID string   `json:"assigned_cleaner_id,omitempty"`
	DisputeReason     string   `json:"dispute_reason,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type AcceptApplicationRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
}

type RaiseDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ResolveDisputeRequest struct {
	Outcome           string `json:"outcome" binding:"required,oneof=uphold refund"`
	RefundAmountCents int64  `json:"refund_amount_cents"`
}

type ApplicationDTO struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	CleanerID     string `json:"cleaner_id"`
	SubmittedAt   string `json:"submitted_at"`
}
