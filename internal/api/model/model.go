package model

import (
	"time"

	"github.com/lib/pq"
)

type Job struct {
	JobID             string         `db:"job_id"`
	PosterID          string         `db:"poster_id"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	ScheduledDate     string         `db:"scheduled_date"`
	ScheduledTime     string         `db:"scheduled_time"`
	RoomCount         int            `db:"room_count"`
	Requirements      pq.StringArray `db:"requirements"`
	Priority          string         `db:"priority"`
	GrossAmountCents  int64          `db:"gross_amount_cents"`
	State             string         `db:"state"`
	AssignedCleanerID *string        `db:"assigned_cleaner_id"`
	DisputeReason     *string        `db:"dispute_reason"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type Application struct {
	ApplicationID string    `db:"application_id"`
	JobID         string    `db:"job_id"`
	CleanerID     string    `db:"cleaner_id"`
	SubmittedAt   time.Time `db:"submitted_at"`
}

type LedgerEntry struct {
	EntryID          string    `db:"entry_id"`
	JobID            string    `db:"job_id"`
	Kind             string    `db:"kind"`
	AmountCents      int64     `db:"amount_cents"`
	Status           string    `db:"status"`
	CounterpartyID   string    `db:"counterparty_id"`
	CounterpartyRole string    `db:"counterparty_role"`
	CreatedAt        time.Time `db:"created_at"`
}

type Review struct {
	ReviewID        string    `db:"review_id"`
	JobID           string    `db:"job_id"`
	AuthorRole      string    `db:"author_role"`
	AuthorID        string    `db:"author_id"`
	SubjectID       string    `db:"subject_id"`
	OverallRating   int       `db:"overall_rating"`
	Quality         int       `db:"quality"`
	Timeliness      int       `db:"timeliness"`
	Communication   int       `db:"communication"`
	Professionalism int       `db:"professionalism"`
	Comment         string    `db:"comment"`
	Response        *string   `db:"response"`
	CreatedAt       time.Time `db:"created_at"`
}
