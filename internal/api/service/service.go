package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/cleanconnect/platform-be/internal/api/storage"
)

// Store is the slice of the durable store the marketplace services need.
// Implemented by storage.Storage; faked in tests.
type Store interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, filter storage.JobFilter) ([]model.Job, error)
	SetJobState(ctx context.Context, jobID, from, to string) error
	CancelJob(ctx context.Context, jobID, from string) error
	AssignCleaner(ctx context.Context, jobID, cleanerID string) error
	MarkDisputed(ctx context.Context, jobID, from, reason string) error
	CompleteJobWithSettlement(ctx context.Context, jobID string, entries []model.LedgerEntry) error
	ResolveDispute(ctx context.Context, jobID, finalState string, refund *model.LedgerEntry) error

	CreateApplication(ctx context.Context, app *model.Application) error
	GetApplication(ctx context.Context, jobID, applicationID string) (*model.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error)

	InsertLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error
	ListLedgerEntriesByJob(ctx context.Context, jobID string) ([]model.LedgerEntry, error)
	ListLedgerEntriesByCounterparty(ctx context.Context, counterpartyID string) ([]model.LedgerEntry, error)
	GetCompletedPayment(ctx context.Context, jobID string) (*model.LedgerEntry, error)
	SumRefundsByJob(ctx context.Context, jobID string) (int64, error)
	SetLedgerEntryStatus(ctx context.Context, entryID, to string) error

	CreateReview(ctx context.Context, review *model.Review) error
	GetReviewByID(ctx context.Context, reviewID string) (*model.Review, error)
	AttachReviewResponse(ctx context.Context, reviewID, response string) error
	ListReviewsBySubject(ctx context.Context, subjectID string) ([]model.Review, error)
	ListReviewsByJob(ctx context.Context, jobID string) ([]model.Review, error)
}

// Publisher pushes transition events to the notification dispatcher.
// Implemented by the RabbitMQ client.
type Publisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Cache is the read-through cache for rating aggregates.
// Implemented by the Redis client; a nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Rates holds the platform's settlement percentages in basis points.
type Rates struct {
	CommissionBps    int64
	ProcessingFeeBps int64
}

// Actor is the authenticated caller, as handed over by the identity layer.
// The services trust the role; they never re-derive it.
type Actor struct {
	ID   string
	Role string
}

type Service struct {
	store        Store
	publisher    Publisher
	cache        Cache
	logger       *slog.Logger
	rates        Rates
	aggregateTTL time.Duration
}

type Config struct {
	Store        Store
	Publisher    Publisher
	Cache        Cache
	Logger       *slog.Logger
	Rates        Rates
	AggregateTTL time.Duration
}

func New(cfg *Config) *Service {
	return &Service{
		store:        cfg.Store,
		publisher:    cfg.Publisher,
		cache:        cfg.Cache,
		logger:       cfg.Logger,
		rates:        cfg.Rates,
		aggregateTTL: cfg.AggregateTTL,
	}
}
