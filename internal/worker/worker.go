package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cleanconnect/platform-be/internal/worker/domain"
	"github.com/cleanconnect/platform-be/internal/worker/storage"
	"github.com/cleanconnect/platform-be/shared/mailer"
	"github.com/cleanconnect/platform-be/shared/postgresql"
	"github.com/cleanconnect/platform-be/shared/rabbitmq"
	"github.com/google/uuid"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Mailer        *mailer.Mailer
	OpsEmail      string
	QueueName     string
	Concurrency   int
	PrefetchCount int
}

// Worker consumes transition events and fans them out as notifications.
type Worker struct {
	logger        *slog.Logger
	storage       *storage.Storage
	rabbitClient  *rabbitmq.Client
	mailer        *mailer.Mailer
	opsEmail      string
	queueName     string
	concurrency   int
	prefetchCount int
	workerID      string
	eventsChan    chan *domain.EventMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		rabbitClient:  cfg.RabbitClient,
		mailer:        cfg.Mailer,
		opsEmail:      cfg.OpsEmail,
		queueName:     cfg.QueueName,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		workerID:      fmt.Sprintf("notifier-%s", uuid.New().String()[:8]),
		eventsChan:    make(chan *domain.EventMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start consumes events until the context is canceled
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.setupConsumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping notification worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Notification worker stopped")
}
