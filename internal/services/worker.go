package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakehazelwood1/ReCupid/internal/repositories"
)

// Worker executes batch runs off a bounded queue. Concurrency applies across
// batches only; a single batch is always processed file by file.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(batchID uuid.UUID) bool
}

type worker struct {
	batchRepo    repositories.BatchRepository
	runner       BatchRunner
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	logger       *zap.Logger
	wg           sync.WaitGroup
	stopOnce     sync.Once
	stopChan     chan struct{}
}

func NewWorker(
	batchRepo repositories.BatchRepository,
	runner BatchRunner,
	concurrency int,
	queueSize int,
	log *zap.Logger,
) Worker {
	return &worker{
		batchRepo:    batchRepo,
		runner:       runner,
		jobQueue:     make(chan uuid.UUID, queueSize),
		concurrency:  concurrency,
		pollInterval: 10 * time.Second,
		logger:       log,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollQueuedBatches(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("worker stopped")
}

// Enqueue implements Worker. A full queue is not an error: the queued-batch
// poller picks the batch up on a later tick.
func (w *worker) Enqueue(batchID uuid.UUID) bool {
	select {
	case <-w.stopChan:
		return false
	default:
	}

	select {
	case w.jobQueue <- batchID:
		return true
	default:
		w.logger.Warn("job queue full, leaving batch for poller",
			zap.String("batch_id", batchID.String()),
		)
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case batchID := <-w.jobQueue:
			w.logger.Debug("worker picked up batch",
				zap.Int("worker", workerID),
				zap.String("batch_id", batchID.String()),
			)
			if err := w.runner.Run(ctx, batchID); err != nil {
				w.logger.Error("batch run failed",
					zap.Int("worker", workerID),
					zap.String("batch_id", batchID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (w *worker) pollQueuedBatches(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.batchRepo.FindPending(10)
			if err != nil {
				w.logger.Warn("failed to list queued batches", zap.Error(err))
				continue
			}

			for _, batch := range pending {
				w.Enqueue(batch.ID)
			}
		}
	}
}
