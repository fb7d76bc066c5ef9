package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jakehazelwood1/ReCupid/internal/models"
)

var ErrBatchNotFound = fmt.Errorf("batch not found")

// BatchRepository stores batch runs for the lifetime of the process. Results
// are never persisted anywhere else; restarting the service discards them.
type BatchRepository interface {
	Create(batch *models.Batch) error
	FindByID(id uuid.UUID) (*models.Batch, error)
	UpdateStatus(id uuid.UUID, status models.BatchStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	// TryClaim flips a queued batch to processing. It returns false when
	// the batch is no longer queued, so a batch enqueued twice (direct
	// enqueue plus poller) still runs once.
	TryClaim(id uuid.UUID) (bool, error)
	// Advance records the outcome of one file and bumps the progress
	// counter. Exactly one of warning/result is set for a processed file.
	Advance(id uuid.UUID, warning string, result *models.CandidateResult) error
	FindPending(limit int) ([]*models.Batch, error)
}

type batchRepository struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]*models.Batch
}

func NewBatchRepository() BatchRepository {
	return &batchRepository{
		batches: make(map[uuid.UUID]*models.Batch),
	}
}

// Create implements BatchRepository.
func (r *batchRepository) Create(batch *models.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.batches[batch.ID]; exists {
		return fmt.Errorf("batch %s already exists", batch.ID)
	}

	now := time.Now()
	batch.CreatedAt = now
	batch.UpdatedAt = now
	batch.Total = len(batch.Uploads)
	r.batches[batch.ID] = batch

	return nil
}

// FindByID implements BatchRepository. It returns a snapshot so callers never
// observe a batch mid-mutation.
func (r *batchRepository) FindByID(id uuid.UUID) (*models.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	batch, ok := r.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}

	return snapshot(batch), nil
}

// UpdateStatus implements BatchRepository.
func (r *batchRepository) UpdateStatus(id uuid.UUID, status models.BatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}

	batch.Status = status
	batch.UpdatedAt = time.Now()

	return nil
}

// UpdateError implements BatchRepository.
func (r *batchRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}

	batch.Status = models.StatusFailed
	batch.ErrorMessage = errorMsg
	batch.UpdatedAt = time.Now()

	return nil
}

// TryClaim implements BatchRepository.
func (r *batchRepository) TryClaim(id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.batches[id]
	if !ok {
		return false, ErrBatchNotFound
	}

	if batch.Status != models.StatusQueued {
		return false, nil
	}

	batch.Status = models.StatusProcessing
	batch.UpdatedAt = time.Now()

	return true, nil
}

// Advance implements BatchRepository.
func (r *batchRepository) Advance(id uuid.UUID, warning string, result *models.CandidateResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}

	if warning != "" {
		batch.Warnings = append(batch.Warnings, warning)
	}
	if result != nil {
		batch.Results = append(batch.Results, *result)
	}
	batch.Completed++
	batch.UpdatedAt = time.Now()

	return nil
}

// FindPending implements BatchRepository. Queued batches are returned oldest
// first so the poller re-enqueues them in submission order.
func (r *batchRepository) FindPending(limit int) ([]*models.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []*models.Batch
	for _, batch := range r.batches {
		if batch.Status == models.StatusQueued {
			pending = append(pending, snapshot(batch))
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}

	return pending, nil
}

func snapshot(batch *models.Batch) *models.Batch {
	copied := *batch
	copied.Uploads = append([]models.Upload(nil), batch.Uploads...)
	copied.Warnings = append([]string(nil), batch.Warnings...)
	copied.Results = append([]models.CandidateResult(nil), batch.Results...)
	return &copied
}
