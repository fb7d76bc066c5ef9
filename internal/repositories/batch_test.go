package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakehazelwood1/ReCupid/internal/models"
)

func newTestBatch() *models.Batch {
	return &models.Batch{
		ID:             uuid.New(),
		JobDescription: "Senior Go engineer, 3-5 years experience",
		Uploads: []models.Upload{
			{Filename: "alice.pdf", Data: []byte("%PDF-")},
			{Filename: "bob.docx", Data: []byte("PK")},
		},
		Status: models.StatusQueued,
	}
}

func TestBatchRepositoryCreateAndFind(t *testing.T) {
	repo := NewBatchRepository()
	batch := newTestBatch()

	require.NoError(t, repo.Create(batch))

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, found.ID)
	assert.Equal(t, 2, found.Total)
	assert.Equal(t, models.StatusQueued, found.Status)

	assert.Error(t, repo.Create(batch), "duplicate id must be rejected")

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestBatchRepositoryFindReturnsSnapshot(t *testing.T) {
	repo := NewBatchRepository()
	batch := newTestBatch()
	require.NoError(t, repo.Create(batch))

	first, err := repo.FindByID(batch.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Advance(batch.ID, "", &models.CandidateResult{Filename: "alice.pdf"}))

	// The earlier snapshot must not see the later mutation.
	assert.Empty(t, first.Results)
	assert.Equal(t, 0, first.Completed)

	second, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Len(t, second.Results, 1)
	assert.Equal(t, 1, second.Completed)
}

func TestBatchRepositoryTryClaim(t *testing.T) {
	repo := NewBatchRepository()
	batch := newTestBatch()
	require.NoError(t, repo.Create(batch))

	claimed, err := repo.TryClaim(batch.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimedAgain, err := repo.TryClaim(batch.ID)
	require.NoError(t, err)
	assert.False(t, claimedAgain, "a batch can only be claimed once")

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, found.Status)
}

func TestBatchRepositoryAdvance(t *testing.T) {
	repo := NewBatchRepository()
	batch := newTestBatch()
	require.NoError(t, repo.Create(batch))

	require.NoError(t, repo.Advance(batch.ID, "⚠️ Could not extract text from alice.pdf. Please upload a valid PDF or DOCX file.", nil))
	require.NoError(t, repo.Advance(batch.ID, "", &models.CandidateResult{Filename: "bob.docx"}))

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Completed)
	assert.Equal(t, 1.0, found.Progress())
	assert.Len(t, found.Warnings, 1)
	assert.Len(t, found.Results, 1)
	assert.Equal(t, "bob.docx", found.Results[0].Filename)
}

func TestBatchRepositoryUpdateError(t *testing.T) {
	repo := NewBatchRepository()
	batch := newTestBatch()
	require.NoError(t, repo.Create(batch))

	require.NoError(t, repo.UpdateError(batch.ID, "batch cancelled before completion"))

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, found.Status)
	assert.Equal(t, "batch cancelled before completion", found.ErrorMessage)
}

func TestBatchRepositoryFindPending(t *testing.T) {
	repo := NewBatchRepository()

	older := newTestBatch()
	require.NoError(t, repo.Create(older))

	time.Sleep(2 * time.Millisecond)

	newer := newTestBatch()
	require.NoError(t, repo.Create(newer))

	running := newTestBatch()
	require.NoError(t, repo.Create(running))
	_, err := repo.TryClaim(running.ID)
	require.NoError(t, err)

	pending, err := repo.FindPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, older.ID, pending[0].ID, "oldest batch comes first")
	assert.Equal(t, newer.ID, pending[1].ID)

	limited, err := repo.FindPending(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
