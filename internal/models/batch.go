package models

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	StatusQueued     BatchStatus = "queued"
	StatusProcessing BatchStatus = "processing"
	StatusCompleted  BatchStatus = "completed"
	StatusFailed     BatchStatus = "failed"
)

// Upload is one candidate document exactly as received: original filename plus
// raw bytes. Nothing is written to disk.
type Upload struct {
	Filename string
	Data     []byte
}

// CandidateResult pairs an upload with its evaluation and the HTML card
// rendered for it during the run.
type CandidateResult struct {
	Filename   string              `json:"filename"`
	Evaluation CandidateEvaluation `json:"evaluation"`
	HTML       string              `json:"html"`
}

// Batch is one user-triggered run over a set of uploads against a single job
// description. It lives only in memory for the lifetime of the run; results
// are discarded with the process unless exported.
type Batch struct {
	ID             uuid.UUID
	JobDescription string
	Uploads        []Upload
	Status         BatchStatus
	Completed      int
	Total          int
	Warnings       []string
	Results        []CandidateResult
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Progress is the completed/total fraction. It counts skipped files too, so it
// reaches exactly 1.0 once iteration finishes.
func (b *Batch) Progress() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Completed) / float64(b.Total)
}
