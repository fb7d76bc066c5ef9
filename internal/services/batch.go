package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakehazelwood1/ReCupid/internal/models"
	"github.com/jakehazelwood1/ReCupid/internal/repositories"
)

// BatchRunner drives one batch run: extraction, evaluation, follow-up
// generation and rendering for each upload in order. Files inside a batch are
// processed strictly sequentially; both model calls for a file finish before
// the next file starts.
type BatchRunner interface {
	Run(ctx context.Context, batchID uuid.UUID) error
}

type batchRunner struct {
	batchRepo repositories.BatchRepository
	extractor DocumentExtractor
	evaluator EvaluatorService
	followUps FollowUpService
	renderer  ReportRenderer
	logger    *zap.Logger
}

func NewBatchRunner(
	batchRepo repositories.BatchRepository,
	extractor DocumentExtractor,
	evaluator EvaluatorService,
	followUps FollowUpService,
	renderer ReportRenderer,
	log *zap.Logger,
) BatchRunner {
	return &batchRunner{
		batchRepo: batchRepo,
		extractor: extractor,
		evaluator: evaluator,
		followUps: followUps,
		renderer:  renderer,
		logger:    log,
	}
}

// Run implements BatchRunner.
func (b *batchRunner) Run(ctx context.Context, batchID uuid.UUID) error {
	claimed, err := b.batchRepo.TryClaim(batchID)
	if err != nil {
		return fmt.Errorf("failed to claim batch: %w", err)
	}
	if !claimed {
		return nil
	}

	batch, err := b.batchRepo.FindByID(batchID)
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}

	b.logger.Info("batch run started",
		zap.String("batch_id", batchID.String()),
		zap.Int("files", batch.Total),
	)

	for idx, upload := range batch.Uploads {
		select {
		case <-ctx.Done():
			b.batchRepo.UpdateError(batchID, "batch cancelled before completion")
			return ctx.Err()
		default:
		}

		b.logger.Info("evaluating upload",
			zap.String("batch_id", batchID.String()),
			zap.String("filename", upload.Filename),
			zap.Int("position", idx+1),
			zap.Int("total", batch.Total),
		)

		cvText := b.extractor.ExtractText(upload.Filename, upload.Data)
		if strings.TrimSpace(cvText) == "" {
			warning := fmt.Sprintf("⚠️ Could not extract text from %s. Please upload a valid PDF or DOCX file.", upload.Filename)
			if err := b.batchRepo.Advance(batchID, warning, nil); err != nil {
				return fmt.Errorf("failed to record skipped file: %w", err)
			}
			continue
		}

		evaluation := b.evaluator.Evaluate(ctx, cvText, batch.JobDescription)
		evaluation.FollowUpQuestions = b.followUps.Generate(ctx, evaluation.Weaknesses, batch.JobDescription)

		html, err := b.renderer.RenderCandidate(upload.Filename, evaluation)
		if err != nil {
			b.logger.Error("failed to render candidate card",
				zap.String("filename", upload.Filename),
				zap.Error(err),
			)
		}

		result := &models.CandidateResult{
			Filename:   upload.Filename,
			Evaluation: *evaluation,
			HTML:       html,
		}
		if err := b.batchRepo.Advance(batchID, "", result); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}
	}

	if err := b.batchRepo.UpdateStatus(batchID, models.StatusCompleted); err != nil {
		return fmt.Errorf("failed to complete batch: %w", err)
	}

	b.logger.Info("batch run completed", zap.String("batch_id", batchID.String()))

	return nil
}
