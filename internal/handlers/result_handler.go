package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jakehazelwood1/ReCupid/internal/models"
	"github.com/jakehazelwood1/ReCupid/internal/repositories"
)

type ResultHandler struct {
	batchRepo repositories.BatchRepository
}

func NewResultHandler(batchRepo repositories.BatchRepository) *ResultHandler {
	return &ResultHandler{
		batchRepo: batchRepo,
	}
}

// HandleGetBatch handles GET /batches/:id.
func (h *ResultHandler) HandleGetBatch(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	batch, err := h.batchRepo.FindByID(batchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	results := batch.Results
	if results == nil {
		results = []models.CandidateResult{}
	}

	return c.JSON(models.BatchStatusResponse{
		ID:              batch.ID.String(),
		Status:          string(batch.Status),
		Progress:        batch.Progress(),
		Completed:       batch.Completed,
		Total:           batch.Total,
		Warnings:        batch.Warnings,
		Results:         results,
		ReportAvailable: batch.Status == models.StatusCompleted && len(batch.Results) > 0,
		ErrorMessage:    batch.ErrorMessage,
	})
}
