package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jakehazelwood1/ReCupid/internal/models"
	"github.com/jakehazelwood1/ReCupid/internal/repositories"
	"github.com/jakehazelwood1/ReCupid/internal/services"
)

const exportFilename = "ReCupid_match_export.html"

type ReportHandler struct {
	batchRepo repositories.BatchRepository
	renderer  services.ReportRenderer
}

func NewReportHandler(batchRepo repositories.BatchRepository, renderer services.ReportRenderer) *ReportHandler {
	return &ReportHandler{
		batchRepo: batchRepo,
		renderer:  renderer,
	}
}

// HandleGetReport handles GET /batches/:id/report. The export only exists for
// a completed batch with at least one evaluated candidate; skipped files are
// not part of it. Nothing is written server side, the document is generated
// per request.
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
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

	if batch.Status != models.StatusCompleted || len(batch.Results) == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No completed results to export for this batch",
		})
	}

	html, err := h.renderer.RenderExport(batch.JobDescription, batch.Results)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render export",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exportFilename+`"`)

	return c.SendString(html)
}
