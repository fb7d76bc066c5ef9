package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jakehazelwood1/ReCupid/internal/config"
	"github.com/jakehazelwood1/ReCupid/internal/models"
	"github.com/jakehazelwood1/ReCupid/internal/repositories"
	"github.com/jakehazelwood1/ReCupid/internal/services"
)

type BatchHandler struct {
	batchRepo repositories.BatchRepository
	worker    services.Worker
	batchCfg  config.BatchConfig
}

func NewBatchHandler(
	batchRepo repositories.BatchRepository,
	worker services.Worker,
	batchCfg config.BatchConfig,
) *BatchHandler {
	return &BatchHandler{
		batchRepo: batchRepo,
		worker:    worker,
		batchCfg:  batchCfg,
	}
}

// HandleCreateBatch handles POST /batches. Missing inputs are rejected here,
// before any file is read or any model call is made.
func (h *BatchHandler) HandleCreateBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload at least one CV to evaluate.",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please paste a job description to evaluate candidates against.",
		})
	}

	if len(files) > h.batchCfg.MaxFiles {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Too many files. Max %d CVs per batch.", h.batchCfg.MaxFiles),
		})
	}

	uploads := make([]models.Upload, 0, len(files))
	for _, fileHeader := range files {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".pdf" && ext != ".docx" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unsupported file type for %s. Accepted formats: PDF, DOCX.", fileHeader.Filename),
			})
		}

		if fileHeader.Size > h.batchCfg.MaxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is too large. Max size: %d bytes.", fileHeader.Filename, h.batchCfg.MaxFileSize),
			})
		}

		src, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read %s", fileHeader.Filename),
			})
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read %s", fileHeader.Filename),
			})
		}

		uploads = append(uploads, models.Upload{
			Filename: fileHeader.Filename,
			Data:     data,
		})
	}

	batch := &models.Batch{
		ID:             uuid.New(),
		JobDescription: jobDescription,
		Uploads:        uploads,
		Status:         models.StatusQueued,
	}

	if err := h.batchRepo.Create(batch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create evaluation batch",
		})
	}

	h.worker.Enqueue(batch.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.BatchCreatedResponse{
		ID:     batch.ID.String(),
		Status: string(models.StatusQueued),
		Files:  len(uploads),
	})
}
