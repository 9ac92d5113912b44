package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docuseek/internal/models"
	"docuseek/internal/services"
)

type DocumentHandler struct {
	ingestService services.IngestService
	maxFileSize   int64
}

func NewDocumentHandler(ingestService services.IngestService, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		ingestService: ingestService,
		maxFileSize:   maxFileSize,
	}
}

// HandleUpload handles POST /documents
func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a PDF as 'file'.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid file extension: %s", ext),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	result, err := h.ingestService.Ingest(c.Context(), src, fileHeader.Filename)
	if err != nil {
		return ingestErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Document ingested successfully",
		"document": result,
	})
}

// HandleDelete handles DELETE /documents/:name
func (h *DocumentHandler) HandleDelete(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		name = c.Params("name")
	}
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document name is required",
		})
	}

	deleted, err := h.ingestService.DeleteDocument(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to delete document: %v", err),
		})
	}

	return c.JSON(models.DeleteDocumentResponse{
		DocumentName: name,
		Deleted:      deleted,
	})
}

func ingestErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMalformedDocument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uploaded file is not a readable PDF",
		})
	case errors.Is(err, services.ErrUploadFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to store the file; nothing was indexed",
		})
	case errors.Is(err, services.ErrIndexingFailed):
		// The file is already stored; re-uploading would duplicate it.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "file stored but not searchable; please retry indexing",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("ingestion failed: %v", err),
		})
	}
}
