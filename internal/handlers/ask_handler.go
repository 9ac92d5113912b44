package handlers

import (
	"github.com/gofiber/fiber/v2"

	"docuseek/internal/models"
	"docuseek/internal/services"
)

type AskHandler struct {
	searchIndex   services.SearchIndexService
	answerService services.AnswerService
}

func NewAskHandler(searchIndex services.SearchIndexService, answerService services.AnswerService) *AskHandler {
	return &AskHandler{
		searchIndex:   searchIndex,
		answerService: answerService,
	}
}

// HandleAsk handles POST /ask. Retrieval failure is a hard error; generation
// failure is not — the response always carries the hits plus some answer
// string, possibly a fixed fallback.
func (h *AskHandler) HandleAsk(c *fiber.Ctx) error {
	var req models.AskRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	hits, err := h.searchIndex.Search(c.Context(), req.Query, 0)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "search is temporarily unavailable",
		})
	}

	answer := h.answerService.Answer(c.Context(), req.Query, hits)

	return c.JSON(models.AskResponse{
		Query:  req.Query,
		Answer: answer,
		Hits:   hits,
	})
}
