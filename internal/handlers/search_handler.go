package handlers

import (
	"github.com/gofiber/fiber/v2"

	"docuseek/internal/models"
	"docuseek/internal/services"
)

type SearchHandler struct {
	searchIndex services.SearchIndexService
}

func NewSearchHandler(searchIndex services.SearchIndexService) *SearchHandler {
	return &SearchHandler{
		searchIndex: searchIndex,
	}
}

// HandleSearch handles GET /search?q=...&limit=...
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter 'q' is required",
		})
	}

	limit := c.QueryInt("limit", 0)

	hits, err := h.searchIndex.Search(c.Context(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "search is temporarily unavailable",
		})
	}

	return c.JSON(models.SearchResponse{
		Query: query,
		Hits:  hits,
	})
}
