package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docuseek/internal/middleware"
	"docuseek/internal/models"
	"docuseek/internal/repositories"
)

type BookmarkHandler struct {
	bookmarkRepo repositories.BookmarkRepository
}

func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepo: bookmarkRepo,
	}
}

// HandleCreate handles POST /bookmarks
func (h *BookmarkHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.BookmarkRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query and answer are required",
		})
	}

	bookmark := &models.Bookmark{
		ID:        uuid.New(),
		UserID:    middleware.UserID(c),
		Query:     req.Query,
		Answer:    req.Answer,
		CreatedAt: time.Now(),
	}

	if err := h.bookmarkRepo.Create(bookmark); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save bookmark",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

// HandleList handles GET /bookmarks
func (h *BookmarkHandler) HandleList(c *fiber.Ctx) error {
	bookmarks, err := h.bookmarkRepo.FindByUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list bookmarks",
		})
	}

	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}

	return c.JSON(fiber.Map{
		"bookmarks": bookmarks,
	})
}

// HandleDelete handles DELETE /bookmarks/:id
func (h *BookmarkHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bookmark ID format",
		})
	}

	if err := h.bookmarkRepo.DeleteOwned(id, middleware.UserID(c)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bookmark not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "bookmark deleted",
	})
}
