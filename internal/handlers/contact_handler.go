package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docuseek/internal/models"
	"docuseek/internal/repositories"
)

type ContactHandler struct {
	contactRepo repositories.ContactRepository
}

func NewContactHandler(contactRepo repositories.ContactRepository) *ContactHandler {
	return &ContactHandler{
		contactRepo: contactRepo,
	}
}

// HandleCreate handles POST /contact
func (h *ContactHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.ContactRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, email and message are required",
		})
	}

	message := &models.ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	if err := h.contactRepo.Create(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save contact message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message received",
		"id":      message.ID.String(),
	})
}
