package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuseek/internal/models"
)

// ContactRepository is write-only; messages are read out-of-band.
type ContactRepository interface {
	Create(message *models.ContactMessage) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create implements ContactRepository.
func (r *contactRepository) Create(message *models.ContactMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}
