package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuseek/internal/models"
)

// BookmarkRepository is append-and-delete only; bookmarks are never updated.
// Every read and delete is scoped to the owning user.
type BookmarkRepository interface {
	Create(bookmark *models.Bookmark) error
	FindByUser(userID uuid.UUID) ([]models.Bookmark, error)
	DeleteOwned(id uuid.UUID, userID uuid.UUID) error
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create implements BookmarkRepository.
func (r *bookmarkRepository) Create(bookmark *models.Bookmark) error {
	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}

	if err := r.db.Create(bookmark).Error; err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	return nil
}

// FindByUser implements BookmarkRepository.
func (r *bookmarkRepository) FindByUser(userID uuid.UUID) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	return bookmarks, nil
}

// DeleteOwned implements BookmarkRepository.
func (r *bookmarkRepository) DeleteOwned(id uuid.UUID, userID uuid.UUID) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Bookmark{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete bookmark: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("bookmark not found")
	}

	return nil
}
