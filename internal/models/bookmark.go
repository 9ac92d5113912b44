package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is one saved question/answer pair. All users share a single table
// keyed by user_id; entries are append-and-delete only, never updated.
type Bookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Query     string    `gorm:"type:text;not null" json:"query"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
