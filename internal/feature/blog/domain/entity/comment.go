package entity

import (
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
)

// Comment is a logged-in user's reply under a post.
type Comment struct {
	ID   uint   `gorm:"primaryKey"`
	Text string `gorm:"type:text;not null"`

	AuthorID uint             `gorm:"not null;index"`
	Author   *authentity.User `gorm:"foreignKey:AuthorID"`

	PostID uint `gorm:"not null;index"`

	CreatedAt time.Time
}

// TableName overrides the default table name.
func (Comment) TableName() string { return "comments" }
