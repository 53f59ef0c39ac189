// Package entity defines the domain entities for the blog feature.
package entity

import (
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
)

// DateLayout is the human-readable publish date format, e.g. "August 24, 2026".
const DateLayout = "January 02, 2006"

// Post is a blog post written by the administrator.
type Post struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"size:250;uniqueIndex;not null"`
	Subtitle string `gorm:"size:250;not null"`

	// Date is set once at creation and formatted with DateLayout.
	Date string `gorm:"size:250;not null"`

	// Body is rich text markup stored as submitted.
	Body   string `gorm:"type:text;not null"`
	ImgURL string `gorm:"column:img_url;size:250;not null"`

	AuthorID uint             `gorm:"index"`
	Author   *authentity.User `gorm:"foreignKey:AuthorID"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default "posts".
func (Post) TableName() string { return "blog_posts" }
