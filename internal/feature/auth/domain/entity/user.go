// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// AdminUserID is the id of the single administrator: the first user ever created.
const AdminUserID uint = 1

// User represents a registered blog user.
type User struct {
	// ID is the auto-incremented identifier.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown next to posts and comments.
	Name string `gorm:"size:250;not null"`

	// Email is used to log in. It is unique and compared case-sensitively.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the salted, algorithm-tagged digest. Never plaintext.
	Password string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may manage posts.
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminUserID
}
