// Package usecase implements the business logic for the blog feature.
package usecase

import "errors"

var (
	// ErrPostNotFound is returned when no post has the requested id.
	ErrPostNotFound = errors.New("post not found")

	// ErrDuplicateTitle is returned when another post already uses the title.
	ErrDuplicateTitle = errors.New("a post with this title already exists")

	// ErrAuthorNotFound is returned when a post is assigned to a user that does not exist.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrAuthorRequired is returned when content is created without a logged-in author.
	ErrAuthorRequired = errors.New("author is required")
)
