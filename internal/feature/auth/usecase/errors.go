// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when registering an email that is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is the umbrella error for failed logins.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownEmail is returned when no user has the submitted email.
	ErrUnknownEmail = fmt.Errorf("%w: user does not exist", ErrInvalidCredentials)

	// ErrPasswordMismatch is returned when the password does not match the stored digest.
	ErrPasswordMismatch = fmt.Errorf("%w: password does not match", ErrInvalidCredentials)

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when a logged-out session is presented.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when an expired session is presented.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidSessionToken is returned when a session cookie is malformed or tampered with.
	ErrInvalidSessionToken = errors.New("invalid session token")
)
