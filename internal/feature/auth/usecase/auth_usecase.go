package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blog_backend/internal/feature/auth/domain/entity"
)

// dummyDigest is compared against when the email is unknown so that both
// branches of a failed login cost one bcrypt comparison.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address exactly.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher produces and checks salted password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest, plaintext string) bool
}

// SessionTokenCodec signs and verifies the token stored in the session cookie.
type SessionTokenCodec interface {
	Sign(sessionID string, userID uint, expiresAt time.Time) (string, error)
	Parse(token string) (sessionID string, userID uint, err error)
}

// ClientInfo describes the browser that starts a session.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase implements registration, credential checks and the session lifecycle.
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	hasher   PasswordHasher
	tokens   SessionTokenCodec
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthUsecase creates a new authUsecase. Sessions live for ttl after login.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, hasher PasswordHasher,
	tokens SessionTokenCodec, ttl time.Duration) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register creates a user with a hashed password.
// It returns ErrEmailAlreadyExists if the email is already registered.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	digest, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Name: name, Email: email, Password: digest}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks an email/password pair and returns the matching user.
// Failures wrap ErrInvalidCredentials; the password is verified even for unknown emails.
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	digest := dummyDigest
	if user != nil {
		digest = user.Password
	}
	matched := u.hasher.Verify(digest, password)

	if user == nil {
		return nil, ErrUnknownEmail
	}
	if !matched {
		return nil, ErrPasswordMismatch
	}
	return user, nil
}

// StartSession logs the user in: it stores a new session and returns the signed cookie token.
func (u *authUsecase) StartSession(ctx context.Context, user *entity.User, client ClientInfo) (string, *entity.Session, error) {
	now := u.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.Sign(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, session, nil
}

// EndSession logs out the session behind token. Empty, tampered or unknown tokens are a no-op.
func (u *authUsecase) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sessionID, _, err := u.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session token to its user, looking the user up on every call.
// Any error means the request is anonymous.
func (u *authUsecase) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrInvalidSessionToken
	}
	sessionID, userID, err := u.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrInvalidSessionToken
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return u.users.FindByID(ctx, session.UserID)
}
