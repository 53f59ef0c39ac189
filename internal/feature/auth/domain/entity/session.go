package entity

import "time"

// Session is the server-side record behind a browser session cookie.
type Session struct {
	ID        string     // Opaque session id (uuid), carried inside the signed cookie token
	UserID    uint       // Authenticated user
	UserAgent string     // Client's User-Agent header at login
	IPAddress string     // Client's IP address at login
	CreatedAt time.Time  // Login time
	ExpiresAt time.Time  // Session expiration time
	RevokedAt *time.Time // Logout time (nil while active)
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked returns true if the session has been logged out.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid returns true if the session is neither expired nor revoked.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
