// Package middleware provides the session and authorization gates of the auth feature.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/platform/http/flash"
	"blog_backend/internal/platform/http/render"
)

// ContextUser is the gin context key holding the *entity.User of the current request.
const ContextUser = "currentUser"

const (
	// LoginRequiredNotice is flashed when an anonymous visitor hits a login-only route.
	LoginRequiredNotice = "Login required."
	// AdminOnlyMessage is the body of the 403 returned to non-admins.
	AdminOnlyMessage = "Permission denied: Only Admin user can access this route."
)

// UserResolver resolves a session cookie token to its user.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// Authenticate resolves the session cookie into the request-scoped current user.
// Requests without a valid session continue anonymously.
func Authenticate(resolver UserResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if !isAnonymousCause(err) {
				log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("session lookup failed")
			}
			c.Next()
			return
		}

		c.Set(ContextUser, user)
		c.Set(render.ContextViewer, &api.Viewer{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin(),
		})
		c.Next()
	}
}

// isAnonymousCause reports whether err is an expected reason for treating a request as anonymous.
func isAnonymousCause(err error) bool {
	return errors.Is(err, usecase.ErrInvalidSessionToken) ||
		errors.Is(err, usecase.ErrSessionNotFound) ||
		errors.Is(err, usecase.ErrSessionRevoked) ||
		errors.Is(err, usecase.ErrSessionExpired) ||
		errors.Is(err, usecase.ErrUserNotFound)
}

// CurrentUser returns the logged-in user of the request, or nil when anonymous.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*entity.User); ok {
			return user
		}
	}
	return nil
}

// RequireLogin redirects anonymous visitors to /login with a notice.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			flash.Add(c, LoginRequiredNotice)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects everyone but the administrator with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			log.Warn().Str("path", c.Request.URL.Path).Str("remote_addr", c.ClientIP()).Msg("admin route denied")
			render.Error(c, http.StatusForbidden, AdminOnlyMessage)
			return
		}
		c.Next()
	}
}
