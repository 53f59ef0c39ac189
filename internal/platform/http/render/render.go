// Package render writes render instructions and error bodies.
package render

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/api"
	"blog_backend/internal/platform/http/flash"
)

// ContextViewer is the gin context key holding the *api.Viewer of the logged-in user.
const ContextViewer = "viewer"

// Page writes a render instruction for page. Pending flash notices are attached and consumed.
func Page(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, api.PageResponse{
		Page:    page,
		Data:    data,
		Viewer:  Viewer(c),
		Notices: flash.Pop(c),
		Year:    time.Now().Year(),
	})
}

// Error aborts the request with a JSON error body.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: message})
}

// InternalError aborts with a generic 500.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}

// Redirect sends a 302 to location. Pending flash notices stay queued for the next page.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// Viewer returns the logged-in user placed on the context, or nil.
func Viewer(c *gin.Context) *api.Viewer {
	if v, ok := c.Get(ContextViewer); ok {
		if viewer, ok := v.(*api.Viewer); ok {
			return viewer
		}
	}
	return nil
}
