// Package flash carries one-shot user notices across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the cookie holding pending notices.
	CookieName = "flash"

	contextKey = "flash.pending"
	maxAge     = 300
)

// Add queues a notice for the next rendered page, which may be this request's or the
// one after a redirect.
func Add(c *gin.Context, message string) {
	pending := append(current(c), message)
	c.Set(contextKey, pending)

	b, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, base64.RawURLEncoding.EncodeToString(b), maxAge, "/", "", false, true)
}

// Pop returns all pending notices and clears them.
func Pop(c *gin.Context) []string {
	out := current(c)
	if len(out) == 0 {
		return []string{}
	}
	c.Set(contextKey, []string(nil))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return out
}

// current merges notices already added in this request with those from the cookie.
func current(c *gin.Context) []string {
	if v, ok := c.Get(contextKey); ok {
		if pending, ok := v.([]string); ok {
			return pending
		}
	}
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}
