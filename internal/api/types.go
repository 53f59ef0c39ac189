// Package api defines the JSON shapes written by the HTTP layer.
//
// Pages are not rendered here. Each page response is a render instruction
// (page name plus data) for the templating layer in front of this service.
package api

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// PageResponse instructs the renderer to draw Page with Data.
type PageResponse struct {
	Page    string         `json:"page"`
	Data    map[string]any `json:"data"`
	Viewer  *Viewer        `json:"user"`
	Notices []string       `json:"notices"`
	Year    int            `json:"year"`
}

// Viewer is the logged-in user as seen by templates.
type Viewer struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Author is the public part of a user shown next to content.
type Author struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is a blog post as rendered on the index and post pages.
type Post struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Body     string    `json:"body"`
	Date     string    `json:"date"`
	ImgURL   string    `json:"img_url"`
	Author   *Author   `json:"author"`
	Comments []Comment `json:"comments,omitempty"`
}

// Comment is a comment as rendered under a post.
type Comment struct {
	ID     uint    `json:"id"`
	Text   string  `json:"text"`
	Author *Author `json:"author"`
}
