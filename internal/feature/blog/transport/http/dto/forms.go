// Package dto defines data transfer objects for the blog feature's HTTP transport layer.
package dto

import (
	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// PostForm is the body of POST /new-post and POST /edit-post/:id.
type PostForm struct {
	Title    string `form:"title" json:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" json:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" json:"img_url" binding:"required,url,max=250"`
	Body     string `form:"body" json:"body" binding:"required"`

	// AuthorID reassigns the post when editing. Zero keeps the current author.
	AuthorID uint `form:"author_id" json:"author_id,omitempty"`
}

// Input converts the form to usecase input.
func (f PostForm) Input() usecase.PostInput {
	return usecase.PostInput{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Body:     f.Body,
		ImgURL:   f.ImgURL,
		AuthorID: f.AuthorID,
	}
}

// PostFormFrom prefills the edit form with the current values of p.
func PostFormFrom(p *entity.Post) PostForm {
	return PostForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		ImgURL:   p.ImgURL,
		Body:     p.Body,
		AuthorID: p.AuthorID,
	}
}

// CommentForm is the body of POST /post/:id.
type CommentForm struct {
	Body string `form:"body" json:"body" binding:"required"`
}
