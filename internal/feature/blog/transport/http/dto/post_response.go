package dto

import (
	"blog_backend/internal/api"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/blog/domain/entity"
)

// PostResponse converts a post and any loaded comments to its rendered form.
func PostResponse(p *entity.Post) api.Post {
	out := api.Post{
		ID:       p.ID,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Body:     p.Body,
		Date:     p.Date,
		ImgURL:   p.ImgURL,
		Author:   authorResponse(p.Author),
	}
	if len(p.Comments) > 0 {
		out.Comments = make([]api.Comment, 0, len(p.Comments))
		for _, c := range p.Comments {
			out.Comments = append(out.Comments, api.Comment{
				ID:     c.ID,
				Text:   c.Text,
				Author: authorResponse(c.Author),
			})
		}
	}
	return out
}

// PostListResponse converts posts for the index page.
func PostListResponse(posts []entity.Post) []api.Post {
	out := make([]api.Post, 0, len(posts))
	for i := range posts {
		out = append(out, PostResponse(&posts[i]))
	}
	return out
}

func authorResponse(u *authentity.User) *api.Author {
	if u == nil {
		return nil
	}
	return &api.Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
