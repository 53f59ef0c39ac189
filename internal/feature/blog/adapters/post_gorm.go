// Package adapters provides gorm repository implementations for the blog feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/db"
)

// postGorm is the gorm implementation of usecase.PostRepository.
type postGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure postGorm implements PostRepository.
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm creates a new postGorm on the given connection.
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// List returns all posts with their authors, oldest first.
func (r *postGorm) List(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	if err := r.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID returns a post with its author and comments.
// It returns usecase.ErrPostNotFound if no post matches.
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var p entity.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a post. Associations are never written through it.
// It returns usecase.ErrDuplicateTitle when the unique title index rejects the row.
func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrDuplicateTitle
		}
		return err
	}
	return nil
}

// Update overwrites title, subtitle, body, image URL and author of an existing post.
func (r *postGorm) Update(ctx context.Context, p *entity.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	res := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"title":     p.Title,
			"subtitle":  p.Subtitle,
			"body":      p.Body,
			"img_url":   p.ImgURL,
			"author_id": p.AuthorID,
		})
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return usecase.ErrDuplicateTitle
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPostNotFound
	}
	return nil
}

// Delete removes the post's comments and then the post in one transaction.
func (r *postGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPostNotFound
		}
		return nil
	})
}

// CreateComment inserts a comment after checking that its post exists.
func (r *postGorm) CreateComment(ctx context.Context, c *entity.Comment) error {
	if c == nil {
		return errors.New("comment is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Post{}).Where("id = ?", c.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrPostNotFound
		}
		return tx.Omit(clause.Associations).Create(c).Error
	})
}
