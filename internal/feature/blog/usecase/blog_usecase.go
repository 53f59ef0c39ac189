package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	authusecase "blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/feature/blog/domain/entity"
)

// PostRepository abstracts persistence of posts and the comments under them.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PostRepository interface {
	// List returns every post with its author, ordered by id.
	List(ctx context.Context) ([]entity.Post, error)

	// FindByID returns the post with its author and comments (with their authors).
	// It returns ErrPostNotFound if the post does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Create persists a new post. It returns ErrDuplicateTitle if the title is taken.
	Create(ctx context.Context, post *entity.Post) error

	// Update overwrites the editable fields of an existing post.
	// It returns ErrPostNotFound or ErrDuplicateTitle.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes the post and its comments atomically.
	// It returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uint) error

	// CreateComment persists a comment. It returns ErrPostNotFound if the post does not exist.
	CreateComment(ctx context.Context, comment *entity.Comment) error
}

// AuthorLookup resolves the user a post is assigned to.
type AuthorLookup interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string

	// AuthorID reassigns the post on update. Zero keeps the current author.
	AuthorID uint
}

// blogUsecase implements the content operations of the blog.
type blogUsecase struct {
	posts   PostRepository
	authors AuthorLookup
	now     func() time.Time
}

// NewBlogUsecase creates a new blogUsecase.
func NewBlogUsecase(posts PostRepository, authors AuthorLookup) *blogUsecase {
	return &blogUsecase{posts: posts, authors: authors, now: time.Now}
}

// ListPosts returns all posts in insertion order.
func (u *blogUsecase) ListPosts(ctx context.Context) ([]entity.Post, error) {
	return u.posts.List(ctx)
}

// GetPost returns a post with its comments.
func (u *blogUsecase) GetPost(ctx context.Context, id uint) (*entity.Post, error) {
	return u.posts.FindByID(ctx, id)
}

// CreatePost publishes a post by author, dated today in server-local time.
func (u *blogUsecase) CreatePost(ctx context.Context, in PostInput, author *authentity.User) (*entity.Post, error) {
	if author == nil {
		return nil, ErrAuthorRequired
	}
	post := &entity.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		Date:     u.now().Format(entity.DateLayout),
		AuthorID: author.ID,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = author
	return post, nil
}

// UpdatePost replaces the editable fields of post id. The publish date is kept.
func (u *blogUsecase) UpdatePost(ctx context.Context, id uint, in PostInput) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.AuthorID != 0 && in.AuthorID != post.AuthorID {
		author, err := u.authors.FindByID(ctx, in.AuthorID)
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrAuthorNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up author: %w", err)
		}
		post.AuthorID = author.ID
		post.Author = author
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImgURL = in.ImgURL
	if err := u.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post together with its comments.
func (u *blogUsecase) DeletePost(ctx context.Context, id uint) error {
	return u.posts.Delete(ctx, id)
}

// CreateComment adds a comment by author under post postID.
func (u *blogUsecase) CreateComment(ctx context.Context, postID uint, author *authentity.User, text string) (*entity.Comment, error) {
	if author == nil {
		return nil, ErrAuthorRequired
	}
	comment := &entity.Comment{
		Text:     text,
		AuthorID: author.ID,
		PostID:   postID,
	}
	if err := u.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}
