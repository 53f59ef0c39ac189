// Package seed creates the administrator account and the welcome post.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	authusecase "blog_backend/internal/feature/auth/usecase"
	blogentity "blog_backend/internal/feature/blog/domain/entity"
	blogusecase "blog_backend/internal/feature/blog/usecase"
)

// ErrMissingAdmin is returned when the admin email or password is empty.
var ErrMissingAdmin = errors.New("admin email and password are required")

// UserFinder looks up existing accounts.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*authentity.User, error)
}

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, name, email, password string) (*authentity.User, error)
}

// Publisher creates posts.
type Publisher interface {
	CreatePost(ctx context.Context, in blogusecase.PostInput, author *authentity.User) (*blogentity.Post, error)
}

// Admin describes the administrator account to create.
type Admin struct {
	Name     string
	Email    string
	Password string
}

// Result reports what Run created.
type Result struct {
	AdminCreated bool
	PostCreated  bool
}

// WelcomePost is the sample post published by the administrator.
var WelcomePost = blogusecase.PostInput{
	Title:    "Hello world!: The inlet door to the programming universe",
	Subtitle: "Programming in the 21st century",
	Body: "<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt " +
		"ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco " +
		"laboris nisi ut aliquip ex ea commodo consequat.</p>",
	ImgURL: "https://cdn-images-1.medium.com/max/1600/1*U-R58ahr5dtAvtSLGK2wXg.png",
}

// Run creates the admin and the welcome post unless they already exist. It is safe to run repeatedly.
func Run(ctx context.Context, users UserFinder, reg Registrar, pub Publisher, admin Admin) (Result, error) {
	var res Result
	if admin.Email == "" || admin.Password == "" {
		return res, ErrMissingAdmin
	}

	user, err := users.FindByEmail(ctx, admin.Email)
	switch {
	case errors.Is(err, authusecase.ErrUserNotFound):
		user, err = reg.Register(ctx, admin.Name, admin.Email, admin.Password)
		if err != nil {
			return res, fmt.Errorf("failed to create admin: %w", err)
		}
		res.AdminCreated = true
	case err != nil:
		return res, fmt.Errorf("failed to look up admin: %w", err)
	}

	if !user.IsAdmin() {
		// Only id 1 passes the admin gate; another account registered first.
		log.Warn().Uint("user_id", user.ID).Str("email", user.Email).Msg("seed: account is not user 1 and will not have admin rights")
	}

	_, err = pub.CreatePost(ctx, WelcomePost, user)
	switch {
	case errors.Is(err, blogusecase.ErrDuplicateTitle):
		// already seeded
	case err != nil:
		return res, fmt.Errorf("failed to create welcome post: %w", err)
	default:
		res.PostCreated = true
	}
	return res, nil
}
