// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blog_backend/internal/app/router"
	"blog_backend/internal/config"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	blogentity "blog_backend/internal/feature/blog/domain/entity"
	bloghandler "blog_backend/internal/feature/blog/transport/handler"
	blogusecase "blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/http/handler"
	jwttoken "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/password"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&blogentity.Post{},
		&blogentity.Comment{},
	}
}

// NewRouterDeps wires repositories, usecases and handlers. rdb may be nil.
func NewRouterDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (router.Deps, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return router.Deps{}, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	users := authadapters.NewUserGorm(db)
	sessions := NewSessionRepository(rdb, db)
	posts := NewPostRepository(rdb, db, cfg.Cache.PostTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(users, sessions,
		password.NewHasher(cfg.Password.BcryptCost),
		jwttoken.NewSessionCodec(cfg.Session.Secret),
		cfg.Session.TTL)
	blogUC := blogusecase.NewBlogUsecase(posts, users)

	// Handler
	return router.Deps{
		Auth: authhandler.NewAuthHandler(authUC, authhandler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		}),
		Blog:           bloghandler.NewBlogHandler(blogUC),
		Health:         handler.NewHealthHandler(sqlDB),
		Users:          authUC,
		CookieName:     cfg.Session.CookieName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, nil
}
