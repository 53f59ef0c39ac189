// Command seed creates the administrator account and the welcome post.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/seed"
	"blog_backend/internal/config"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authusecase "blog_backend/internal/feature/auth/usecase"
	blogadapters "blog_backend/internal/feature/blog/adapters"
	blogusecase "blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/db"
	jwttoken "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/password"
	"blog_backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	conn, err := db.Open(cfg.Database.URL, cfg.Database.ConnectWait)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.Migrate(conn, di.Models()...); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Sessions are never created here; the SQL store only satisfies the usecase.
	users := authadapters.NewUserGorm(conn)
	authUC := authusecase.NewAuthUsecase(users, authadapters.NewSessionGorm(conn),
		password.NewHasher(cfg.Password.BcryptCost), jwttoken.NewSessionCodec(cfg.Session.Secret), cfg.Session.TTL)
	blogUC := blogusecase.NewBlogUsecase(blogadapters.NewPostGorm(conn), users)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := seed.Run(ctx, users, authUC, blogUC, seed.Admin{
		Name:     getEnv("ADMIN_NAME", "Admin"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Bool("admin_created", res.AdminCreated).Bool("post_created", res.PostCreated).Msg("seed ok")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
