package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	blogadapters "blog_backend/internal/feature/blog/adapters"
	"blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/cache"
)

// NewPostRepository creates the post store, wrapped in the Redis cache when rdb is non-nil.
func NewPostRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.PostRepository {
	repo := blogadapters.NewPostGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingPostRepository(rdb, ttl, repo, "posts")
}
