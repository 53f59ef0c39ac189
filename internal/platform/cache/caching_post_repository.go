// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// CachingPostRepository decorates a PostRepository with Redis caching.
// Reads are served from Redis when possible. Every write drops the whole namespace.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingPostRepository implements PostRepository.
var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "posts".
// A nil rdb turns the decorator into a pass-through.
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns all posts, checking the cache first.
func (c *CachingPostRepository) List(ctx context.Context) ([]entity.Post, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	key := c.listKey()

	var out []entity.Post
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindByID returns one post with comments, checking the cache first.
// Misses are not cached.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	key := c.postKey(id)

	var cached entity.Post
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// Create inserts a post and invalidates the cache.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update modifies a post and invalidates the cache.
func (c *CachingPostRepository) Update(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Update(ctx, post); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a post and invalidates the cache.
func (c *CachingPostRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// CreateComment inserts a comment and invalidates the cache.
func (c *CachingPostRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	if err := c.inner.CreateComment(ctx, comment); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// get decodes key into dst. Corrupted entries are deleted and reported as a miss.
func (c *CachingPostRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key (best effort).
func (c *CachingPostRepository) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// invalidate drops every cached entry of the namespace (best effort).
func (c *CachingPostRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		log.Warn().Err(err).Str("namespace", c.namespace).Msg("post cache invalidation failed")
	}
}

func (c *CachingPostRepository) listKey() string {
	return c.namespace + ":list"
}

func (c *CachingPostRepository) postKey(id uint) string {
	return fmt.Sprintf("%s:post:%d", c.namespace, id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPostRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
