package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/seed"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	authusecase "blog_backend/internal/feature/auth/usecase"
	blogadapters "blog_backend/internal/feature/blog/adapters"
	blogentity "blog_backend/internal/feature/blog/domain/entity"
	blogusecase "blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/db"
	jwttoken "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/password"
)

// TestRun は管理者と最初の投稿が作成され、再実行しても重複しないことを検証します。
func TestRun(t *testing.T) {
	conn, err := db.Open(":memory:", 0)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn, di.Models()...))

	users := authadapters.NewUserGorm(conn)
	hasher := password.NewHasher(4)
	authUC := authusecase.NewAuthUsecase(users, authadapters.NewSessionGorm(conn), hasher, jwttoken.NewSessionCodec("s"), 0)
	blogUC := blogusecase.NewBlogUsecase(blogadapters.NewPostGorm(conn), users)
	admin := seed.Admin{Name: "Luis Moreno", Email: "admin@email.com", Password: "admin-pass"}
	ctx := context.Background()

	res, err := seed.Run(ctx, users, authUC, blogUC, admin)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{AdminCreated: true, PostCreated: true}, res)

	res, err = seed.Run(ctx, users, authUC, blogUC, admin)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, res)

	var stored []authentity.User
	require.NoError(t, conn.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].IsAdmin())
	assert.True(t, hasher.Verify(stored[0].Password, "admin-pass"))

	var posts []blogentity.Post
	require.NoError(t, conn.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, seed.WelcomePost.Title, posts[0].Title)
	assert.Equal(t, authentity.AdminUserID, posts[0].AuthorID)
}

func TestRun_MissingAdmin(t *testing.T) {
	_, err := seed.Run(context.Background(), nil, nil, nil, seed.Admin{Email: "admin@email.com"})
	assert.ErrorIs(t, err, seed.ErrMissingAdmin)
}
