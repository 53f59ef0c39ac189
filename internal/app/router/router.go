// Package router はginエンジンとルーティングテーブルを構築します。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authmw "blog_backend/internal/feature/auth/transport/middleware"
	bloghandler "blog_backend/internal/feature/blog/transport/handler"
	"blog_backend/internal/platform/http/handler"
	"blog_backend/internal/platform/http/middleware"
)

// Deps はルーティングに必要なハンドラーと設定です。
type Deps struct {
	Auth   *authhandler.AuthHandler
	Blog   *bloghandler.BlogHandler
	Health *handler.HealthHandler

	// Users はリクエストごとにセッションCookieを解決します。
	Users      authmw.UserResolver
	CookieName string

	// AllowedOrigins に指定したオリジンでCORSを有効にします。空の場合は無効です。
	AllowedOrigins []string
}

// NewRouter はブログを提供するginエンジンを返します。
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log.Logger))

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)

	// 以降のルートはセッションCookieから現在のユーザーを解決する
	site := r.Group("/", authmw.Authenticate(d.Users, d.CookieName))
	{
		site.GET("/", d.Blog.Index)
		site.GET("/about", d.Blog.About)
		site.GET("/contact", d.Blog.Contact)

		site.GET("/register", d.Auth.RegisterPage)
		site.POST("/register", d.Auth.Register)
		site.GET("/login", d.Auth.LoginPage)
		site.POST("/login", d.Auth.Login)
		site.GET("/logout", d.Auth.Logout)

		site.GET("/post/:id", d.Blog.ShowPost)
		// コメント投稿はログイン必須
		site.POST("/post/:id", authmw.RequireLogin(), d.Blog.CreateComment)
	}

	// 管理者（id 1）専用
	admin := site.Group("/", authmw.RequireAdmin())
	{
		admin.GET("/new-post", d.Blog.NewPostPage)
		admin.POST("/new-post", d.Blog.CreatePost)
		admin.GET("/edit-post/:id", d.Blog.EditPostPage)
		admin.POST("/edit-post/:id", d.Blog.UpdatePost)
		admin.GET("/delete/:id", d.Blog.DeletePost)
	}

	return r
}
