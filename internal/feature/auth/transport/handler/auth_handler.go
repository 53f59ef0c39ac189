// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/platform/http/flash"
	"blog_backend/internal/platform/http/render"
)

// ユーザー向けの通知メッセージ
const (
	NoticeAlreadyRegistered = "The user is already registered. Try login instead."
	NoticeUnknownUser       = "The user does not exist."
	NoticeWrongPassword     = "The password does not match."
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	// Authenticate はメールアドレスとパスワードを検証します。
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	// StartSession はセッションを作成し、Cookie用のトークンを返します。
	StartSession(ctx context.Context, user *entity.User, client usecase.ClientInfo) (string, *entity.Session, error)
	// EndSession はトークンが指すセッションを失効させます。
	EndSession(ctx context.Context, token string) error
}

// AuthHandler は登録・ログイン・ログアウトのHTTPリクエストを処理します。
type AuthHandler struct {
	auth   AuthUsecase
	cookie CookieConfig
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// RegisterPage は空の登録フォームを表示します。
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render.Page(c, http.StatusOK, "register", gin.H{"form": dto.RegisterForm{}})
}

// Register はユーザー登録を処理します。
// - バリデーションエラー時は422でフォームを再表示
// - メール重複時は通知を付けて/loginへリダイレクト
// - 成功時はログイン状態にして/へリダイレクト
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render.Page(c, http.StatusUnprocessableEntity, "register", gin.H{
			"form":   form.Redacted(),
			"errors": render.FieldErrors(err),
		})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Name, form.Email, form.Password)
	if errors.Is(err, usecase.ErrEmailAlreadyExists) {
		log.Warn().Str("email", form.Email).Str("remote_addr", c.ClientIP()).Msg("register: email already registered")
		flash.Add(c, NoticeAlreadyRegistered)
		render.Redirect(c, "/login")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("email", form.Email).Msg("register failed")
		render.InternalError(c)
		return
	}

	if !h.startSession(c, user) {
		return
	}
	log.Info().Uint("user_id", user.ID).Str("remote_addr", c.ClientIP()).Msg("user registered")
	render.Redirect(c, "/")
}

// LoginPage は空のログインフォームを表示します。
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render.Page(c, http.StatusOK, "login", gin.H{"form": dto.LoginForm{}})
}

// Login はユーザーログインを処理します。
// 未登録のメールアドレスとパスワード不一致はそれぞれ別の通知で401再表示します。
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render.Page(c, http.StatusUnprocessableEntity, "login", gin.H{
			"form":   form.Redacted(),
			"errors": render.FieldErrors(err),
		})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		log.Warn().Err(err).Str("email", form.Email).Str("remote_addr", c.ClientIP()).Msg("login failed")
		notice := NoticeWrongPassword
		if errors.Is(err, usecase.ErrUnknownEmail) {
			notice = NoticeUnknownUser
		}
		flash.Add(c, notice)
		render.Page(c, http.StatusUnauthorized, "login", gin.H{"form": form.Redacted()})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		render.InternalError(c)
		return
	}

	if !h.startSession(c, user) {
		return
	}
	log.Info().Uint("user_id", user.ID).Str("remote_addr", c.ClientIP()).Msg("user login successful")
	render.Redirect(c, "/")
}

// Logout は現在のセッションを失効させ、Cookieを削除して / へリダイレクトします。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.endPreviousSession(c)
	h.cookie.clear(c)
	render.Redirect(c, "/")
}

// startSession はブラウザが提示したセッションを破棄し、user の新しいセッションを開始します。
// 失敗時はエラーレスポンスを書き込み false を返します。
func (h *AuthHandler) startSession(c *gin.Context, user *entity.User) bool {
	h.endPreviousSession(c)

	token, _, err := h.auth.StartSession(c.Request.Context(), user, usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to start session")
		render.InternalError(c)
		return false
	}
	h.cookie.set(c, token)
	return true
}

func (h *AuthHandler) endPreviousSession(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil || token == "" {
		return
	}
	if err := h.auth.EndSession(c.Request.Context(), token); err != nil {
		log.Error().Err(err).Msg("failed to end session")
	}
}
