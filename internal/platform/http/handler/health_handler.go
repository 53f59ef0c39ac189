// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog_backend/internal/api"
)

// Pinger は接続先のストアに到達できるかを報告します。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc は関数をPingerとして扱うためのアダプターです。
type PingFunc func(ctx context.Context) error

// PingContext は f を呼び出します。
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler は /healthz を提供します。
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler はHealthHandlerを生成します。db が nil の場合はDBの疎通確認を省略します。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HEAD は 200、OPTIONS は 204 を返し、それ以外はDB疎通を含むJSONを返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	if h.db == nil {
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Database: "skipped"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("health: database ping failed")
		c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Database: "ok"})
}
