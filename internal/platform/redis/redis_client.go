// Package redis は共有のRedisクライアントを生成します。
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNotConfigured はRedisのアドレスが未設定の場合に返されます。
var ErrNotConfigured = errors.New("redis is not configured")

// pingTimeout は起動時の疎通確認のタイムアウトです。
const pingTimeout = 3 * time.Second

// NewRedisClient は addr に接続し、PINGで接続を確認します。
// addr が空の場合は ErrNotConfigured を返し、呼び出し側はRedisなしで動作できます。
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("address", addr).Msg("Redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	log.Info().Str("address", addr).Msg("Redis connection successful")
	return rdb, nil
}
