package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestDialector はURLのスキームに応じて正しいドライバーが選択されることを検証します。
func TestDialector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		driver  string
		wantErr bool
	}{
		{"postgres scheme", "postgres://u:p@localhost:5432/blog", "postgres", false},
		{"postgresql scheme", "postgresql://u:p@localhost/blog", "postgres", false},
		{"sqlite relative", "sqlite:///blog.db", "sqlite", false},
		{"sqlite memory path", ":memory:", "sqlite", false},
		{"bare file", "blog.db", "sqlite", false},
		{"sqlite without path", "sqlite://", "", true},
		{"unknown scheme", "mysql://u:p@localhost/blog", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := Dialector(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, d.Name())
		})
	}
}

// TestWithForeignKeys はSQLiteのDSNに外部キー有効化パラメータが付与されることを検証します。
func TestWithForeignKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "blog.db?_foreign_keys=on", withForeignKeys("blog.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", withForeignKeys("file::memory:?cache=shared"))
	assert.Equal(t, "blog.db?_fk=1", withForeignKeys("blog.db?_fk=1"))
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// リトライ待機で時間がかかるため並列実行しない

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 2, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	connErr := errors.New("connection refused")
	opener := func(dsn string) (*gorm.DB, error) { return nil, connErr }

	_, err := ConnectWithRetry("test-dsn", -time.Second, opener)

	assert.ErrorIs(t, err, connErr)
}

// TestOpen_SQLiteMemory はインメモリSQLiteに接続できることを検証します。
func TestOpen_SQLiteMemory(t *testing.T) {
	t.Parallel()

	db, err := Open(":memory:", 0)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

type uniqueThing struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

// TestIsUniqueViolation は各ドライバーの一意制約違反エラーが判定できることを検証します。
func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	t.Run("sqlite duplicate via gorm translation", func(t *testing.T) {
		t.Parallel()

		db, err := Open(":memory:", 0)
		require.NoError(t, err)
		require.NoError(t, Migrate(db, &uniqueThing{}))
		require.NoError(t, db.Create(&uniqueThing{Name: "a"}).Error)

		err = db.Create(&uniqueThing{Name: "a"}).Error

		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("postgres error code", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	})

	t.Run("other errors", func(t *testing.T) {
		t.Parallel()

		assert.False(t, IsUniqueViolation(nil))
		assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	})
}
