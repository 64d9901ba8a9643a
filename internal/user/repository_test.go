package user

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	return NewRepository(db)
}

func TestRepository_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	saved, err := repo.Upsert(ctx, "u1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID)
	assert.Equal(t, "Alice", saved.Username)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "Alice", got.Username)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.LastActive.IsZero())
}

func TestRepository_Get_Absent(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	got, err := repo.Get(ctx, "no-such-user")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_Upsert_PreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	_, err := repo.Upsert(ctx, "u1", "Alice")
	require.NoError(t, err)

	first, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, first)

	// 间隔一段时间后刷新，created_at必须保留首次写入的值
	time.Sleep(20 * time.Millisecond)
	_, err = repo.Upsert(ctx, "u1", "Alice Renamed")
	require.NoError(t, err)

	second, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, "Alice Renamed", second.Username)
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Millisecond)
	assert.True(t, second.LastActive.After(first.LastActive))

	// 仍然只有一行
	var count int64
	require.NoError(t, repo.db.Model(&User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
