package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 封装了对users表的所有持久化操作。
// 它持有一个被注入的数据库句柄，不使用任何包级全局状态。
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建一个新的用户仓库。
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx 返回一个在给定事务上操作的仓库副本。
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Upsert 插入或刷新一个用户。
// 冲突时只更新username和last_active，created_at保留首次写入的值。
func (r *Repository) Upsert(ctx context.Context, id, username string) (*User, error) {
	now := time.Now()
	u := User{
		ID:         id,
		Username:   username,
		CreatedAt:  now,
		LastActive: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"username":    username,
			"last_active": now,
		}),
	}).Create(&u).Error
	if err != nil {
		return nil, fmt.Errorf("无法保存用户 %s: %w", id, err)
	}

	return &u, nil
}

// Get 按主键查询用户。未找到时返回 (nil, nil)。
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询用户 %s: %w", id, err)
	}
	return &u, nil
}
