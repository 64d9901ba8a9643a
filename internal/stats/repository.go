package stats

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 封装了对user_character_stats表的所有持久化操作。
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建一个新的面板数据仓库。
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx 返回一个在给定事务上操作的仓库副本。
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Get 按(userID, characterID)精确查询一条快照。未找到时返回 (nil, nil)。
func (r *Repository) Get(ctx context.Context, userID, characterID string) (*CharacterStats, error) {
	var s CharacterStats
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND character_id = ?", userID, characterID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询面板数据 (%s, %s): %w", userID, characterID, err)
	}
	return &s, nil
}

// Upsert 原子地插入或覆盖一条快照。
// (user_id, character_id)冲突时覆盖全部面板字段并刷新updated_at，
// created_at与代理主键保持不变。返回受影响的行数。
func (r *Repository) Upsert(ctx context.Context, s *CharacterStats) (int64, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "character_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "character_name",
			"hp", "attack", "defense",
			"dmg_bonus", "crit_rate", "crit_damage",
			"updated_at",
		}),
	}).Create(s)
	if tx.Error != nil {
		return 0, fmt.Errorf("无法保存面板数据 (%s, %s): %w", s.UserID, s.CharacterID, tx.Error)
	}
	return tx.RowsAffected, nil
}

// Delete 删除(userID, characterID)对应的快照。
// 返回被删除的行数；没有匹配的行不是错误，返回0。
func (r *Repository) Delete(ctx context.Context, userID, characterID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND character_id = ?", userID, characterID).
		Delete(&CharacterStats{})
	if tx.Error != nil {
		return 0, fmt.Errorf("无法删除面板数据 (%s, %s): %w", userID, characterID, tx.Error)
	}
	return tx.RowsAffected, nil
}

// ListByUser 返回一个用户的全部角色快照，按角色名升序排列。
// 排序使用引擎默认的BINARY排序规则。没有任何快照时返回空切片。
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]CharacterStats, error) {
	characters := []CharacterStats{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("character_name ASC").
		Find(&characters).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询用户 %s 的角色列表: %w", userID, err)
	}
	return characters, nil
}
