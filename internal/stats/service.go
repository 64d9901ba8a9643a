package stats

import (
	"context"

	"github.com/SlpAus/wuwa-stats-backend/internal/user"
	"gorm.io/gorm"
)

// --- Service-Level Data Transfer Objects (DTOs) ---

// SaveInput 是保存操作的完整输入。
// 六个面板数值为nil时表示"缺失"，将以NULL持久化。
type SaveInput struct {
	UserID        string
	Username      string
	CharacterID   string
	CharacterName string

	Hp         *int64
	Attack     *int64
	Defense    *int64
	DmgBonus   *float64
	CritRate   *float64
	CritDamage *float64
}

// --- Service ---

// Service 承载面板数据的业务逻辑，组合用户仓库和面板仓库。
type Service struct {
	db    *gorm.DB
	stats *Repository
	users *user.Repository
}

// NewService 创建一个新的面板数据服务。
func NewService(db *gorm.DB, stats *Repository, users *user.Repository) *Service {
	return &Service{db: db, stats: stats, users: users}
}

// SaveCharacterStats 保存一次角色面板快照。
// 用户刷新和快照写入放在同一个事务中：任一失败则整体回滚，
// 不会出现有用户无面板、或有面板无用户的中间状态。
func (s *Service) SaveCharacterStats(ctx context.Context, input SaveInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).Upsert(ctx, input.UserID, input.Username); err != nil {
			return err
		}

		snapshot := &CharacterStats{
			UserID:        input.UserID,
			Username:      input.Username,
			CharacterID:   input.CharacterID,
			CharacterName: input.CharacterName,
			Hp:            input.Hp,
			Attack:        input.Attack,
			Defense:       input.Defense,
			DmgBonus:      input.DmgBonus,
			CritRate:      input.CritRate,
			CritDamage:    input.CritDamage,
		}
		if _, err := s.stats.WithTx(tx).Upsert(ctx, snapshot); err != nil {
			return err
		}
		return nil
	})
}

// GetCharacterStats 查询一条快照。未找到时返回 (nil, nil)。
func (s *Service) GetCharacterStats(ctx context.Context, userID, characterID string) (*CharacterStats, error) {
	return s.stats.Get(ctx, userID, characterID)
}

// DeleteCharacterStats 删除一条快照，返回被删除的行数。
func (s *Service) DeleteCharacterStats(ctx context.Context, userID, characterID string) (int64, error) {
	return s.stats.Delete(ctx, userID, characterID)
}

// ListUserCharacters 返回一个用户按角色名排序的全部快照。
func (s *Service) ListUserCharacters(ctx context.Context, userID string) ([]CharacterStats, error) {
	return s.stats.ListByUser(ctx, userID)
}

// GetUser 查询一个用户。未找到时返回 (nil, nil)。
func (s *Service) GetUser(ctx context.Context, userID string) (*user.User, error) {
	return s.users.Get(ctx, userID)
}
