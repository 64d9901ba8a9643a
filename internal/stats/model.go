package stats

import (
	"time"
)

// CharacterStats 定义了角色面板快照在SQLite数据库中的持久化模型。
// 每个(user_id, character_id)对最多保留一行，新的保存在原地覆盖旧值。
type CharacterStats struct {
	ID uint `gorm:"primarykey"`

	// UserID 与 CharacterID 共同构成业务上的唯一键。
	UserID      string `gorm:"uniqueIndex:idx_user_character;not null;type:varchar(64)"`
	CharacterID string `gorm:"uniqueIndex:idx_user_character;not null;type:varchar(64)"`

	// Username 和 CharacterName 是保存时刻展示名的冗余副本。
	Username      string `gorm:"not null"`
	CharacterName string `gorm:"not null"`

	// 六个可选的面板数值，缺失时以NULL持久化。
	// 0 是合法的面板值，与"缺失"严格区分。
	Hp         *int64   `gorm:"column:hp"`
	Attack     *int64   `gorm:"column:attack"`
	Defense    *int64   `gorm:"column:defense"`
	DmgBonus   *float64 `gorm:"column:dmg_bonus"`
	CritRate   *float64 `gorm:"column:crit_rate"`
	CritDamage *float64 `gorm:"column:crit_damage"`

	// CreatedAt 只在首次写入时设置，UpdatedAt 在每次写入时刷新。
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定GORM使用的表名。
func (CharacterStats) TableName() string {
	return "user_character_stats"
}
