package user

import (
	"time"
)

// User 定义了用户在SQLite数据库中的持久化模型。
// 用户在每次保存面板数据时被创建或刷新，从不被删除。
type User struct {
	// ID 是用户的主键，来自客户端的外部标识，对本服务不透明。
	ID string `gorm:"primarykey;type:varchar(64)"`

	// Username 是用户的展示名，全表唯一。
	Username string `gorm:"uniqueIndex;not null"`

	// CreatedAt 在首次写入时设置，之后的刷新必须保留它。
	CreatedAt time.Time

	// LastActive 在每次保存时被刷新为当前时间。
	LastActive time.Time
}
