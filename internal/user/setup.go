package user

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate 负责自动迁移users表结构。
// 迁移是幂等的，每次启动都可以安全执行；失败应被视为致命错误。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移users表: %w", err)
	}
	fmt.Println("users表迁移成功。")
	return nil
}
