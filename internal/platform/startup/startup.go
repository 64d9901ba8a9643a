package startup

import (
	"fmt"

	"github.com/SlpAus/wuwa-stats-backend/internal/stats"
	"github.com/SlpAus/wuwa-stats-backend/internal/user"
	"gorm.io/gorm"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 它确保两张表都已存在。任一迁移失败都必须让进程失败退出，
// 带着缺表继续运行只会让后续每个请求以不可预测的方式出错。
func InitializeApplication(db *gorm.DB) error {
	fmt.Println("开始应用首次初始化...")

	if err := user.Migrate(db); err != nil {
		return err
	}
	if err := stats.Migrate(db); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
