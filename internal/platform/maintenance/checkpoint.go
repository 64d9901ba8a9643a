package maintenance

import (
	"fmt"
	"time"

	"github.com/SlpAus/wuwa-stats-backend/pkg/lifecycle"
	"gorm.io/gorm"
)

const checkpointInterval = 5 * time.Minute

// StartCheckpointLoop 启动一个后台循环，周期性地截断SQLite的WAL文件。
// 服务长期运行且写入稀疏时，WAL不会自然到达自动checkpoint的阈值，
// 这里主动回收，避免日志文件无限增长。
func StartCheckpointLoop(db *gorm.DB, manager *lifecycle.Manager) error {
	handle, err := manager.Register("sqlite-checkpoint")
	if err != nil {
		return err
	}

	go func() {
		defer handle.Close()
		for {
			if err := handle.Sleep(checkpointInterval); err != nil {
				// 收到停机信号
				return
			}
			if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE);").Error; err != nil {
				fmt.Printf("WAL checkpoint失败: %v\n", err)
			}
		}
	}()

	return nil
}
