package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/wuwa-stats-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 打开到SQLite数据库文件的连接，并返回一个可注入的句柄。
// 整个进程共享这一个句柄，由调用方负责在停机时关闭它。
func Open(cfg config.SqliteConfig) (*gorm.DB, error) {
	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	// 连接到SQLite数据库
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("无法打开SQLite数据库 %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取底层数据库连接: %w", err)
	}

	// SQLite是单写者引擎，限制为单连接，写操作由引擎自行串行化
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	// 开启WAL模式，并设置写锁等待，避免并发请求直接报busy
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("无法设置pragma %q: %w", pragma, err)
		}
	}

	fmt.Printf("数据库连接成功: %s\n", cfg.Path)
	return db, nil
}

// Close 关闭底层的数据库连接。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("无法获取底层数据库连接: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("关闭数据库失败: %w", err)
	}
	fmt.Println("数据库已关闭。")
	return nil
}
