package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/wuwa-stats-backend/internal/platform/database"
	"github.com/SlpAus/wuwa-stats-backend/pkg/lifecycle"
	"gorm.io/gorm"
)

const (
	httpShutdownTimeout = 15 * time.Second
	drainTimeout        = 30 * time.Second
)

// Coordinator 负责编排应用程序的优雅停机流程。
// 它持有生命周期管理器和数据库句柄，按顺序关闭各个资源。
type Coordinator struct {
	manager *lifecycle.Manager
	db      *gorm.DB
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator(manager *lifecycle.Manager, db *gorm.DB) *Coordinator {
	return &Coordinator{manager: manager, db: db}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 阻塞直到接收到停机信号
	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	// 1. 关闭HTTP服务器，允许正在进行的请求完成
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("HTTP服务器关闭错误: %v\n", err)
	} else {
		fmt.Println("HTTP服务器已关闭。")
	}

	// 2. 广播停机信号并等待后台服务退出
	c.manager.Shutdown()
	remaining := c.manager.WaitWithTimeout(drainTimeout)
	if len(remaining) == 0 {
		fmt.Println("所有后台服务已退出。")
	} else {
		fmt.Printf("等待超时，以下服务未能按时退出: %v\n", remaining)
	}

	// 3. 最后关闭数据库句柄
	if err := database.Close(c.db); err != nil {
		fmt.Printf("关闭数据库错误: %v\n", err)
	}

	fmt.Println("优雅停机完成。")
}
