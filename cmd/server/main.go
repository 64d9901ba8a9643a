package main

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/wuwa-stats-backend/api"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/config"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/database"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/health"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/maintenance"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/shutdown"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/startup"
	"github.com/SlpAus/wuwa-stats-backend/internal/stats"
	"github.com/SlpAus/wuwa-stats-backend/internal/user"
	"github.com/SlpAus/wuwa-stats-backend/pkg/lifecycle"
	"github.com/joho/godotenv"
)

func main() {
	// 1. 加载.env（可选）和配置
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("配置加载失败，无法启动: %v", err))
	}

	// 2. 打开数据库并执行幂等迁移，任一失败都是致命错误
	db, err := database.Open(cfg.Database.Sqlite)
	if err != nil {
		panic(fmt.Sprintf("数据库初始化失败，无法启动: %v", err))
	}
	if err := startup.InitializeApplication(db); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 组装存储层、服务层和控制器，句柄显式注入，不使用全局状态
	statsRepo := stats.NewRepository(db)
	userRepo := user.NewRepository(db)
	statsService := stats.NewService(db, statsRepo, userRepo)
	statsHandler := stats.NewHandler(statsService)
	healthHandler := health.NewHandler(db)

	// 4. 启动后台维护任务
	manager := lifecycle.NewManager()
	if err := maintenance.StartCheckpointLoop(db, manager); err != nil {
		panic(fmt.Sprintf("无法启动后台维护任务: %v", err))
	}

	// 5. 组装路由并启动HTTP服务器
	r := api.NewRouter(cfg, statsHandler, healthHandler)
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 6. 阻塞等待停机信号，按顺序释放资源
	shutdown.NewCoordinator(manager, db).ListenForSignalsAndShutdown(server)
}
