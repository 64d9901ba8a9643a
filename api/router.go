package api

import (
	"net/http"
	"time"

	"github.com/SlpAus/wuwa-stats-backend/internal/platform/config"
	"github.com/SlpAus/wuwa-stats-backend/internal/platform/health"
	"github.com/SlpAus/wuwa-stats-backend/internal/stats"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter 组装Gin引擎：中间件、CORS和全部API路由。
func NewRouter(cfg *config.Config, statsHandler *stats.Handler, healthHandler *health.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		// 允许的前端地址，来自配置
		AllowOrigins: cfg.Server.Cors.AllowedOrigins,
		// 允许的HTTP方法
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		// 允许的请求头
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		// 暴露给前端的响应头
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		// 是否允许携带Cookies
		AllowCredentials: true,
		// 预检请求(OPTIONS)的缓存时间
		MaxAge: 12 * time.Hour,
	}))

	r.Use(RequestLoggerMiddleware())

	SetupRoutes(r, statsHandler, healthHandler)

	// 未匹配的路由也返回统一的JSON信封
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "路由 " + c.Request.URL.Path + " 不存在",
		})
	})

	return r
}
