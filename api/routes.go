package api

import (
	"net/http"

	"github.com/SlpAus/wuwa-stats-backend/internal/platform/health"
	"github.com/SlpAus/wuwa-stats-backend/internal/stats"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, statsHandler *stats.Handler, healthHandler *health.Handler) {
	// 根路径返回API索引
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Wuthering Waves Stats API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health":            "GET /api/health",
				"getStats":          "GET /api/user-stats/:userId/:characterId",
				"saveStats":         "POST /api/user-stats",
				"deleteStats":       "DELETE /api/user-stats/:userId/:characterId",
				"getUserCharacters": "GET /api/user-stats/:userId",
			},
		})
	})

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		// 面板数据相关的路由 /api/user-stats
		api.POST("/user-stats", statsHandler.SaveStats)
		api.GET("/user-stats/:userId", statsHandler.GetUserCharacters)
		api.GET("/user-stats/:userId/:characterId", statsHandler.GetStats)
		api.DELETE("/user-stats/:userId/:characterId", statsHandler.DeleteStats)
	}
}
