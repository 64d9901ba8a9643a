package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler 提供健康检查端点，持有与业务共享的数据库句柄。
type Handler struct {
	db *gorm.DB
}

// NewHandler 创建一个新的健康检查控制器。
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Health 处理健康检查请求
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	// 对底层连接做一次ping，确认数据库文件仍然可用
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "数据库不可用",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "服务运行正常",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
