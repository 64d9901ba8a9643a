package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 是响应中携带请求ID的头部名称。
const RequestIDHeader = "X-Request-ID"

// RequestLoggerMiddleware 为每个请求分配一个ID并打印访问日志。
// 对写请求额外打印请求体，方便排查前端提交的数据问题。
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header(RequestIDHeader, requestID)

		fmt.Printf("%s - [%s] %s %s\n",
			time.Now().Format(time.RFC3339), requestID, c.Request.Method, c.Request.URL.Path)

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			// 读出请求体后必须放回去，后续的绑定还要再读一次
			body, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
				fmt.Printf("[%s] 请求体: %s\n", requestID, string(body))
			}
		}

		c.Next()
	}
}
