package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const correlationIDKey = "correlationID"
const correlationIDHeader = "X-Correlation-ID"

// CorrelationID 确保每个请求都带有关联 ID：沿用调用方传入的值，缺失时生成。
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(correlationIDHeader, id)

		c.Next()
	}
}

// CorrelationIDFromContext 从上下文中取出关联 ID，未注入时返回空串。
func CorrelationIDFromContext(c *gin.Context) string {
	if value, ok := c.Get(correlationIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
