package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio/internal/accesscontrol"
	"portfolio/internal/auth"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware 校验访问令牌并将 userID 与角色注入上下文。
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		rawToken := parts[1]
		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(rawToken)
		if err != nil || claims.TokenType != "access" {
			abortUnauthorized(c)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// SessionFromContext 返回当前请求的会话视图，未认证时为 nil。
func SessionFromContext(c *gin.Context) *accesscontrol.Session {
	userID, ok := c.Value(userIDKey).(string)
	if !ok || userID == "" {
		return nil
	}
	role, _ := c.Value(userRoleKey).(string)
	return &accesscontrol.Session{UserID: userID, Role: role}
}

// SetSession 将会话写入上下文，供测试与内部调用使用。
func SetSession(c *gin.Context, session accesscontrol.Session) {
	c.Set(userIDKey, session.UserID)
	c.Set(userRoleKey, session.Role)
}
