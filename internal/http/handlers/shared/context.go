package shared

import (
	"strings"

	"github.com/pizzame/backend/internal/cache"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionKeyHeader 匿名购物车会话标识头
const SessionKeyHeader = "X-Session-Key"

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid context value", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid context value", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid context value type", nil)
		return 0, false
	}
}

// ResolveCartOwner 解析购物车归属：优先登录用户，否则匿名会话头。
// 会话在缓存中已过期时丢弃会话键，让其重新领取购物车。
func ResolveCartOwner(c *gin.Context) service.CartOwner {
	owner := service.CartOwner{}
	if value, ok := c.Get("user_id"); ok {
		if userID, ok := value.(uint); ok {
			owner.UserID = userID
			return owner
		}
	}
	sessionKey := strings.TrimSpace(c.GetHeader(SessionKeyHeader))
	if sessionKey != "" {
		if alive, err := cache.GuestCartAlive(c.Request.Context(), sessionKey); err == nil && !alive {
			sessionKey = ""
		}
	}
	owner.SessionKey = sessionKey
	return owner
}
