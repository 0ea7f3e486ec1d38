package admin

import "github.com/pizzame/backend/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器下的所有路由都要求携带员工身份令牌。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
