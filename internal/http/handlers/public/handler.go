package public

import "github.com/viewspecash/viewspecash/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：该处理器用于公开活动列表、创作者侧 API 与爬虫回调。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
