package admin

import (
	"github.com/viewspecash/viewspecash/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAdminDashboard 获取管理端总览数据 (Admin)
func (h *Handler) GetAdminDashboard(c *gin.Context) {
	stats, err := h.DashboardService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}
