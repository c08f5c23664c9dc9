package public

import (
	"strconv"

	"github.com/viewspecash/viewspecash/internal/http/response"

	"github.com/gin-gonic/gin"
)

// IngestViewCountRequest 爬虫播放量回调请求
type IngestViewCountRequest struct {
	SubmissionID uint   `json:"submission_id" binding:"required"`
	ViewCount    *int64 `json:"view_count" binding:"required"`
}

// IngestViewCount 接收外部爬虫投递的播放量。
// 路由挂在爬虫令牌中间件之后，重复投递幂等。
func (h *Handler) IngestViewCount(c *gin.Context) {
	var req IngestViewCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.SubmissionService.RecordViewCount(req.SubmissionID, *req.ViewCount)
	if err != nil {
		respondViewIngestError(c, err)
		return
	}

	requestLog(c).Infow("view_count_ingested",
		"submission_id", result.SubmissionID,
		"view_count", result.ViewCount,
		"delta", result.Delta.String(),
		"status", result.Status,
		"budget_clamped", result.BudgetClamped,
	)
	response.Success(c, gin.H{"result": result})
}

// GetViewSnapshot 查询投稿当前播放量与收益快照（只读）
func (h *Handler) GetViewSnapshot(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	snapshot, svcErr := h.SubmissionService.GetViewSnapshot(uint(id))
	if svcErr != nil {
		respondViewIngestError(c, svcErr)
		return
	}
	response.Success(c, gin.H{"snapshot": snapshot})
}
