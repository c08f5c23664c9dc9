package public

import (
	"strconv"

	handlershared "github.com/viewspecash/viewspecash/internal/http/handlers/shared"
	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateSubmissionRequest 创建投稿请求
type CreateSubmissionRequest struct {
	CampaignID uint   `json:"campaign_id" binding:"required"`
	PostLink   string `json:"post_link" binding:"required"`
	Platform   string `json:"platform" binding:"required"`
}

// CreateSubmission 创作者提交作品链接
func (h *Handler) CreateSubmission(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	submission, err := h.SubmissionService.Submit(service.SubmitInput{
		CampaignID: req.CampaignID,
		CreatorID:  creatorID,
		PostLink:   req.PostLink,
		Platform:   req.Platform,
	})
	if err != nil {
		respondSubmissionError(c, err)
		return
	}
	response.Success(c, gin.H{"submission": submission})
}

// ListMySubmissions 查询当前创作者投稿列表
func (h *Handler) ListMySubmissions(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	submissions, total, err := h.SubmissionService.List(repository.SubmissionListFilter{
		Page:         page,
		PageSize:     pageSize,
		CreatorID:    creatorID,
		Status:       c.Query("status"),
		WithCampaign: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.submission_fetch_failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"submissions": submissions}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetMySubmission 查询投稿详情，仅限本人投稿
func (h *Handler) GetMySubmission(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	submission, svcErr := h.SubmissionService.GetDetail(uint(id))
	if svcErr != nil {
		respondSubmissionError(c, svcErr)
		return
	}
	if submission.CreatorID != creatorID {
		respondError(c, response.CodeNotFound, "error.submission_not_found", nil)
		return
	}
	response.Success(c, gin.H{"submission": submission})
}

// CreatorStats 当前创作者数据总览
func (h *Handler) CreatorStats(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	stats, err := h.SubmissionService.GetCreatorStats(creatorID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"stats": stats})
}
