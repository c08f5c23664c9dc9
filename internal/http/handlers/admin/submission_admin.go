package admin

import (
	"errors"
	"strconv"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminSubmissions 获取投稿列表 (Admin)
func (h *Handler) GetAdminSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	campaignID, _ := strconv.ParseUint(c.Query("campaign_id"), 10, 32)
	creatorID, _ := strconv.ParseUint(c.Query("creator_id"), 10, 32)

	submissions, total, err := h.SubmissionService.List(repository.SubmissionListFilter{
		Page:         page,
		PageSize:     pageSize,
		CampaignID:   uint(campaignID),
		CreatorID:    uint(creatorID),
		Status:       c.Query("status"),
		Platform:     c.Query("platform"),
		WithCampaign: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.submission_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, submissions, pagination)
}

// GetAdminSubmission 获取投稿详情 (Admin)
func (h *Handler) GetAdminSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	submission, svcErr := h.SubmissionService.GetDetail(uint(id))
	if svcErr != nil {
		if errors.Is(svcErr, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.submission_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.submission_fetch_failed", svcErr)
		return
	}
	response.Success(c, submission)
}

// SubmissionReviewRequest 投稿审批请求
type SubmissionReviewRequest struct {
	Note string `json:"note"`
}

func respondSubmissionReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.submission_not_found", nil)
	case errors.Is(err, service.ErrSubmissionStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.submission_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}

// ApproveAdminSubmission 审批通过投稿 (Admin)
func (h *Handler) ApproveAdminSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req SubmissionReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	submission, svcErr := h.SubmissionService.Approve(uint(id), req.Note)
	if svcErr != nil {
		respondSubmissionReviewError(c, svcErr)
		return
	}
	response.Success(c, submission)
}

// RejectAdminSubmission 拒绝投稿 (Admin)
func (h *Handler) RejectAdminSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req SubmissionReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	submission, svcErr := h.SubmissionService.Reject(uint(id), req.Note)
	if svcErr != nil {
		respondSubmissionReviewError(c, svcErr)
		return
	}
	response.Success(c, submission)
}
