package admin

import (
	"errors"
	"strconv"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminPayouts 获取提现申请列表 (Admin)
func (h *Handler) GetAdminPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	creatorID, _ := strconv.ParseUint(c.Query("creator_id"), 10, 32)

	requests, total, err := h.WalletService.ListPayouts(repository.PayoutRequestListFilter{
		Page:      page,
		PageSize:  pageSize,
		CreatorID: uint(creatorID),
		Status:    c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, requests, pagination)
}

// PayoutReviewRequest 提现审核请求
type PayoutReviewRequest struct {
	Action string `json:"action" binding:"required"`
	Note   string `json:"note"`
}

// ReviewAdminPayout 审核提现申请 (Admin)
func (h *Handler) ReviewAdminPayout(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req PayoutReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, svcErr := h.WalletService.ReviewPayout(uint(id), req.Action, req.Note)
	if svcErr != nil {
		switch {
		case errors.Is(svcErr, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.payout_not_found", nil)
		case errors.Is(svcErr, service.ErrPayoutAlreadyReviewed):
			respondError(c, response.CodeBadRequest, "error.payout_already_reviewed", nil)
		case errors.Is(svcErr, service.ErrPayoutAmountInvalid):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		case errors.Is(svcErr, service.ErrInsufficientBalance):
			respondError(c, response.CodeBadRequest, "error.payout_insufficient_balance", nil)
		default:
			respondError(c, response.CodeInternal, "error.payout_review_failed", svcErr)
		}
		return
	}
	response.Success(c, request)
}
