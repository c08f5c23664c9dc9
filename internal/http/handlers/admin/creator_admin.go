package admin

import (
	"errors"
	"strconv"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCreators 获取创作者列表 (Admin)
func (h *Handler) GetAdminCreators(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	creators, total, err := h.CreatorService.List(repository.CreatorListFilter{
		Page:          page,
		PageSize:      pageSize,
		Keyword:       c.Query("keyword"),
		VettingStatus: c.Query("vetting_status"),
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
	response.SuccessWithPage(c, creators, pagination)
}

// GetAdminCreator 获取创作者详情 (Admin)
func (h *Handler) GetAdminCreator(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	creator, svcErr := h.CreatorService.Get(uint(id))
	if svcErr != nil {
		if errors.Is(svcErr, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.creator_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", svcErr)
		return
	}
	response.Success(c, creator)
}

// VettingReviewRequest 资质审核请求
type VettingReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// ReviewAdminCreatorVetting 审核创作者资质 (Admin)
func (h *Handler) ReviewAdminCreatorVetting(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req VettingReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	creator, svcErr := h.CreatorService.ReviewVetting(uint(id), req.Approve, req.Note)
	if svcErr != nil {
		switch {
		case errors.Is(svcErr, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.creator_not_found", nil)
		case errors.Is(svcErr, service.ErrVettingAlreadyReviewed):
			respondError(c, response.CodeBadRequest, "error.vetting_already_reviewed", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", svcErr)
		}
		return
	}
	response.Success(c, creator)
}
