package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCampaigns 获取活动列表 (Admin)
func (h *Handler) GetAdminCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	advertiserID, _ := strconv.ParseUint(c.Query("advertiser_id"), 10, 32)

	campaigns, total, err := h.CampaignService.List(repository.CampaignListFilter{
		Page:           page,
		PageSize:       pageSize,
		AdvertiserID:   uint(advertiserID),
		Status:         c.Query("status"),
		Platform:       c.Query("platform"),
		Search:         c.Query("search"),
		WithAdvertiser: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.campaign_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, campaigns, pagination)
}

// GetAdminCampaign 获取活动详情 (Admin)
func (h *Handler) GetAdminCampaign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	campaign, svcErr := h.CampaignService.Get(uint(id))
	if svcErr != nil {
		if errors.Is(svcErr, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.campaign_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.campaign_fetch_failed", svcErr)
		return
	}
	response.Success(c, campaign)
}

// CampaignRequest 创建/更新活动请求
type CampaignRequest struct {
	AdvertiserID        uint         `json:"advertiser_id" binding:"required"`
	Title               string       `json:"title" binding:"required"`
	Brief               string       `json:"brief"`
	Platform            string       `json:"platform" binding:"required"`
	RatePerThousand     models.Money `json:"rate_per_thousand" binding:"required"`
	BudgetCap           models.Money `json:"budget_cap" binding:"required"`
	MaxPayoutPerCreator models.Money `json:"max_payout_per_creator" binding:"required"`
	StartsAt            *time.Time   `json:"starts_at"`
	EndsAt              *time.Time   `json:"ends_at"`
}

func (r CampaignRequest) toServiceInput() service.CampaignInput {
	return service.CampaignInput{
		AdvertiserID:        r.AdvertiserID,
		Title:               r.Title,
		Brief:               r.Brief,
		Platform:            r.Platform,
		RatePerThousand:     r.RatePerThousand,
		BudgetCap:           r.BudgetCap,
		MaxPayoutPerCreator: r.MaxPayoutPerCreator,
		StartsAt:            r.StartsAt,
		EndsAt:              r.EndsAt,
	}
}

func respondCampaignWriteError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.campaign_not_found", nil)
	case errors.Is(err, service.ErrCampaignRateInvalid):
		respondError(c, response.CodeBadRequest, "error.campaign_rate_invalid", nil)
	case errors.Is(err, service.ErrCampaignBudgetInvalid):
		respondError(c, response.CodeBadRequest, "error.campaign_budget_invalid", nil)
	case errors.Is(err, service.ErrCampaignStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.campaign_status_invalid", nil)
	case errors.Is(err, service.ErrSubmissionPlatformInvalid):
		respondError(c, response.CodeBadRequest, "error.submission_platform_invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// CreateAdminCampaign 创建活动 (Admin)
func (h *Handler) CreateAdminCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaign, err := h.CampaignService.Create(req.toServiceInput())
	if err != nil {
		respondCampaignWriteError(c, err, "error.campaign_create_failed")
		return
	}
	response.Success(c, campaign)
}

// UpdateAdminCampaign 更新活动 (Admin)
func (h *Handler) UpdateAdminCampaign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaign, svcErr := h.CampaignService.Update(uint(id), req.toServiceInput())
	if svcErr != nil {
		respondCampaignWriteError(c, svcErr, "error.campaign_update_failed")
		return
	}
	response.Success(c, campaign)
}

// CampaignStatusRequest 活动状态流转请求
type CampaignStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeAdminCampaignStatus 流转活动状态 (Admin)
func (h *Handler) ChangeAdminCampaignStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaign, svcErr := h.CampaignService.ChangeStatus(uint(id), req.Status)
	if svcErr != nil {
		respondCampaignWriteError(c, svcErr, "error.campaign_update_failed")
		return
	}
	response.Success(c, campaign)
}
