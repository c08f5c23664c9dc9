package public

import (
	"errors"
	"strconv"

	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// ListActiveCampaigns 获取开放投稿的活动列表
func (h *Handler) ListActiveCampaigns(c *gin.Context) {
	campaigns, err := h.CampaignService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.campaign_fetch_failed", err)
		return
	}

	items := make([]gin.H, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, publicCampaignPayload(&campaigns[i]))
	}
	response.Success(c, gin.H{"campaigns": items})
}

// GetCampaign 获取活动详情（仅开放中的活动对创作者可见）
func (h *Handler) GetCampaign(c *gin.Context) {
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
	if campaign.Status != constants.CampaignStatusActive {
		respondError(c, response.CodeNotFound, "error.campaign_not_found", nil)
		return
	}
	response.Success(c, gin.H{"campaign": publicCampaignPayload(campaign)})
}

// publicCampaignPayload 创作者可见的活动字段，隐藏预算与支出明细
func publicCampaignPayload(campaign *models.Campaign) gin.H {
	payload := gin.H{
		"id":                     campaign.ID,
		"title":                  campaign.Title,
		"brief":                  campaign.Brief,
		"platform":               campaign.Platform,
		"rate_per_thousand":      campaign.RatePerThousand,
		"max_payout_per_creator": campaign.MaxPayoutPerCreator,
		"status":                 campaign.Status,
		"starts_at":              campaign.StartsAt,
		"ends_at":                campaign.EndsAt,
		"budget_exhausted":       !campaign.RemainingBudget().Decimal.IsPositive(),
	}
	if campaign.Advertiser.ID != 0 {
		payload["advertiser_name"] = campaign.Advertiser.Name
	}
	return payload
}
