package admin

import (
	"strconv"
	"strings"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/models"

	"github.com/gin-gonic/gin"
)

// GetAdminAdvertisers 获取广告主列表 (Admin)
func (h *Handler) GetAdminAdvertisers(c *gin.Context) {
	advertisers, err := h.AdvertiserRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, advertisers)
}

// AdvertiserRequest 创建/更新广告主请求
type AdvertiserRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email"`
	Notes        string `json:"notes"`
}

// CreateAdminAdvertiser 创建广告主 (Admin)
func (h *Handler) CreateAdminAdvertiser(c *gin.Context) {
	var req AdvertiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	advertiser := &models.Advertiser{
		Name:         strings.TrimSpace(req.Name),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Notes:        strings.TrimSpace(req.Notes),
	}
	if err := h.AdvertiserRepo.Create(advertiser); err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, advertiser)
}

// UpdateAdminAdvertiser 更新广告主 (Admin)
func (h *Handler) UpdateAdminAdvertiser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req AdvertiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	advertiser, repoErr := h.AdvertiserRepo.GetByID(uint(id))
	if repoErr != nil {
		respondError(c, response.CodeInternal, "error.internal", repoErr)
		return
	}
	if advertiser == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	advertiser.Name = strings.TrimSpace(req.Name)
	advertiser.ContactEmail = strings.TrimSpace(req.ContactEmail)
	advertiser.Notes = strings.TrimSpace(req.Notes)
	if err := h.AdvertiserRepo.Update(advertiser); err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, advertiser)
}
