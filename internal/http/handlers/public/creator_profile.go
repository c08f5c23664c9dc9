package public

import (
	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatorMe 获取当前创作者资料
func (h *Handler) CreatorMe(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	creator, err := h.CreatorService.Get(creatorID)
	if err != nil {
		respondVettingError(c, err)
		return
	}
	response.Success(c, gin.H{"creator": creatorProfilePayload(creator)})
}

// CreatorUpdateProfileRequest 更新资料请求
type CreatorUpdateProfileRequest struct {
	DisplayName     string `json:"display_name"`
	InstagramHandle string `json:"instagram_handle"`
	YoutubeHandle   string `json:"youtube_handle"`
	UpiID           string `json:"upi_id"`
}

// CreatorUpdateProfile 更新当前创作者资料
func (h *Handler) CreatorUpdateProfile(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	var req CreatorUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	creator, err := h.CreatorService.UpdateProfile(creatorID, service.ProfileInput{
		DisplayName:     req.DisplayName,
		InstagramHandle: req.InstagramHandle,
		YoutubeHandle:   req.YoutubeHandle,
		UpiID:           req.UpiID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.profile_update_failed", err)
		return
	}
	response.Success(c, gin.H{"creator": creatorProfilePayload(creator)})
}

// CreatorSubmitVetting 申请资质审核
func (h *Handler) CreatorSubmitVetting(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	creator, err := h.CreatorService.SubmitVetting(creatorID)
	if err != nil {
		respondVettingError(c, err)
		return
	}
	response.Success(c, gin.H{
		"vetting_status": creator.VettingStatus,
	})
}
