package public

import (
	"errors"

	"github.com/viewspecash/viewspecash/internal/http/response"
	"github.com/viewspecash/viewspecash/internal/i18n"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatorRegisterRequest 创作者注册请求
type CreatorRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// CreatorRegister 创作者注册
func (h *Handler) CreatorRegister(c *gin.Context) {
	var req CreatorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	creator, err := h.CreatorAuthService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondWeakPassword(c, err)
			return
		}
		respondCreatorAuthError(c, err)
		return
	}

	response.Success(c, gin.H{"creator": creatorProfilePayload(creator)})
}

// CreatorLoginRequest 创作者登录请求
type CreatorLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreatorLogin 创作者登录
func (h *Handler) CreatorLogin(c *gin.Context) {
	var req CreatorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	creator, token, expiresAt, err := h.CreatorAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondCreatorAuthError(c, err)
		return
	}

	response.Success(c, gin.H{
		"creator":    creatorProfilePayload(creator),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// CreatorChangePasswordRequest 修改密码请求
type CreatorChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// CreatorChangePassword 创作者修改密码
func (h *Handler) CreatorChangePassword(c *gin.Context) {
	creatorID, ok := getCreatorID(c)
	if !ok {
		return
	}
	var req CreatorChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CreatorAuthService.ChangePassword(creatorID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondWeakPassword(c, err)
			return
		}
		respondCreatorAuthError(c, err)
		return
	}

	response.Success(c, gin.H{"changed": true})
}

func respondWeakPassword(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
}

func creatorProfilePayload(creator *models.Creator) gin.H {
	return gin.H{
		"id":               creator.ID,
		"email":            creator.Email,
		"display_name":     creator.DisplayName,
		"instagram_handle": creator.InstagramHandle,
		"youtube_handle":   creator.YoutubeHandle,
		"upi_id":           creator.UpiID,
		"vetting_status":   creator.VettingStatus,
		"vetting_note":     creator.VettingNote,
		"created_at":       creator.CreatedAt,
	}
}
