package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/viewspecash/viewspecash/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// CreatorAuthState 创作者鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// 该结构仅用于服务端 Redis 缓存
// 字段保持简洁，避免重复查询数据库
type CreatorAuthState struct {
	CreatorID          uint   `json:"creator_id"`
	VettingStatus      string `json:"vetting_status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// AdminAuthState 管理员鉴权快照
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super"`
	UpdatedAt          int64  `json:"updated_at"`
}

func creatorAuthStateKey(creatorID uint) string {
	return fmt.Sprintf("auth:creator:%d", creatorID)
}

func adminAuthStateKey(adminID uint) string {
	return fmt.Sprintf("auth:admin:%d", adminID)
}

// BuildCreatorAuthState 从创作者模型构建鉴权快照
func BuildCreatorAuthState(creator *models.Creator) *CreatorAuthState {
	if creator == nil {
		return nil
	}
	state := &CreatorAuthState{
		CreatorID:     creator.ID,
		VettingStatus: creator.VettingStatus,
		TokenVersion:  creator.TokenVersion,
		UpdatedAt:     time.Now().Unix(),
	}
	if creator.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = creator.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildAdminAuthState 从管理员模型构建鉴权快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
		UpdatedAt:    time.Now().Unix(),
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// GetCreatorAuthState 获取创作者鉴权快照
func GetCreatorAuthState(ctx context.Context, creatorID uint) (*CreatorAuthState, bool, error) {
	if creatorID == 0 {
		return nil, false, nil
	}
	var state CreatorAuthState
	hit, err := GetJSON(ctx, creatorAuthStateKey(creatorID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCreatorAuthState 写入创作者鉴权快照
func SetCreatorAuthState(ctx context.Context, state *CreatorAuthState) error {
	if state == nil || state.CreatorID == 0 {
		return nil
	}
	return SetJSON(ctx, creatorAuthStateKey(state.CreatorID), state, authStateCacheTTL)
}

// DelCreatorAuthState 删除创作者鉴权快照
func DelCreatorAuthState(ctx context.Context, creatorID uint) error {
	if creatorID == 0 {
		return nil
	}
	return Del(ctx, creatorAuthStateKey(creatorID))
}

// GetAdminAuthState 获取管理员鉴权快照
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入管理员鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateCacheTTL)
}

// DelAdminAuthState 删除管理员鉴权快照
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, adminAuthStateKey(adminID))
}
