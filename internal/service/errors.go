package service

import "errors"

// 服务层统一哨兵错误，处理器用 errors.Is 映射到文案 key
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrStorageUnavailable = errors.New("存储服务不可用")

	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrEmailExists        = errors.New("邮箱已被注册")

	ErrCreatorNotVetted         = errors.New("创作者资质未通过审核")
	ErrVettingAlreadyReviewed   = errors.New("资质审核已处理")
	ErrVettingProfileIncomplete = errors.New("创作者资料不完整")

	ErrCampaignNotActive     = errors.New("活动未开放投稿")
	ErrCampaignStatusInvalid = errors.New("活动状态不允许该操作")
	ErrCampaignRateInvalid   = errors.New("千次播放单价无效")
	ErrCampaignBudgetInvalid = errors.New("活动预算配置无效")

	ErrSubmissionLinkInvalid     = errors.New("作品链接格式无效")
	ErrSubmissionPlatformInvalid = errors.New("投放平台无效")
	ErrSubmissionStatusInvalid   = errors.New("投稿当前状态不允许该操作")

	ErrViewCountInvalid   = errors.New("播放量数值无效")
	ErrViewCountRegressed = errors.New("播放量不允许回退")

	ErrPayoutAmountInvalid   = errors.New("提现金额无效")
	ErrPayoutBelowMinimum    = errors.New("提现金额低于最低限额")
	ErrInsufficientBalance   = errors.New("钱包余额不足")
	ErrPayoutUpiMissing      = errors.New("未配置 UPI 收款账号")
	ErrPayoutAlreadyReviewed = errors.New("提现申请已处理")
)
