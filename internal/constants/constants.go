package constants

// 活动状态常量
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// 投稿状态常量
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
	SubmissionStatusEarning  = "earning"
	SubmissionStatusCapped   = "capped"
)

// 投放平台常量
const (
	PlatformInstagramReels = "instagram_reels"
	PlatformYoutubeShorts  = "youtube_shorts"
	PlatformBoth           = "both"
)

// 账本交易类型常量
const (
	TxnTypeEarning = "earning"
	TxnTypePayout  = "payout"
	TxnTypeRefund  = "refund"
)

// 创作者资质审核状态常量
const (
	VettingStatusNone     = "none"
	VettingStatusPending  = "pending"
	VettingStatusApproved = "approved"
	VettingStatusRejected = "rejected"
)

// 提现申请状态常量
const (
	PayoutStatusPendingReview = "pending_review"
	PayoutStatusPaid          = "paid"
	PayoutStatusRejected      = "rejected"
)

// 提现审核动作常量
const (
	PayoutActionPay    = "pay"
	PayoutActionReject = "reject"
)

// 队列常量
const (
	QueueDefault              = "default"
	TaskSubmissionStatusEmail = "submission:status_email"
	TaskCampaignBudgetCheck   = "campaign:budget_check"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "vpc"
)

// 币种常量
const (
	SiteCurrencyDefault = "INR"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS}

// 拒绝投稿时管理员未填写原因的兜底备注
const DefaultRejectReason = "不符合活动投稿要求"
