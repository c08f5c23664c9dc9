package repository

import "time"

// CampaignListFilter 查询活动列表的过滤条件
type CampaignListFilter struct {
	Page           int
	PageSize       int
	AdvertiserID   uint
	Status         string
	Platform       string
	Search         string
	OnlyActive     bool
	WithAdvertiser bool
}

// SubmissionListFilter 查询投稿列表的过滤条件
type SubmissionListFilter struct {
	Page         int
	PageSize     int
	CampaignID   uint
	CreatorID    uint
	Status       string
	Platform     string
	WithCampaign bool
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// TransactionListFilter 查询账本交易列表的过滤条件
type TransactionListFilter struct {
	Page         int
	PageSize     int
	CreatorID    uint
	SubmissionID uint
	Type         string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// CreatorListFilter 查询创作者列表的过滤条件
type CreatorListFilter struct {
	Page          int
	PageSize      int
	Keyword       string
	VettingStatus string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// PayoutRequestListFilter 查询提现申请列表的过滤条件
type PayoutRequestListFilter struct {
	Page        int
	PageSize    int
	CreatorID   uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
