package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 推广活动表
// 不变式：Spent <= BudgetCap，Spent 等于该活动下所有未拒绝投稿 earned 之和
type Campaign struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                          // 主键
	AdvertiserID        uint           `gorm:"not null;index" json:"advertiser_id"`                           // 广告主ID
	Title               string         `gorm:"not null" json:"title"`                                         // 活动标题
	Brief               string         `gorm:"default:''" json:"brief"`                                       // 活动说明
	Platform            string         `gorm:"type:varchar(20);not null" json:"platform"`                     // 投放平台
	RatePerThousand     Money          `gorm:"type:decimal(20,2);not null" json:"rate_per_thousand"`          // 千次播放单价
	BudgetCap           Money          `gorm:"type:decimal(20,2);not null" json:"budget_cap"`                 // 活动总预算上限
	MaxPayoutPerCreator Money          `gorm:"type:decimal(20,2);not null" json:"max_payout_per_creator"`     // 单创作者收益上限
	Spent               Money          `gorm:"type:decimal(20,2);not null;default:0" json:"spent"`            // 已累计支出
	Status              string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 活动状态
	StartsAt            *time.Time     `json:"starts_at"`                                                     // 开始时间
	EndsAt              *time.Time     `json:"ends_at"`                                                       // 结束时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Advertiser Advertiser `gorm:"foreignKey:AdvertiserID" json:"advertiser,omitempty"` // 广告主信息
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}

// RemainingBudget 剩余可支出预算
func (c *Campaign) RemainingBudget() Money {
	return NewMoneyFromDecimal(c.BudgetCap.Decimal.Sub(c.Spent.Decimal))
}
