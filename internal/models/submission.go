package models

import (
	"time"

	"gorm.io/gorm"
)

// Submission 投稿表
// ViewCount 只允许单调不减；Rejected 为终态，记录保留作审计，不做物理删除
type Submission struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                            // 主键
	CampaignID    uint           `gorm:"not null;index" json:"campaign_id"`                               // 活动ID
	CreatorID     uint           `gorm:"not null;index" json:"creator_id"`                                // 创作者ID
	PostLink      string         `gorm:"not null" json:"post_link"`                                       // 作品链接
	Platform      string         `gorm:"type:varchar(20);not null" json:"platform"`                       // 投放平台
	Status        string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 投稿状态
	AdminNote     string         `gorm:"default:''" json:"admin_note"`                                    // 管理员备注（审批意见/拒绝原因）
	ViewCount     int64          `gorm:"not null;default:0" json:"view_count"`                            // 最新播放量
	Earned        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"earned"`             // 已结算收益
	LastScrapedAt *time.Time     `json:"last_scraped_at"`                                                 // 最近一次播放量刷新时间
	ApprovedAt    *time.Time     `json:"approved_at"`                                                     // 审批通过时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                         // 投稿时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"` // 活动信息
	Creator  Creator  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`   // 创作者信息
}

// TableName 指定表名
func (Submission) TableName() string {
	return "submissions"
}
