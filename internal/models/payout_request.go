package models

import (
	"time"

	"gorm.io/gorm"
)

// PayoutRequest 提现申请表
// UpiID 在申请时快照，避免创作者改绑后打款信息漂移
type PayoutRequest struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                                   // 主键
	CreatorID  uint           `gorm:"not null;index" json:"creator_id"`                                       // 创作者ID
	Amount     Money          `gorm:"type:decimal(20,2);not null" json:"amount"`                              // 申请金额
	UpiID      string         `gorm:"not null" json:"upi_id"`                                                 // UPI 收款账号快照
	Status     string         `gorm:"type:varchar(20);not null;default:'pending_review';index" json:"status"` // 申请状态
	ReviewNote string         `gorm:"default:''" json:"review_note"`                                          // 审核备注
	ReviewedAt *time.Time     `json:"reviewed_at"`                                                            // 审核时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                                // 申请时间
	UpdatedAt  time.Time      `json:"updated_at"`                                                             // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                                         // 软删除时间

	Creator Creator `gorm:"foreignKey:CreatorID" json:"creator,omitempty"` // 创作者信息
}

// TableName 指定表名
func (PayoutRequest) TableName() string {
	return "payout_requests"
}
