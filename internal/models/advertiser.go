package models

import (
	"time"

	"gorm.io/gorm"
)

// Advertiser 广告主表
// 广告主不登录系统，由管理员代为维护，仅作为活动归属方
type Advertiser struct {
	ID           uint           `gorm:"primarykey" json:"id"`            // 主键
	Name         string         `gorm:"not null;index" json:"name"`      // 广告主名称
	ContactEmail string         `gorm:"default:''" json:"contact_email"` // 联系邮箱
	Notes        string         `gorm:"default:''" json:"notes"`         // 备注
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`         // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                      // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                  // 软删除时间
}

// TableName 指定表名
func (Advertiser) TableName() string {
	return "advertisers"
}
