package models

import (
	"time"

	"gorm.io/gorm"
)

// Creator 创作者表
// Balance / TotalEarnings 仅允许通过账本交易更新，保持与 transactions 表一致
type Creator struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`                          // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                                          // 密码哈希（不返回给前端）
	DisplayName        string         `gorm:"default:''" json:"display_name"`                             // 昵称
	InstagramHandle    string         `gorm:"default:''" json:"instagram_handle"`                         // Instagram 账号
	YoutubeHandle      string         `gorm:"default:''" json:"youtube_handle"`                           // YouTube 账号
	UpiID              string         `gorm:"default:''" json:"upi_id"`                                   // UPI 收款账号
	VettingStatus      string         `gorm:"type:varchar(20);default:'none';index" json:"vetting_status"` // 资质审核状态
	VettingNote        string         `gorm:"default:''" json:"vetting_note"`                             // 资质审核备注
	Balance            Money          `gorm:"type:decimal(20,2);default:0" json:"balance"`                // 可提现余额
	TotalEarnings      Money          `gorm:"type:decimal(20,2);default:0" json:"total_earnings"`         // 累计收益
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                                // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                             // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                              // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (Creator) TableName() string {
	return "creators"
}
