package models

import (
	"time"
)

// Transaction 账本交易表（只追加，不修改不删除）
// Reference 全局唯一，作为重复投递时的幂等键
type Transaction struct {
	ID            uint       `gorm:"primarykey" json:"id"`                                // 主键
	CreatorID     uint       `gorm:"not null;index" json:"creator_id"`                    // 创作者ID
	SubmissionID  *uint      `gorm:"index" json:"submission_id"`                          // 关联投稿ID（提现等场景为空）
	Type          string     `gorm:"type:varchar(20);not null;index" json:"type"`         // 交易类型
	Amount        Money      `gorm:"type:decimal(20,2);not null" json:"amount"`           // 交易金额（带符号）
	BalanceBefore Money      `gorm:"type:decimal(20,2);not null" json:"balance_before"`   // 交易前余额
	BalanceAfter  Money      `gorm:"type:decimal(20,2);not null" json:"balance_after"`    // 交易后余额
	Reference     string     `gorm:"type:varchar(128);uniqueIndex" json:"reference"`      // 幂等引用号
	Description   string     `gorm:"default:''" json:"description"`                       // 交易描述
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                             // 创建时间

	Submission *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"` // 投稿信息
}

// TableName 指定表名
func (Transaction) TableName() string {
	return "transactions"
}
