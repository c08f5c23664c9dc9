package service

import (
	"github.com/viewspecash/viewspecash/internal/models"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// EarningsResult 收益计算结果
type EarningsResult struct {
	Earned          models.Money `json:"earned"`            // 结算收益（未封顶时向下取整到整卢比）
	IsCapped        bool         `json:"is_capped"`         // 是否触达单创作者上限
	CappedAt        models.Money `json:"capped_at"`         // 上限金额
	ViewCount       int64        `json:"view_count"`        // 输入播放量
	RatePerThousand models.Money `json:"rate_per_thousand"` // 千次播放单价
}

// CalculateEarnings 纯函数：播放量 -> 有界收益。
// rawEarnings = viewCount / 1000 * ratePerThousand；
// rawEarnings >= maxCap 时取上限（边界相等也算封顶），否则向下取整。
// 相同输入永远产生相同输出，爬虫重复投递依赖该性质保证不重复计费。
func CalculateEarnings(viewCount int64, ratePerThousand, maxCap models.Money) (*EarningsResult, error) {
	if viewCount < 0 {
		return nil, ErrViewCountInvalid
	}
	if !ratePerThousand.Decimal.IsPositive() {
		return nil, ErrCampaignRateInvalid
	}
	if !maxCap.Decimal.IsPositive() {
		return nil, ErrCampaignBudgetInvalid
	}

	raw := decimal.NewFromInt(viewCount).
		Mul(ratePerThousand.Decimal).
		Div(thousand)

	result := &EarningsResult{
		CappedAt:        maxCap,
		ViewCount:       viewCount,
		RatePerThousand: ratePerThousand,
	}
	if raw.GreaterThanOrEqual(maxCap.Decimal) {
		result.IsCapped = true
		result.Earned = maxCap
		return result, nil
	}
	result.Earned = models.NewMoneyFromDecimal(raw.Floor())
	return result, nil
}
