package service

import (
	"errors"
	"testing"

	"github.com/viewspecash/viewspecash/internal/models"

	"github.com/shopspring/decimal"
)

func money(t *testing.T, s string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal failed: %v", err)
	}
	return models.NewMoneyFromDecimal(d)
}

func TestCalculateEarningsUncapped(t *testing.T) {
	result, err := CalculateEarnings(45200, money(t, "50"), money(t, "5000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.IsCapped {
		t.Fatalf("expected uncapped result, got capped at %s", result.CappedAt.String())
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
}

func TestCalculateEarningsSmallViewCount(t *testing.T) {
	result, err := CalculateEarnings(1200, money(t, "30"), money(t, "3000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.IsCapped {
		t.Fatalf("expected uncapped result")
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(36)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
}

func TestCalculateEarningsFloorsFraction(t *testing.T) {
	// 1234 * 30 / 1000 = 37.02，向下取整到 37
	result, err := CalculateEarnings(1234, money(t, "30"), money(t, "3000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(37)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
}

func TestCalculateEarningsCapped(t *testing.T) {
	result, err := CalculateEarnings(200000, money(t, "100"), money(t, "10000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !result.IsCapped {
		t.Fatalf("expected capped result")
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
}

func TestCalculateEarningsCapBoundary(t *testing.T) {
	// 原始收益恰好等于上限也算封顶
	result, err := CalculateEarnings(100000, money(t, "50"), money(t, "5000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !result.IsCapped {
		t.Fatalf("expected boundary to be capped")
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
}

func TestCalculateEarningsZeroViews(t *testing.T) {
	result, err := CalculateEarnings(0, money(t, "50"), money(t, "5000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.IsCapped || !result.Earned.Decimal.IsZero() {
		t.Fatalf("expected zero earnings, got %s", result.Earned.String())
	}
}

func TestCalculateEarningsDeterministic(t *testing.T) {
	first, err := CalculateEarnings(45200, money(t, "50"), money(t, "5000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	second, err := CalculateEarnings(45200, money(t, "50"), money(t, "5000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !first.Earned.Decimal.Equal(second.Earned.Decimal) || first.IsCapped != second.IsCapped {
		t.Fatalf("expected identical results, got %s vs %s", first.Earned.String(), second.Earned.String())
	}
}

func TestCalculateEarningsMonotonic(t *testing.T) {
	prev := decimal.Zero
	for _, views := range []int64{0, 500, 1000, 9999, 45200, 99999, 100000, 500000} {
		result, err := CalculateEarnings(views, money(t, "50"), money(t, "5000"))
		if err != nil {
			t.Fatalf("calculate failed at %d views: %v", views, err)
		}
		if result.Earned.Decimal.LessThan(prev) {
			t.Fatalf("earnings decreased at %d views: %s < %s", views, result.Earned.String(), prev.String())
		}
		prev = result.Earned.Decimal
	}
}

func TestCalculateEarningsInvalidInput(t *testing.T) {
	if _, err := CalculateEarnings(-1, money(t, "50"), money(t, "5000")); !errors.Is(err, ErrViewCountInvalid) {
		t.Fatalf("expected view count error, got: %v", err)
	}
	if _, err := CalculateEarnings(1000, money(t, "0"), money(t, "5000")); !errors.Is(err, ErrCampaignRateInvalid) {
		t.Fatalf("expected rate error, got: %v", err)
	}
	if _, err := CalculateEarnings(1000, money(t, "50"), money(t, "0")); !errors.Is(err, ErrCampaignBudgetInvalid) {
		t.Fatalf("expected cap error, got: %v", err)
	}
	if _, err := CalculateEarnings(1000, money(t, "-5"), money(t, "5000")); !errors.Is(err, ErrCampaignRateInvalid) {
		t.Fatalf("expected rate error for negative rate, got: %v", err)
	}
}

func TestCalculateEarningsFractionalRate(t *testing.T) {
	// 小数单价：2500 * 12.50 / 1000 = 31.25，向下取整到 31
	result, err := CalculateEarnings(2500, money(t, "12.50"), money(t, "5000"))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(31)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
}
