package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCampaignServiceTest(t *testing.T) (*CampaignService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:campaign_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Advertiser{}, &models.Campaign{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	svc := NewCampaignService(
		repository.NewCampaignRepository(db),
		repository.NewAdvertiserRepository(db),
	)
	return svc, db
}

func createCampaignAdvertiser(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	advertiser := models.Advertiser{Name: "测试广告主", ContactEmail: "brand@example.com"}
	if err := db.Create(&advertiser).Error; err != nil {
		t.Fatalf("create advertiser failed: %v", err)
	}
	return advertiser.ID
}

func TestCampaignCreateValidation(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	advertiserID := createCampaignAdvertiser(t, db)

	base := CampaignInput{
		AdvertiserID:        advertiserID,
		Title:               "新品推广",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     mustMoney(t, "50"),
		BudgetCap:           mustMoney(t, "100000"),
		MaxPayoutPerCreator: mustMoney(t, "5000"),
	}

	invalidRate := base
	invalidRate.RatePerThousand = mustMoney(t, "0")
	if _, err := svc.Create(invalidRate); !errors.Is(err, ErrCampaignRateInvalid) {
		t.Fatalf("expected rate error, got: %v", err)
	}

	invalidBudget := base
	invalidBudget.BudgetCap = mustMoney(t, "-1")
	if _, err := svc.Create(invalidBudget); !errors.Is(err, ErrCampaignBudgetInvalid) {
		t.Fatalf("expected budget error, got: %v", err)
	}

	capOverBudget := base
	capOverBudget.MaxPayoutPerCreator = mustMoney(t, "200000")
	if _, err := svc.Create(capOverBudget); !errors.Is(err, ErrCampaignBudgetInvalid) {
		t.Fatalf("expected budget error for cap over budget, got: %v", err)
	}

	missingAdvertiser := base
	missingAdvertiser.AdvertiserID = 9999
	if _, err := svc.Create(missingAdvertiser); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}

	campaign, err := svc.Create(base)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if campaign.Status != constants.CampaignStatusDraft {
		t.Fatalf("unexpected status: %s", campaign.Status)
	}
	if !campaign.Spent.Decimal.IsZero() {
		t.Fatalf("unexpected spent: %s", campaign.Spent.String())
	}
}

func TestCampaignStatusTransitions(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	advertiserID := createCampaignAdvertiser(t, db)

	campaign, err := svc.Create(CampaignInput{
		AdvertiserID:        advertiserID,
		Title:               "新品推广",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     mustMoney(t, "50"),
		BudgetCap:           mustMoney(t, "100000"),
		MaxPayoutPerCreator: mustMoney(t, "5000"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// draft 不允许直接 paused
	if _, err := svc.ChangeStatus(campaign.ID, constants.CampaignStatusPaused); !errors.Is(err, ErrCampaignStatusInvalid) {
		t.Fatalf("expected transition error, got: %v", err)
	}

	for _, target := range []string{
		constants.CampaignStatusActive,
		constants.CampaignStatusPaused,
		constants.CampaignStatusActive,
		constants.CampaignStatusCompleted,
	} {
		updated, err := svc.ChangeStatus(campaign.ID, target)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("unexpected status: %s", updated.Status)
		}
	}

	// completed 为终态
	if _, err := svc.ChangeStatus(campaign.ID, constants.CampaignStatusActive); !errors.Is(err, ErrCampaignStatusInvalid) {
		t.Fatalf("expected terminal state error, got: %v", err)
	}
}

func TestCampaignUpdateBudgetFloor(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	advertiserID := createCampaignAdvertiser(t, db)

	campaign, err := svc.Create(CampaignInput{
		AdvertiserID:        advertiserID,
		Title:               "新品推广",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     mustMoney(t, "50"),
		BudgetCap:           mustMoney(t, "100000"),
		MaxPayoutPerCreator: mustMoney(t, "5000"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 模拟已有支出
	if err := db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).
		Update("spent", "6000").Error; err != nil {
		t.Fatalf("update spent failed: %v", err)
	}

	// 预算不可压到已支出之下
	if _, err := svc.Update(campaign.ID, CampaignInput{
		AdvertiserID:        advertiserID,
		Title:               "新品推广",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     mustMoney(t, "50"),
		BudgetCap:           mustMoney(t, "5000"),
		MaxPayoutPerCreator: mustMoney(t, "5000"),
	}); !errors.Is(err, ErrCampaignBudgetInvalid) {
		t.Fatalf("expected budget floor error, got: %v", err)
	}
}

func TestCampaignCompleteIfExhausted(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	advertiserID := createCampaignAdvertiser(t, db)

	campaign, err := svc.Create(CampaignInput{
		AdvertiserID:        advertiserID,
		Title:               "新品推广",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     mustMoney(t, "50"),
		BudgetCap:           mustMoney(t, "1000"),
		MaxPayoutPerCreator: mustMoney(t, "1000"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ChangeStatus(campaign.ID, constants.CampaignStatusActive); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	// 预算未花满不收尾
	completed, err := svc.CompleteIfExhausted(campaign.ID)
	if err != nil {
		t.Fatalf("complete check failed: %v", err)
	}
	if completed {
		t.Fatalf("campaign completed with budget remaining")
	}

	if err := db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).
		Update("spent", "1000").Error; err != nil {
		t.Fatalf("update spent failed: %v", err)
	}
	completed, err = svc.CompleteIfExhausted(campaign.ID)
	if err != nil {
		t.Fatalf("complete check failed: %v", err)
	}
	if !completed {
		t.Fatalf("expected campaign to complete")
	}

	reloaded, err := svc.Get(campaign.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.Status != constants.CampaignStatusCompleted {
		t.Fatalf("unexpected status: %s", reloaded.Status)
	}
	if !reloaded.RemainingBudget().Decimal.Equal(decimal.Zero) {
		t.Fatalf("unexpected remaining budget: %s", reloaded.RemainingBudget().String())
	}
}
