package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/queue"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSubmissionServiceTest(t *testing.T) (*SubmissionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:submission_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Creator{},
		&models.Advertiser{},
		&models.Campaign{},
		&models.Submission{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	svc := NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewCreatorRepository(db),
		repository.NewTransactionRepository(db),
		queueClient,
	)
	return svc, db
}

func createTestCreator(t *testing.T, db *gorm.DB, id uint, vettingStatus string) {
	t.Helper()
	creator := models.Creator{
		ID:            id,
		Email:         fmt.Sprintf("creator_%d@example.com", id),
		PasswordHash:  "hash",
		DisplayName:   fmt.Sprintf("创作者%d", id),
		VettingStatus: vettingStatus,
		Balance:       models.ZeroMoney(),
		TotalEarnings: models.ZeroMoney(),
	}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("create creator failed: %v", err)
	}
}

func createTestCampaign(t *testing.T, db *gorm.DB, rate, cap, budget string, status string) *models.Campaign {
	t.Helper()
	advertiser := models.Advertiser{Name: "测试广告主", ContactEmail: "brand@example.com"}
	if err := db.Create(&advertiser).Error; err != nil {
		t.Fatalf("create advertiser failed: %v", err)
	}
	campaign := &models.Campaign{
		AdvertiserID:        advertiser.ID,
		Title:               "新品推广",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     mustMoney(t, rate),
		BudgetCap:           mustMoney(t, budget),
		MaxPayoutPerCreator: mustMoney(t, cap),
		Spent:               models.ZeroMoney(),
		Status:              status,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return campaign
}

func createTestSubmission(t *testing.T, db *gorm.DB, campaignID, creatorID uint, status string) *models.Submission {
	t.Helper()
	submission := &models.Submission{
		CampaignID: campaignID,
		CreatorID:  creatorID,
		PostLink:   "https://www.instagram.com/reel/abc123",
		Platform:   constants.PlatformInstagramReels,
		Status:     status,
		Earned:     models.ZeroMoney(),
	}
	if err := db.Create(submission).Error; err != nil {
		t.Fatalf("create submission failed: %v", err)
	}
	return submission
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal failed: %v", err)
	}
	return models.NewMoneyFromDecimal(d)
}

func countSubmissionTxns(t *testing.T, db *gorm.DB, submissionID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error; err != nil {
		t.Fatalf("count transactions failed: %v", err)
	}
	return count
}

func TestSubmitRequiresVettedCreator(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusPending)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)

	_, err := svc.Submit(SubmitInput{
		CampaignID: campaign.ID,
		CreatorID:  1,
		PostLink:   "https://youtube.com/shorts/xyz",
		Platform:   constants.PlatformYoutubeShorts,
	})
	if !errors.Is(err, ErrCreatorNotVetted) {
		t.Fatalf("expected vetting error, got: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	active := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)
	draft := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusDraft)

	if _, err := svc.Submit(SubmitInput{
		CampaignID: active.ID,
		CreatorID:  1,
		PostLink:   "not-a-url",
		Platform:   constants.PlatformInstagramReels,
	}); !errors.Is(err, ErrSubmissionLinkInvalid) {
		t.Fatalf("expected link error, got: %v", err)
	}

	if _, err := svc.Submit(SubmitInput{
		CampaignID: active.ID,
		CreatorID:  1,
		PostLink:   "https://youtube.com/shorts/xyz",
		Platform:   "tiktok",
	}); !errors.Is(err, ErrSubmissionPlatformInvalid) {
		t.Fatalf("expected platform error, got: %v", err)
	}

	if _, err := svc.Submit(SubmitInput{
		CampaignID: draft.ID,
		CreatorID:  1,
		PostLink:   "https://youtube.com/shorts/xyz",
		Platform:   constants.PlatformYoutubeShorts,
	}); !errors.Is(err, ErrCampaignNotActive) {
		t.Fatalf("expected inactive campaign error, got: %v", err)
	}

	submission, err := svc.Submit(SubmitInput{
		CampaignID: active.ID,
		CreatorID:  1,
		PostLink:   "https://youtube.com/shorts/xyz",
		Platform:   constants.PlatformYoutubeShorts,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submission.Status != constants.SubmissionStatusPending {
		t.Fatalf("unexpected status: %s", submission.Status)
	}
}

func TestApproveRejectTransitions(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)

	pending := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusPending)
	approved, err := svc.Approve(pending.ID, "内容符合要求")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.SubmissionStatusApproved || approved.ApprovedAt == nil {
		t.Fatalf("unexpected approve result: %+v", approved)
	}

	// 已审批不可再次审批或拒绝
	if _, err := svc.Approve(pending.ID, ""); !errors.Is(err, ErrSubmissionStatusInvalid) {
		t.Fatalf("expected status error, got: %v", err)
	}
	if _, err := svc.Reject(pending.ID, ""); !errors.Is(err, ErrSubmissionStatusInvalid) {
		t.Fatalf("expected status error, got: %v", err)
	}

	other := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusPending)
	rejected, err := svc.Reject(other.ID, "")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.SubmissionStatusRejected {
		t.Fatalf("unexpected status: %s", rejected.Status)
	}
	if rejected.AdminNote != constants.DefaultRejectReason {
		t.Fatalf("expected default reject reason, got: %s", rejected.AdminNote)
	}
}

func TestRecordViewCountSettlesEarnings(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)
	submission := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusApproved)

	result, err := svc.RecordViewCount(submission.ID, 45200)
	if err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
	if result.IsCapped || result.BudgetClamped {
		t.Fatalf("unexpected capping flags: %+v", result)
	}
	if result.Status != constants.SubmissionStatusEarning {
		t.Fatalf("unexpected status: %s", result.Status)
	}

	var creator models.Creator
	if err := db.First(&creator, 1).Error; err != nil {
		t.Fatalf("load creator failed: %v", err)
	}
	if !creator.Balance.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("unexpected balance: %s", creator.Balance.String())
	}
	if !creator.TotalEarnings.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("unexpected total earnings: %s", creator.TotalEarnings.String())
	}

	var reloaded models.Campaign
	if err := db.First(&reloaded, campaign.ID).Error; err != nil {
		t.Fatalf("load campaign failed: %v", err)
	}
	if !reloaded.Spent.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("unexpected spent: %s", reloaded.Spent.String())
	}
	if got := countSubmissionTxns(t, db, submission.ID); got != 1 {
		t.Fatalf("expected 1 transaction, got %d", got)
	}
}

func TestRecordViewCountCapsAtCreatorLimit(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "100", "10000", "100000", constants.CampaignStatusActive)
	submission := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusApproved)

	result, err := svc.RecordViewCount(submission.ID, 200000)
	if err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	if !result.IsCapped {
		t.Fatalf("expected capped result")
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}
	if result.Status != constants.SubmissionStatusCapped {
		t.Fatalf("unexpected status: %s", result.Status)
	}

	// 封顶后播放量继续上涨不再产生新收益
	again, err := svc.RecordViewCount(submission.ID, 250000)
	if err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	if !again.Delta.Decimal.IsZero() {
		t.Fatalf("expected zero delta after cap, got %s", again.Delta.String())
	}
	if got := countSubmissionTxns(t, db, submission.ID); got != 1 {
		t.Fatalf("expected 1 transaction, got %d", got)
	}
}

func TestRecordViewCountRejectsRegression(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)
	submission := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusApproved)

	if _, err := svc.RecordViewCount(submission.ID, 45200); err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	if _, err := svc.RecordViewCount(submission.ID, 45100); !errors.Is(err, ErrViewCountRegressed) {
		t.Fatalf("expected regression error, got: %v", err)
	}

	// 回退失败后持久化状态不变
	var reloaded models.Submission
	if err := db.First(&reloaded, submission.ID).Error; err != nil {
		t.Fatalf("load submission failed: %v", err)
	}
	if reloaded.ViewCount != 45200 {
		t.Fatalf("view count changed: %d", reloaded.ViewCount)
	}
	if !reloaded.Earned.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("earned changed: %s", reloaded.Earned.String())
	}
	if got := countSubmissionTxns(t, db, submission.ID); got != 1 {
		t.Fatalf("expected 1 transaction, got %d", got)
	}

	if _, err := svc.RecordViewCount(submission.ID, -5); !errors.Is(err, ErrViewCountInvalid) {
		t.Fatalf("expected invalid view count error, got: %v", err)
	}
}

func TestRecordViewCountRejectsInactiveStatus(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)

	rejected := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusRejected)
	if _, err := svc.RecordViewCount(rejected.ID, 10000); !errors.Is(err, ErrSubmissionStatusInvalid) {
		t.Fatalf("expected status error, got: %v", err)
	}
	if got := countSubmissionTxns(t, db, rejected.ID); got != 0 {
		t.Fatalf("expected no transactions, got %d", got)
	}

	pending := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusPending)
	if _, err := svc.RecordViewCount(pending.ID, 10000); !errors.Is(err, ErrSubmissionStatusInvalid) {
		t.Fatalf("expected status error, got: %v", err)
	}

	if _, err := svc.RecordViewCount(99999, 10000); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
}

func TestRecordViewCountIdempotentRedelivery(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)
	submission := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusApproved)

	first, err := svc.RecordViewCount(submission.ID, 45200)
	if err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	second, err := svc.RecordViewCount(submission.ID, 45200)
	if err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if !second.Delta.Decimal.IsZero() {
		t.Fatalf("expected zero delta on redelivery, got %s", second.Delta.String())
	}
	if !second.Earned.Decimal.Equal(first.Earned.Decimal) {
		t.Fatalf("earned changed on redelivery: %s", second.Earned.String())
	}
	if got := countSubmissionTxns(t, db, submission.ID); got != 1 {
		t.Fatalf("expected 1 transaction, got %d", got)
	}
}

func TestRecordViewCountConcurrentDuplicates(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	campaign := createTestCampaign(t, db, "50", "5000", "100000", constants.CampaignStatusActive)
	submission := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusApproved)

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = svc.RecordViewCount(submission.ID, 45200)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d failed: %v", i, err)
		}
	}
	if got := countSubmissionTxns(t, db, submission.ID); got != 1 {
		t.Fatalf("expected exactly 1 transaction, got %d", got)
	}

	var creator models.Creator
	if err := db.First(&creator, 1).Error; err != nil {
		t.Fatalf("load creator failed: %v", err)
	}
	if !creator.Balance.Decimal.Equal(decimal.NewFromInt(2260)) {
		t.Fatalf("balance credited more than once: %s", creator.Balance.String())
	}
}

func TestRecordViewCountClampsToCampaignBudget(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	createTestCreator(t, db, 1, constants.VettingStatusApproved)
	// 预算 1000，单创作者上限 5000：预算先于上限耗尽
	campaign := createTestCampaign(t, db, "50", "5000", "1000", constants.CampaignStatusActive)
	submission := createTestSubmission(t, db, campaign.ID, 1, constants.SubmissionStatusApproved)

	result, err := svc.RecordViewCount(submission.ID, 45200)
	if err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	if !result.BudgetClamped {
		t.Fatalf("expected budget clamp")
	}
	if !result.Earned.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected earned: %s", result.Earned.String())
	}

	var reloaded models.Campaign
	if err := db.First(&reloaded, campaign.ID).Error; err != nil {
		t.Fatalf("load campaign failed: %v", err)
	}
	if !reloaded.Spent.Decimal.Equal(reloaded.BudgetCap.Decimal) {
		t.Fatalf("spent should equal budget cap, got %s", reloaded.Spent.String())
	}

	// 预算耗尽后继续上涨不再入账
	again, err := svc.RecordViewCount(submission.ID, 60000)
	if err != nil {
		t.Fatalf("record views failed: %v", err)
	}
	if !again.Delta.Decimal.IsZero() {
		t.Fatalf("expected zero delta after budget exhausted, got %s", again.Delta.String())
	}
}
