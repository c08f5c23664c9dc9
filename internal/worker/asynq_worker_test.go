package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/provider"
	"github.com/viewspecash/viewspecash/internal/queue"
	"github.com/viewspecash/viewspecash/internal/repository"
	"github.com/viewspecash/viewspecash/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Creator{},
		&models.Advertiser{},
		&models.Campaign{},
		&models.Submission{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	models.DB = db

	creatorRepo := repository.NewCreatorRepository(db)
	advertiserRepo := repository.NewAdvertiserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	container := &provider.Container{
		CreatorRepo:     creatorRepo,
		AdvertiserRepo:  advertiserRepo,
		CampaignRepo:    campaignRepo,
		SubmissionRepo:  submissionRepo,
		CampaignService: service.NewCampaignService(campaignRepo, advertiserRepo),
	}
	return NewConsumer(container), db
}

func mustTask(t *testing.T, task *asynq.Task, err error) *asynq.Task {
	t.Helper()
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func TestHandleCampaignBudgetCheckCompletesExhausted(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	campaign := &models.Campaign{
		AdvertiserID:        1,
		Title:               "Festive Reels Push",
		Platform:            constants.PlatformBoth,
		RatePerThousand:     models.NewMoneyFromInt(50),
		BudgetCap:           models.NewMoneyFromInt(1000),
		MaxPayoutPerCreator: models.NewMoneyFromInt(500),
		Spent:               models.NewMoneyFromInt(1000),
		Status:              constants.CampaignStatusActive,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	budgetTask, buildErr := queue.NewCampaignBudgetCheckTask(queue.CampaignBudgetCheckPayload{CampaignID: campaign.ID})
	task := mustTask(t, budgetTask, buildErr)
	if err := consumer.handleCampaignBudgetCheck(context.Background(), task); err != nil {
		t.Fatalf("handle budget check: %v", err)
	}

	var stored models.Campaign
	if err := db.First(&stored, campaign.ID).Error; err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if stored.Status != constants.CampaignStatusCompleted {
		t.Fatalf("expected campaign completed, got %s", stored.Status)
	}
}

func TestHandleCampaignBudgetCheckLeavesUnderBudget(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	campaign := &models.Campaign{
		AdvertiserID:        1,
		Title:               "Shorts Awareness",
		Platform:            constants.PlatformYoutubeShorts,
		RatePerThousand:     models.NewMoneyFromInt(30),
		BudgetCap:           models.NewMoneyFromInt(5000),
		MaxPayoutPerCreator: models.NewMoneyFromInt(1000),
		Spent:               models.NewMoneyFromInt(100),
		Status:              constants.CampaignStatusActive,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	budgetTask, buildErr := queue.NewCampaignBudgetCheckTask(queue.CampaignBudgetCheckPayload{CampaignID: campaign.ID})
	task := mustTask(t, budgetTask, buildErr)
	if err := consumer.handleCampaignBudgetCheck(context.Background(), task); err != nil {
		t.Fatalf("handle budget check: %v", err)
	}

	var stored models.Campaign
	if err := db.First(&stored, campaign.ID).Error; err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if stored.Status != constants.CampaignStatusActive {
		t.Fatalf("expected campaign still active, got %s", stored.Status)
	}
}

func TestHandleCampaignBudgetCheckMissingCampaign(t *testing.T) {
	consumer, _ := setupWorkerTest(t)

	budgetTask, buildErr := queue.NewCampaignBudgetCheckTask(queue.CampaignBudgetCheckPayload{CampaignID: 99999})
	task := mustTask(t, budgetTask, buildErr)
	if err := consumer.handleCampaignBudgetCheck(context.Background(), task); err != nil {
		t.Fatalf("missing campaign should not fail the task, got %v", err)
	}
}

func TestHandleSubmissionStatusEmailMissingSubmission(t *testing.T) {
	consumer, _ := setupWorkerTest(t)

	emailTask, buildErr := queue.NewSubmissionStatusEmailTask(queue.SubmissionStatusEmailPayload{
		SubmissionID: 12345,
		Status:       constants.SubmissionStatusApproved,
	})
	task := mustTask(t, emailTask, buildErr)
	if err := consumer.handleSubmissionStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("missing submission should not fail the task, got %v", err)
	}
}

func TestHandleSubmissionStatusEmail(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	creator := &models.Creator{
		Email:         "creator@example.com",
		PasswordHash:  "x",
		DisplayName:   "Asha",
		VettingStatus: constants.VettingStatusApproved,
	}
	if err := db.Create(creator).Error; err != nil {
		t.Fatalf("create creator: %v", err)
	}
	submission := &models.Submission{
		CampaignID: 1,
		CreatorID:  creator.ID,
		PostLink:   "https://youtube.com/shorts/abc",
		Platform:   constants.PlatformYoutubeShorts,
		Status:     constants.SubmissionStatusApproved,
	}
	if err := db.Create(submission).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}

	emailTask, buildErr := queue.NewSubmissionStatusEmailTask(queue.SubmissionStatusEmailPayload{
		SubmissionID: submission.ID,
		Status:       constants.SubmissionStatusApproved,
	})
	task := mustTask(t, emailTask, buildErr)
	if err := consumer.handleSubmissionStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("handle status email: %v", err)
	}
}
