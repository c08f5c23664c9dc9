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
	"gorm.io/gorm"
)

func setupCreatorServiceTest(t *testing.T) (*CreatorService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:creator_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Creator{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewCreatorService(repository.NewCreatorRepository(db)), db
}

func TestSubmitVettingFlow(t *testing.T) {
	svc, db := setupCreatorServiceTest(t)
	creator := models.Creator{
		ID:            1,
		Email:         "vetting@example.com",
		PasswordHash:  "hash",
		VettingStatus: constants.VettingStatusNone,
	}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("create creator failed: %v", err)
	}

	// 未绑定平台账号不可申请
	if _, err := svc.SubmitVetting(1); !errors.Is(err, ErrVettingProfileIncomplete) {
		t.Fatalf("expected profile error, got: %v", err)
	}

	if _, err := svc.UpdateProfile(1, ProfileInput{
		DisplayName:     "测试创作者",
		InstagramHandle: "creator.reels",
	}); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	updated, err := svc.SubmitVetting(1)
	if err != nil {
		t.Fatalf("submit vetting failed: %v", err)
	}
	if updated.VettingStatus != constants.VettingStatusPending {
		t.Fatalf("unexpected status: %s", updated.VettingStatus)
	}

	// pending 幂等返回
	again, err := svc.SubmitVetting(1)
	if err != nil {
		t.Fatalf("repeat submit failed: %v", err)
	}
	if again.VettingStatus != constants.VettingStatusPending {
		t.Fatalf("unexpected status: %s", again.VettingStatus)
	}
}

func TestReviewVetting(t *testing.T) {
	svc, db := setupCreatorServiceTest(t)
	creator := models.Creator{
		ID:              1,
		Email:           "review@example.com",
		PasswordHash:    "hash",
		InstagramHandle: "creator.reels",
		VettingStatus:   constants.VettingStatusPending,
	}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("create creator failed: %v", err)
	}

	approved, err := svc.ReviewVetting(1, true, "资料齐全")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if approved.VettingStatus != constants.VettingStatusApproved {
		t.Fatalf("unexpected status: %s", approved.VettingStatus)
	}

	// 已审核不可再处理
	if _, err := svc.ReviewVetting(1, false, ""); !errors.Is(err, ErrVettingAlreadyReviewed) {
		t.Fatalf("expected already reviewed error, got: %v", err)
	}
	// approved 后不可重新申请
	if _, err := svc.SubmitVetting(1); !errors.Is(err, ErrVettingAlreadyReviewed) {
		t.Fatalf("expected already reviewed error, got: %v", err)
	}
}

func TestReviewVettingRejectAllowsResubmit(t *testing.T) {
	svc, db := setupCreatorServiceTest(t)
	creator := models.Creator{
		ID:            1,
		Email:         "resubmit@example.com",
		PasswordHash:  "hash",
		YoutubeHandle: "creator_shorts",
		VettingStatus: constants.VettingStatusPending,
	}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("create creator failed: %v", err)
	}

	rejected, err := svc.ReviewVetting(1, false, "账号信息无法核实")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if rejected.VettingStatus != constants.VettingStatusRejected {
		t.Fatalf("unexpected status: %s", rejected.VettingStatus)
	}
	if rejected.VettingNote != "账号信息无法核实" {
		t.Fatalf("unexpected note: %s", rejected.VettingNote)
	}

	// rejected 可重新申请
	resubmitted, err := svc.SubmitVetting(1)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.VettingStatus != constants.VettingStatusPending {
		t.Fatalf("unexpected status: %s", resubmitted.VettingStatus)
	}
	if resubmitted.VettingNote != "" {
		t.Fatalf("note should be cleared, got: %s", resubmitted.VettingNote)
	}
}
