package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/viewspecash/viewspecash/internal/config"
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWalletServiceTest(t *testing.T) (*WalletService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wallet_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Creator{},
		&models.Transaction{},
		&models.PayoutRequest{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	svc := NewWalletService(
		repository.NewCreatorRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewPayoutRequestRepository(db),
		config.PayoutConfig{MinAmount: 500},
	)
	return svc, db
}

func createWalletCreator(t *testing.T, db *gorm.DB, id uint, balance string, upi string) {
	t.Helper()
	creator := models.Creator{
		ID:            id,
		Email:         fmt.Sprintf("wallet_creator_%d@example.com", id),
		PasswordHash:  "hash",
		UpiID:         upi,
		VettingStatus: constants.VettingStatusApproved,
		Balance:       mustMoney(t, balance),
		TotalEarnings: mustMoney(t, balance),
	}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("create creator failed: %v", err)
	}
}

func TestRequestPayoutValidation(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletCreator(t, db, 1, "2000", "creator@upi")
	createWalletCreator(t, db, 2, "2000", "")

	if _, err := svc.RequestPayout(1, mustMoney(t, "0")); !errors.Is(err, ErrPayoutAmountInvalid) {
		t.Fatalf("expected amount error, got: %v", err)
	}
	if _, err := svc.RequestPayout(1, mustMoney(t, "300")); !errors.Is(err, ErrPayoutBelowMinimum) {
		t.Fatalf("expected minimum error, got: %v", err)
	}
	if _, err := svc.RequestPayout(1, mustMoney(t, "3000")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected balance error, got: %v", err)
	}
	if _, err := svc.RequestPayout(2, mustMoney(t, "1000")); !errors.Is(err, ErrPayoutUpiMissing) {
		t.Fatalf("expected upi error, got: %v", err)
	}

	request, err := svc.RequestPayout(1, mustMoney(t, "1500"))
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}
	if request.Status != constants.PayoutStatusPendingReview {
		t.Fatalf("unexpected status: %s", request.Status)
	}
	if request.UpiID != "creator@upi" {
		t.Fatalf("upi not snapshotted: %s", request.UpiID)
	}

	// 在途提现占用额度：余额 2000 - 在途 1500 = 500 可用
	if _, err := svc.RequestPayout(1, mustMoney(t, "600")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected balance error with pending payout, got: %v", err)
	}
}

func TestReviewPayoutPay(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletCreator(t, db, 1, "2000", "creator@upi")

	request, err := svc.RequestPayout(1, mustMoney(t, "1500"))
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}

	paid, err := svc.ReviewPayout(request.ID, constants.PayoutActionPay, "已转账")
	if err != nil {
		t.Fatalf("review payout failed: %v", err)
	}
	if paid.Status != constants.PayoutStatusPaid || paid.ReviewedAt == nil {
		t.Fatalf("unexpected review result: %+v", paid)
	}

	var creator models.Creator
	if err := db.First(&creator, 1).Error; err != nil {
		t.Fatalf("load creator failed: %v", err)
	}
	if !creator.Balance.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected balance: %s", creator.Balance.String())
	}

	var txn models.Transaction
	if err := db.Where("reference = ?", fmt.Sprintf("payout:%d", request.ID)).First(&txn).Error; err != nil {
		t.Fatalf("load payout transaction failed: %v", err)
	}
	if txn.Type != constants.TxnTypePayout {
		t.Fatalf("unexpected txn type: %s", txn.Type)
	}
	if !txn.Amount.Decimal.Equal(decimal.NewFromInt(-1500)) {
		t.Fatalf("unexpected txn amount: %s", txn.Amount.String())
	}
	if !txn.BalanceAfter.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected balance after: %s", txn.BalanceAfter.String())
	}

	// 已处理的申请不可重复审核
	if _, err := svc.ReviewPayout(request.ID, constants.PayoutActionPay, ""); !errors.Is(err, ErrPayoutAlreadyReviewed) {
		t.Fatalf("expected already reviewed error, got: %v", err)
	}
}

func TestReviewPayoutReject(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletCreator(t, db, 1, "2000", "creator@upi")

	request, err := svc.RequestPayout(1, mustMoney(t, "1500"))
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}
	rejected, err := svc.ReviewPayout(request.ID, constants.PayoutActionReject, "账号信息有误")
	if err != nil {
		t.Fatalf("review payout failed: %v", err)
	}
	if rejected.Status != constants.PayoutStatusRejected {
		t.Fatalf("unexpected status: %s", rejected.Status)
	}

	// 拒绝不动余额、不记账
	var creator models.Creator
	if err := db.First(&creator, 1).Error; err != nil {
		t.Fatalf("load creator failed: %v", err)
	}
	if !creator.Balance.Decimal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("balance changed on reject: %s", creator.Balance.String())
	}
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transactions, got %d", count)
	}
}

func TestWalletOverview(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletCreator(t, db, 1, "2000", "creator@upi")

	if _, err := svc.RequestPayout(1, mustMoney(t, "800")); err != nil {
		t.Fatalf("request payout failed: %v", err)
	}

	overview, err := svc.Overview(1)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if !overview.Balance.Decimal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected balance: %s", overview.Balance.String())
	}
	if !overview.PendingPayout.Decimal.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("unexpected pending payout: %s", overview.PendingPayout.String())
	}
	if !overview.Withdrawable.Decimal.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("unexpected withdrawable: %s", overview.Withdrawable.String())
	}
	if overview.Currency != constants.SiteCurrencyDefault {
		t.Fatalf("unexpected currency: %s", overview.Currency)
	}
}
