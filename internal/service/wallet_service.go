package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/viewspecash/viewspecash/internal/config"
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService 创作者钱包与提现服务
// 余额只通过账本交易变动：收益入账为正，提现支付为负
type WalletService struct {
	creatorRepo repository.CreatorRepository
	txnRepo     repository.TransactionRepository
	payoutRepo  repository.PayoutRequestRepository
	payoutCfg   config.PayoutConfig
}

// NewWalletService 创建钱包服务实例
func NewWalletService(
	creatorRepo repository.CreatorRepository,
	txnRepo repository.TransactionRepository,
	payoutRepo repository.PayoutRequestRepository,
	payoutCfg config.PayoutConfig,
) *WalletService {
	return &WalletService{
		creatorRepo: creatorRepo,
		txnRepo:     txnRepo,
		payoutRepo:  payoutRepo,
		payoutCfg:   payoutCfg,
	}
}

// WalletOverview 钱包总览
type WalletOverview struct {
	Balance       models.Money `json:"balance"`        // 当前余额
	TotalEarnings models.Money `json:"total_earnings"` // 累计收益
	PendingPayout models.Money `json:"pending_payout"` // 待审核提现金额
	Withdrawable  models.Money `json:"withdrawable"`   // 可申请提现金额
	UpiID         string       `json:"upi_id"`         // 收款账号
	Currency      string       `json:"currency"`       // 币种
}

// Overview 查询创作者钱包总览
func (s *WalletService) Overview(creatorID uint) (*WalletOverview, error) {
	creator, err := s.creatorRepo.GetByID(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}
	pending, err := s.payoutRepo.SumPendingByCreator(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	withdrawable := creator.Balance.Decimal.Sub(pending.Decimal)
	if withdrawable.IsNegative() {
		withdrawable = decimal.Zero
	}
	return &WalletOverview{
		Balance:       creator.Balance,
		TotalEarnings: creator.TotalEarnings,
		PendingPayout: pending,
		Withdrawable:  models.NewMoneyFromDecimal(withdrawable),
		UpiID:         creator.UpiID,
		Currency:      constants.SiteCurrencyDefault,
	}, nil
}

// ListTransactions 分页查询创作者账本流水
func (s *WalletService) ListTransactions(filter repository.TransactionListFilter) ([]models.Transaction, int64, error) {
	txns, total, err := s.txnRepo.List(filter)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return txns, total, nil
}

// RequestPayout 创作者申请提现。
// 校验最低限额、UPI 账号，且金额不超过余额扣除在途提现后的可用额度。
func (s *WalletService) RequestPayout(creatorID uint, amount models.Money) (*models.PayoutRequest, error) {
	if !amount.Decimal.IsPositive() {
		return nil, ErrPayoutAmountInvalid
	}
	minAmount := decimal.NewFromFloat(s.payoutCfg.MinAmount)
	if minAmount.IsPositive() && amount.Decimal.LessThan(minAmount) {
		return nil, ErrPayoutBelowMinimum
	}

	var request *models.PayoutRequest
	err := s.creatorRepo.Transaction(func(tx *gorm.DB) error {
		creatorRepo := s.creatorRepo.WithTx(tx)
		payoutRepo := s.payoutRepo.WithTx(tx)

		creator, err := creatorRepo.GetByIDForUpdate(creatorID)
		if err != nil {
			return storageErr(err)
		}
		if creator == nil {
			return ErrNotFound
		}
		if strings.TrimSpace(creator.UpiID) == "" {
			return ErrPayoutUpiMissing
		}

		pending, err := payoutRepo.SumPendingByCreator(creatorID)
		if err != nil {
			return storageErr(err)
		}
		available := creator.Balance.Decimal.Sub(pending.Decimal)
		if amount.Decimal.GreaterThan(available) {
			return ErrInsufficientBalance
		}

		request = &models.PayoutRequest{
			CreatorID: creator.ID,
			Amount:    amount,
			UpiID:     creator.UpiID,
			Status:    constants.PayoutStatusPendingReview,
		}
		if err := payoutRepo.Create(request); err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ReviewPayout 管理员处理提现申请。
// pay：扣减余额并追加负向账本交易；reject：仅落备注，余额不动。
func (s *WalletService) ReviewPayout(payoutID uint, action, note string) (*models.PayoutRequest, error) {
	if action != constants.PayoutActionPay && action != constants.PayoutActionReject {
		return nil, ErrPayoutAmountInvalid
	}

	var request *models.PayoutRequest
	err := s.payoutRepo.Transaction(func(tx *gorm.DB) error {
		payoutRepo := s.payoutRepo.WithTx(tx)
		creatorRepo := s.creatorRepo.WithTx(tx)
		txnRepo := s.txnRepo.WithTx(tx)

		current, err := payoutRepo.GetByIDForUpdate(payoutID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if current.Status != constants.PayoutStatusPendingReview {
			return ErrPayoutAlreadyReviewed
		}

		now := time.Now()
		current.ReviewNote = strings.TrimSpace(note)
		current.ReviewedAt = &now

		if action == constants.PayoutActionReject {
			current.Status = constants.PayoutStatusRejected
			if err := payoutRepo.Update(current); err != nil {
				return storageErr(err)
			}
			request = current
			return nil
		}

		creator, err := creatorRepo.GetByIDForUpdate(current.CreatorID)
		if err != nil {
			return storageErr(err)
		}
		if creator == nil {
			return ErrNotFound
		}
		if creator.Balance.Decimal.LessThan(current.Amount.Decimal) {
			return ErrInsufficientBalance
		}

		balanceBefore := creator.Balance.Decimal
		balanceAfter := balanceBefore.Sub(current.Amount.Decimal)
		txn := &models.Transaction{
			CreatorID:     creator.ID,
			Type:          constants.TxnTypePayout,
			Amount:        models.NewMoneyFromDecimal(current.Amount.Decimal.Neg()),
			BalanceBefore: models.NewMoneyFromDecimal(balanceBefore),
			BalanceAfter:  models.NewMoneyFromDecimal(balanceAfter),
			Reference:     fmt.Sprintf("payout:%d", current.ID),
			Description:   fmt.Sprintf("提现至 UPI %s", current.UpiID),
		}
		if err := txnRepo.Create(txn); err != nil {
			return storageErr(err)
		}

		creator.Balance = models.NewMoneyFromDecimal(balanceAfter)
		if err := creatorRepo.Update(creator); err != nil {
			return storageErr(err)
		}

		current.Status = constants.PayoutStatusPaid
		if err := payoutRepo.Update(current); err != nil {
			return storageErr(err)
		}
		request = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ListPayouts 分页查询提现申请
func (s *WalletService) ListPayouts(filter repository.PayoutRequestListFilter) ([]models.PayoutRequest, int64, error) {
	requests, total, err := s.payoutRepo.List(filter)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return requests, total, nil
}
