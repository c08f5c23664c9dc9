package service

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/queue"
	"github.com/viewspecash/viewspecash/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// viewUpdatableStatuses 允许接收播放量更新的投稿状态
var viewUpdatableStatuses = map[string]bool{
	constants.SubmissionStatusApproved: true,
	constants.SubmissionStatusEarning:  true,
	constants.SubmissionStatusCapped:   true,
}

// validPlatforms 合法投放平台
var validPlatforms = map[string]bool{
	constants.PlatformInstagramReels: true,
	constants.PlatformYoutubeShorts:  true,
	constants.PlatformBoth:           true,
}

// SubmissionService 投稿生命周期服务
// 所有涉及 (view_count, earned, campaign.spent, 余额) 的读改写都在
// 数据库事务 + 行锁中执行，并以进程内投稿级互斥保证重复投递排队而非竞态
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	campaignRepo   repository.CampaignRepository
	creatorRepo    repository.CreatorRepository
	txnRepo        repository.TransactionRepository
	queueClient    *queue.Client

	locks sync.Map // submissionID -> *sync.Mutex
}

// NewSubmissionService 创建投稿服务实例
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	campaignRepo repository.CampaignRepository,
	creatorRepo repository.CreatorRepository,
	txnRepo repository.TransactionRepository,
	queueClient *queue.Client,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		campaignRepo:   campaignRepo,
		creatorRepo:    creatorRepo,
		txnRepo:        txnRepo,
		queueClient:    queueClient,
	}
}

func (s *SubmissionService) lockSubmission(id uint) func() {
	value, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// storageErr 将仓储错误标记为存储不可用，保留原始错误链供日志排查
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// SubmitInput 创建投稿入参
type SubmitInput struct {
	CampaignID uint
	CreatorID  uint
	PostLink   string
	Platform   string
}

// Submit 创作者提交作品链接，初始状态 pending
func (s *SubmissionService) Submit(input SubmitInput) (*models.Submission, error) {
	link := strings.TrimSpace(input.PostLink)
	if !isValidPostLink(link) {
		return nil, ErrSubmissionLinkInvalid
	}
	platform := strings.TrimSpace(input.Platform)
	if !validPlatforms[platform] {
		return nil, ErrSubmissionPlatformInvalid
	}

	creator, err := s.creatorRepo.GetByID(input.CreatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}
	if creator.VettingStatus != constants.VettingStatusApproved {
		return nil, ErrCreatorNotVetted
	}

	campaign, err := s.campaignRepo.GetByID(input.CampaignID)
	if err != nil {
		return nil, storageErr(err)
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	if campaign.Status != constants.CampaignStatusActive {
		return nil, ErrCampaignNotActive
	}
	// 活动限定单一平台时投稿平台必须一致
	if campaign.Platform != constants.PlatformBoth && platform != campaign.Platform {
		return nil, ErrSubmissionPlatformInvalid
	}

	submission := &models.Submission{
		CampaignID: campaign.ID,
		CreatorID:  creator.ID,
		PostLink:   link,
		Platform:   platform,
		Status:     constants.SubmissionStatusPending,
		Earned:     models.ZeroMoney(),
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, storageErr(err)
	}
	return submission, nil
}

// Approve 管理员审批通过，仅允许 pending 投稿
func (s *SubmissionService) Approve(submissionID uint, note string) (*models.Submission, error) {
	unlock := s.lockSubmission(submissionID)
	defer unlock()

	var submission *models.Submission
	err := s.submissionRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.submissionRepo.WithTx(tx)
		current, err := repo.GetByIDForUpdate(submissionID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if current.Status != constants.SubmissionStatusPending {
			return ErrSubmissionStatusInvalid
		}

		now := time.Now()
		current.Status = constants.SubmissionStatusApproved
		current.ApprovedAt = &now
		current.AdminNote = strings.TrimSpace(note)
		if err := repo.Update(current); err != nil {
			return storageErr(err)
		}
		submission = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(submission.ID, submission.Status)
	return submission, nil
}

// Reject 管理员拒绝投稿，终态；未填写原因时落默认备注
func (s *SubmissionService) Reject(submissionID uint, reason string) (*models.Submission, error) {
	unlock := s.lockSubmission(submissionID)
	defer unlock()

	var submission *models.Submission
	err := s.submissionRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.submissionRepo.WithTx(tx)
		current, err := repo.GetByIDForUpdate(submissionID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if current.Status != constants.SubmissionStatusPending {
			return ErrSubmissionStatusInvalid
		}

		reason = strings.TrimSpace(reason)
		if reason == "" {
			reason = constants.DefaultRejectReason
		}
		current.Status = constants.SubmissionStatusRejected
		current.AdminNote = reason
		if err := repo.Update(current); err != nil {
			return storageErr(err)
		}
		submission = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(submission.ID, submission.Status)
	return submission, nil
}

// ViewIngestResult 播放量结算结果
type ViewIngestResult struct {
	SubmissionID    uint         `json:"submission_id"`
	Status          string       `json:"status"`
	ViewCount       int64        `json:"view_count"`
	Earned          models.Money `json:"earned"`
	Delta           models.Money `json:"delta"`
	IsCapped        bool         `json:"is_capped"`
	CappedAt        models.Money `json:"capped_at"`
	RatePerThousand models.Money `json:"rate_per_thousand"`
	BudgetClamped   bool         `json:"budget_clamped"`
	LastScrapedAt   time.Time    `json:"last_scraped_at"`
}

// RecordViewCount 接收外部爬虫投递的播放量并结算收益。
// 合约：播放量单调不减；收益增量写入账本并同步活动支出与创作者余额；
// 活动预算不足时增量被压缩到恰好花满预算；view_count 与 last_scraped_at
// 无条件刷新（即使增量为零）。整组更新要么全部提交要么全部回滚。
func (s *SubmissionService) RecordViewCount(submissionID uint, viewCount int64) (*ViewIngestResult, error) {
	if viewCount < 0 {
		return nil, ErrViewCountInvalid
	}

	unlock := s.lockSubmission(submissionID)
	defer unlock()

	var (
		result            *ViewIngestResult
		exhaustedCampaign uint
	)
	err := s.submissionRepo.Transaction(func(tx *gorm.DB) error {
		submissionRepo := s.submissionRepo.WithTx(tx)
		campaignRepo := s.campaignRepo.WithTx(tx)
		creatorRepo := s.creatorRepo.WithTx(tx)
		txnRepo := s.txnRepo.WithTx(tx)

		submission, err := submissionRepo.GetByIDForUpdate(submissionID)
		if err != nil {
			return storageErr(err)
		}
		if submission == nil {
			return ErrNotFound
		}
		if !viewUpdatableStatuses[submission.Status] {
			return ErrSubmissionStatusInvalid
		}
		if viewCount < submission.ViewCount {
			return ErrViewCountRegressed
		}

		campaign, err := campaignRepo.GetByIDForUpdate(submission.CampaignID)
		if err != nil {
			return storageErr(err)
		}
		if campaign == nil {
			return ErrNotFound
		}

		calc, err := CalculateEarnings(viewCount, campaign.RatePerThousand, campaign.MaxPayoutPerCreator)
		if err != nil {
			return err
		}

		newEarned := calc.Earned.Decimal
		delta := newEarned.Sub(submission.Earned.Decimal)
		// 单价被下调时不回收已结算收益，账本只追加
		if delta.IsNegative() {
			delta = decimal.Zero
			newEarned = submission.Earned.Decimal
		}

		// 活动预算优先于单创作者上限：增量不得超过剩余预算
		budgetClamped := false
		remaining := campaign.BudgetCap.Decimal.Sub(campaign.Spent.Decimal)
		if delta.GreaterThan(remaining) {
			delta = remaining
			newEarned = submission.Earned.Decimal.Add(delta)
			budgetClamped = true
		}

		if !delta.IsZero() {
			reference := fmt.Sprintf("earning:submission:%d:views:%d", submission.ID, viewCount)
			existing, err := txnRepo.GetByReference(reference)
			if err != nil {
				return storageErr(err)
			}
			if existing != nil {
				// 同一次投递已入账（至少一次投递语义下的重放），本次不再记账
				delta = decimal.Zero
				newEarned = submission.Earned.Decimal
			} else {
				creator, err := creatorRepo.GetByIDForUpdate(submission.CreatorID)
				if err != nil {
					return storageErr(err)
				}
				if creator == nil {
					return ErrNotFound
				}
				balanceBefore := creator.Balance.Decimal
				balanceAfter := balanceBefore.Add(delta)
				txn := &models.Transaction{
					CreatorID:     creator.ID,
					SubmissionID:  &submission.ID,
					Type:          constants.TxnTypeEarning,
					Amount:        models.NewMoneyFromDecimal(delta),
					BalanceBefore: models.NewMoneyFromDecimal(balanceBefore),
					BalanceAfter:  models.NewMoneyFromDecimal(balanceAfter),
					Reference:     reference,
					Description:   fmt.Sprintf("活动 #%d 播放量 %d 收益结算", campaign.ID, viewCount),
				}
				if err := txnRepo.Create(txn); err != nil {
					return storageErr(err)
				}

				creator.Balance = models.NewMoneyFromDecimal(balanceAfter)
				creator.TotalEarnings = models.NewMoneyFromDecimal(creator.TotalEarnings.Decimal.Add(delta))
				if err := creatorRepo.Update(creator); err != nil {
					return storageErr(err)
				}

				campaign.Spent = models.NewMoneyFromDecimal(campaign.Spent.Decimal.Add(delta))
				if err := campaignRepo.Update(campaign); err != nil {
					return storageErr(err)
				}
			}
		}

		now := time.Now()
		submission.ViewCount = viewCount
		submission.LastScrapedAt = &now
		submission.Earned = models.NewMoneyFromDecimal(newEarned)
		switch {
		case calc.IsCapped:
			submission.Status = constants.SubmissionStatusCapped
		case newEarned.IsPositive():
			submission.Status = constants.SubmissionStatusEarning
		}
		if err := submissionRepo.Update(submission); err != nil {
			return storageErr(err)
		}

		if campaign.Spent.Decimal.GreaterThanOrEqual(campaign.BudgetCap.Decimal) {
			exhaustedCampaign = campaign.ID
		}
		result = &ViewIngestResult{
			SubmissionID:    submission.ID,
			Status:          submission.Status,
			ViewCount:       submission.ViewCount,
			Earned:          submission.Earned,
			Delta:           models.NewMoneyFromDecimal(delta),
			IsCapped:        calc.IsCapped,
			CappedAt:        calc.CappedAt,
			RatePerThousand: calc.RatePerThousand,
			BudgetClamped:   budgetClamped,
			LastScrapedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if exhaustedCampaign != 0 {
		if err := s.queueClient.EnqueueCampaignBudgetCheck(queue.CampaignBudgetCheckPayload{CampaignID: exhaustedCampaign}); err != nil {
			logger.Warnw("campaign_budget_check_enqueue_failed",
				"campaign_id", exhaustedCampaign,
				"error", err,
			)
		}
	}
	return result, nil
}

// ViewSnapshot 投稿播放量快照（只读，不触发重算）
type ViewSnapshot struct {
	SubmissionID  uint         `json:"submission_id"`
	ViewCount     int64        `json:"view_count"`
	Earned        models.Money `json:"earned"`
	Status        string       `json:"status"`
	LastScrapedAt *time.Time   `json:"last_scraped_at"`
}

// GetViewSnapshot 查询投稿当前持久化的播放量与收益
func (s *SubmissionService) GetViewSnapshot(submissionID uint) (*ViewSnapshot, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, storageErr(err)
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	return &ViewSnapshot{
		SubmissionID:  submission.ID,
		ViewCount:     submission.ViewCount,
		Earned:        submission.Earned,
		Status:        submission.Status,
		LastScrapedAt: submission.LastScrapedAt,
	}, nil
}

// GetDetail 获取投稿详情（含活动与创作者）
func (s *SubmissionService) GetDetail(submissionID uint) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetDetail(submissionID)
	if err != nil {
		return nil, storageErr(err)
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	return submission, nil
}

// List 分页查询投稿
func (s *SubmissionService) List(filter repository.SubmissionListFilter) ([]models.Submission, int64, error) {
	submissions, total, err := s.submissionRepo.List(filter)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return submissions, total, nil
}

// CreatorStats 创作者数据总览
type CreatorStats struct {
	TotalEarnings     models.Money `json:"total_earnings"`
	Balance           models.Money `json:"balance"`
	ActiveSubmissions int64        `json:"active_submissions"`
	TotalViews        int64        `json:"total_views"`
}

// GetCreatorStats 汇总创作者收益与投稿数据
func (s *SubmissionService) GetCreatorStats(creatorID uint) (*CreatorStats, error) {
	creator, err := s.creatorRepo.GetByID(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}
	active, err := s.submissionRepo.CountActiveByCreator(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	views, err := s.submissionRepo.SumViewsByCreator(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	return &CreatorStats{
		TotalEarnings:     creator.TotalEarnings,
		Balance:           creator.Balance,
		ActiveSubmissions: active,
		TotalViews:        views,
	}, nil
}

// ListStale 查询播放量长时间未刷新的在投投稿
func (s *SubmissionService) ListStale(staleAfter time.Duration, limit int) ([]models.Submission, error) {
	if staleAfter <= 0 {
		staleAfter = 48 * time.Hour
	}
	submissions, err := s.submissionRepo.ListStale(time.Now().Add(-staleAfter), limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return submissions, nil
}

func (s *SubmissionService) notifyStatusChange(submissionID uint, status string) {
	if err := s.queueClient.EnqueueSubmissionStatusEmail(queue.SubmissionStatusEmailPayload{
		SubmissionID: submissionID,
		Status:       status,
	}); err != nil {
		logger.Warnw("submission_status_email_enqueue_failed",
			"submission_id", submissionID,
			"status", status,
			"error", err,
		)
	}
}

func isValidPostLink(link string) bool {
	if link == "" {
		return false
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
