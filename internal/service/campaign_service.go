package service

import (
	"context"
	"strings"
	"time"

	"github.com/viewspecash/viewspecash/internal/cache"
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"gorm.io/gorm"
)

const (
	activeCampaignCacheKey = "campaigns:active"
	activeCampaignCacheTTL = time.Minute
)

// campaignTransitions 活动状态机：draft -> active，active <-> paused，均可收尾到 completed
var campaignTransitions = map[string][]string{
	constants.CampaignStatusDraft:  {constants.CampaignStatusActive},
	constants.CampaignStatusActive: {constants.CampaignStatusPaused, constants.CampaignStatusCompleted},
	constants.CampaignStatusPaused: {constants.CampaignStatusActive, constants.CampaignStatusCompleted},
}

// CampaignService 活动管理服务
type CampaignService struct {
	campaignRepo   repository.CampaignRepository
	advertiserRepo repository.AdvertiserRepository
}

// NewCampaignService 创建活动服务实例
func NewCampaignService(campaignRepo repository.CampaignRepository, advertiserRepo repository.AdvertiserRepository) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo, advertiserRepo: advertiserRepo}
}

// CampaignInput 创建/更新活动入参
type CampaignInput struct {
	AdvertiserID        uint
	Title               string
	Brief               string
	Platform            string
	RatePerThousand     models.Money
	BudgetCap           models.Money
	MaxPayoutPerCreator models.Money
	StartsAt            *time.Time
	EndsAt              *time.Time
}

func (s *CampaignService) validateInput(input CampaignInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrCampaignStatusInvalid
	}
	if !validPlatforms[input.Platform] {
		return ErrSubmissionPlatformInvalid
	}
	if !input.RatePerThousand.Decimal.IsPositive() {
		return ErrCampaignRateInvalid
	}
	if !input.BudgetCap.Decimal.IsPositive() || !input.MaxPayoutPerCreator.Decimal.IsPositive() {
		return ErrCampaignBudgetInvalid
	}
	// 单创作者上限超过总预算没有意义
	if input.MaxPayoutPerCreator.Decimal.GreaterThan(input.BudgetCap.Decimal) {
		return ErrCampaignBudgetInvalid
	}
	return nil
}

// Create 创建活动，初始状态 draft
func (s *CampaignService) Create(input CampaignInput) (*models.Campaign, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	advertiser, err := s.advertiserRepo.GetByID(input.AdvertiserID)
	if err != nil {
		return nil, storageErr(err)
	}
	if advertiser == nil {
		return nil, ErrNotFound
	}

	campaign := &models.Campaign{
		AdvertiserID:        advertiser.ID,
		Title:               strings.TrimSpace(input.Title),
		Brief:               strings.TrimSpace(input.Brief),
		Platform:            input.Platform,
		RatePerThousand:     input.RatePerThousand,
		BudgetCap:           input.BudgetCap,
		MaxPayoutPerCreator: input.MaxPayoutPerCreator,
		Spent:               models.ZeroMoney(),
		Status:              constants.CampaignStatusDraft,
		StartsAt:            input.StartsAt,
		EndsAt:              input.EndsAt,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, storageErr(err)
	}
	s.invalidateActiveCache()
	return campaign, nil
}

// Update 更新活动配置；预算不允许压到已支出之下
func (s *CampaignService) Update(campaignID uint, input CampaignInput) (*models.Campaign, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var campaign *models.Campaign
	err := s.campaignRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.campaignRepo.WithTx(tx)
		current, err := repo.GetByIDForUpdate(campaignID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if current.Status == constants.CampaignStatusCompleted {
			return ErrCampaignStatusInvalid
		}
		if input.BudgetCap.Decimal.LessThan(current.Spent.Decimal) {
			return ErrCampaignBudgetInvalid
		}

		current.Title = strings.TrimSpace(input.Title)
		current.Brief = strings.TrimSpace(input.Brief)
		current.Platform = input.Platform
		current.RatePerThousand = input.RatePerThousand
		current.BudgetCap = input.BudgetCap
		current.MaxPayoutPerCreator = input.MaxPayoutPerCreator
		current.StartsAt = input.StartsAt
		current.EndsAt = input.EndsAt
		if err := repo.Update(current); err != nil {
			return storageErr(err)
		}
		campaign = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateActiveCache()
	return campaign, nil
}

// ChangeStatus 按状态机流转活动状态
func (s *CampaignService) ChangeStatus(campaignID uint, target string) (*models.Campaign, error) {
	var campaign *models.Campaign
	err := s.campaignRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.campaignRepo.WithTx(tx)
		current, err := repo.GetByIDForUpdate(campaignID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if !campaignTransitionAllowed(current.Status, target) {
			return ErrCampaignStatusInvalid
		}
		current.Status = target
		if err := repo.Update(current); err != nil {
			return storageErr(err)
		}
		campaign = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateActiveCache()
	return campaign, nil
}

// CompleteIfExhausted 预算花满时收尾活动，队列 worker 调用
func (s *CampaignService) CompleteIfExhausted(campaignID uint) (bool, error) {
	completed := false
	err := s.campaignRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.campaignRepo.WithTx(tx)
		current, err := repo.GetByIDForUpdate(campaignID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if current.Status == constants.CampaignStatusCompleted {
			return nil
		}
		if current.Spent.Decimal.LessThan(current.BudgetCap.Decimal) {
			return nil
		}
		current.Status = constants.CampaignStatusCompleted
		if err := repo.Update(current); err != nil {
			return storageErr(err)
		}
		completed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if completed {
		s.invalidateActiveCache()
	}
	return completed, nil
}

// Get 获取活动详情
func (s *CampaignService) Get(campaignID uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, storageErr(err)
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	return campaign, nil
}

// List 分页查询活动（管理端）
func (s *CampaignService) List(filter repository.CampaignListFilter) ([]models.Campaign, int64, error) {
	campaigns, total, err := s.campaignRepo.List(filter)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return campaigns, total, nil
}

// ListActive 查询开放投稿的活动，走 Redis 短缓存
func (s *CampaignService) ListActive(ctx context.Context) ([]models.Campaign, error) {
	var cached []models.Campaign
	hit, err := cache.GetJSON(ctx, activeCampaignCacheKey, &cached)
	if err != nil {
		logger.Warnw("active_campaign_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	campaigns, _, err := s.campaignRepo.List(repository.CampaignListFilter{
		OnlyActive:     true,
		WithAdvertiser: true,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	if err := cache.SetJSON(ctx, activeCampaignCacheKey, campaigns, activeCampaignCacheTTL); err != nil {
		logger.Warnw("active_campaign_cache_write_failed", "error", err)
	}
	return campaigns, nil
}

func (s *CampaignService) invalidateActiveCache() {
	if err := cache.Del(context.Background(), activeCampaignCacheKey); err != nil {
		logger.Warnw("active_campaign_cache_del_failed", "error", err)
	}
}

func campaignTransitionAllowed(from, to string) bool {
	for _, allowed := range campaignTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
