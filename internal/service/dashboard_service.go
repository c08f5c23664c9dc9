package service

import (
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"
)

// DashboardService 管理端数据总览服务
type DashboardService struct {
	creatorRepo    repository.CreatorRepository
	campaignRepo   repository.CampaignRepository
	submissionRepo repository.SubmissionRepository
	txnRepo        repository.TransactionRepository
}

// NewDashboardService 创建总览服务实例
func NewDashboardService(
	creatorRepo repository.CreatorRepository,
	campaignRepo repository.CampaignRepository,
	submissionRepo repository.SubmissionRepository,
	txnRepo repository.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		creatorRepo:    creatorRepo,
		campaignRepo:   campaignRepo,
		submissionRepo: submissionRepo,
		txnRepo:        txnRepo,
	}
}

// DashboardStats 管理端总览数据
type DashboardStats struct {
	TotalCreators      int64        `json:"total_creators"`      // 创作者总数
	PendingVetting     int64        `json:"pending_vetting"`     // 待审核资质数量
	ActiveCampaigns    int64        `json:"active_campaigns"`    // 开放中活动数量
	PendingSubmissions int64        `json:"pending_submissions"` // 待审投稿数量
	TotalSpent         models.Money `json:"total_spent"`         // 全部活动累计支出
	TotalEarnings      models.Money `json:"total_earnings"`      // 累计结算收益
}

// Stats 汇总管理端总览数据
func (s *DashboardService) Stats() (*DashboardStats, error) {
	totalCreators, err := s.creatorRepo.Count()
	if err != nil {
		return nil, storageErr(err)
	}
	pendingVetting, err := s.creatorRepo.CountByVettingStatus(constants.VettingStatusPending)
	if err != nil {
		return nil, storageErr(err)
	}
	activeCampaigns, err := s.campaignRepo.CountByStatus(constants.CampaignStatusActive)
	if err != nil {
		return nil, storageErr(err)
	}
	pendingSubmissions, err := s.submissionRepo.CountByStatus(constants.SubmissionStatusPending)
	if err != nil {
		return nil, storageErr(err)
	}
	totalSpent, err := s.campaignRepo.SumSpent()
	if err != nil {
		return nil, storageErr(err)
	}
	totalEarnings, err := s.txnRepo.SumByType(constants.TxnTypeEarning)
	if err != nil {
		return nil, storageErr(err)
	}

	return &DashboardStats{
		TotalCreators:      totalCreators,
		PendingVetting:     pendingVetting,
		ActiveCampaigns:    activeCampaigns,
		PendingSubmissions: pendingSubmissions,
		TotalSpent:         totalSpent,
		TotalEarnings:      totalEarnings,
	}, nil
}
