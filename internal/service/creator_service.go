package service

import (
	"context"
	"strings"

	"github.com/viewspecash/viewspecash/internal/cache"
	"github.com/viewspecash/viewspecash/internal/constants"
	"github.com/viewspecash/viewspecash/internal/logger"
	"github.com/viewspecash/viewspecash/internal/models"
	"github.com/viewspecash/viewspecash/internal/repository"

	"gorm.io/gorm"
)

// CreatorService 创作者资料与资质审核服务
type CreatorService struct {
	creatorRepo repository.CreatorRepository
}

// NewCreatorService 创建创作者服务实例
func NewCreatorService(creatorRepo repository.CreatorRepository) *CreatorService {
	return &CreatorService{creatorRepo: creatorRepo}
}

// ProfileInput 更新资料入参
type ProfileInput struct {
	DisplayName     string
	InstagramHandle string
	YoutubeHandle   string
	UpiID           string
}

// UpdateProfile 更新创作者资料
func (s *CreatorService) UpdateProfile(creatorID uint, input ProfileInput) (*models.Creator, error) {
	creator, err := s.creatorRepo.GetByID(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}

	creator.DisplayName = strings.TrimSpace(input.DisplayName)
	creator.InstagramHandle = strings.TrimSpace(input.InstagramHandle)
	creator.YoutubeHandle = strings.TrimSpace(input.YoutubeHandle)
	creator.UpiID = strings.TrimSpace(input.UpiID)
	if err := s.creatorRepo.Update(creator); err != nil {
		return nil, storageErr(err)
	}
	return creator, nil
}

// SubmitVetting 创作者申请资质审核。
// none/rejected 可重新申请，pending 幂等返回，approved 不再受理。
// 申请前至少要绑定一个平台账号。
func (s *CreatorService) SubmitVetting(creatorID uint) (*models.Creator, error) {
	creator, err := s.creatorRepo.GetByID(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}

	switch creator.VettingStatus {
	case constants.VettingStatusPending:
		return creator, nil
	case constants.VettingStatusApproved:
		return nil, ErrVettingAlreadyReviewed
	}
	if creator.InstagramHandle == "" && creator.YoutubeHandle == "" {
		return nil, ErrVettingProfileIncomplete
	}

	creator.VettingStatus = constants.VettingStatusPending
	creator.VettingNote = ""
	if err := s.creatorRepo.Update(creator); err != nil {
		return nil, storageErr(err)
	}
	return creator, nil
}

// ReviewVetting 管理员审核资质，仅处理 pending 状态
func (s *CreatorService) ReviewVetting(creatorID uint, approve bool, note string) (*models.Creator, error) {
	var creator *models.Creator
	err := s.creatorRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.creatorRepo.WithTx(tx)
		current, err := repo.GetByIDForUpdate(creatorID)
		if err != nil {
			return storageErr(err)
		}
		if current == nil {
			return ErrNotFound
		}
		if current.VettingStatus != constants.VettingStatusPending {
			return ErrVettingAlreadyReviewed
		}

		if approve {
			current.VettingStatus = constants.VettingStatusApproved
		} else {
			current.VettingStatus = constants.VettingStatusRejected
		}
		current.VettingNote = strings.TrimSpace(note)
		if err := repo.Update(current); err != nil {
			return storageErr(err)
		}
		creator = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 审核结果影响鉴权快照中的 vetting_status，主动失效
	if err := cache.DelCreatorAuthState(context.Background(), creator.ID); err != nil {
		logger.Warnw("creator_auth_state_del_failed", "creator_id", creator.ID, "error", err)
	}
	return creator, nil
}

// Get 获取创作者详情
func (s *CreatorService) Get(creatorID uint) (*models.Creator, error) {
	creator, err := s.creatorRepo.GetByID(creatorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if creator == nil {
		return nil, ErrNotFound
	}
	return creator, nil
}

// List 分页查询创作者（管理端）
func (s *CreatorService) List(filter repository.CreatorListFilter) ([]models.Creator, int64, error) {
	creators, total, err := s.creatorRepo.List(filter)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return creators, total, nil
}
