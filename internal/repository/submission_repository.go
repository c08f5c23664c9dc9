package repository

import (
	"errors"
	"time"

	"github.com/viewspecash/viewspecash/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionRepository 投稿数据访问接口
type SubmissionRepository interface {
	GetByID(id uint) (*models.Submission, error)
	GetByIDForUpdate(id uint) (*models.Submission, error)
	GetDetail(id uint) (*models.Submission, error)
	List(filter SubmissionListFilter) ([]models.Submission, int64, error)
	CountByStatus(status string) (int64, error)
	CountActiveByCreator(creatorID uint) (int64, error)
	SumViewsByCreator(creatorID uint) (int64, error)
	ListStale(before time.Time, limit int) ([]models.Submission, error)
	Create(submission *models.Submission) error
	Update(submission *models.Submission) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormSubmissionRepository
}

// activeStatuses 计入收益进度的投稿状态
var activeStatuses = []string{"approved", "earning", "capped"}

// GormSubmissionRepository GORM 投稿仓储实现
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建投稿仓储
func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSubmissionRepository) WithTx(tx *gorm.DB) *GormSubmissionRepository {
	if tx == nil {
		return r
	}
	return &GormSubmissionRepository{db: tx}
}

// Transaction 在数据库事务中执行回调
func (r *GormSubmissionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取投稿
func (r *GormSubmissionRepository) GetByID(id uint) (*models.Submission, error) {
	if id == 0 {
		return nil, nil
	}
	var submission models.Submission
	if err := r.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// GetByIDForUpdate 按ID加锁获取投稿（播放量结算场景）
func (r *GormSubmissionRepository) GetByIDForUpdate(id uint) (*models.Submission, error) {
	if id == 0 {
		return nil, nil
	}
	var submission models.Submission
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// GetDetail 获取投稿详情（含活动与创作者）
func (r *GormSubmissionRepository) GetDetail(id uint) (*models.Submission, error) {
	if id == 0 {
		return nil, nil
	}
	var submission models.Submission
	if err := r.db.Preload("Campaign").Preload("Creator").
		First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// List 分页查询投稿
func (r *GormSubmissionRepository) List(filter SubmissionListFilter) ([]models.Submission, int64, error) {
	query := r.db.Model(&models.Submission{})
	if filter.CampaignID != 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.CreatorID != 0 {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCampaign {
		query = query.Preload("Campaign")
	}

	var submissions []models.Submission
	if err := query.Order("id desc").Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// CountByStatus 按状态统计投稿数量
func (r *GormSubmissionRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Submission{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByCreator 统计创作者在投的投稿数量
func (r *GormSubmissionRepository) CountActiveByCreator(creatorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Submission{}).
		Where("creator_id = ? AND status IN ?", creatorID, activeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumViewsByCreator 统计创作者累计播放量
func (r *GormSubmissionRepository) SumViewsByCreator(creatorID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Submission{}).
		Where("creator_id = ? AND status IN ?", creatorID, activeStatuses).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListStale 查询播放量长时间未刷新的在投投稿
func (r *GormSubmissionRepository) ListStale(before time.Time, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	var submissions []models.Submission
	if err := r.db.Model(&models.Submission{}).
		Where("status IN ?", activeStatuses).
		Where("last_scraped_at IS NULL OR last_scraped_at < ?", before).
		Order("last_scraped_at ASC").
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Create 创建投稿
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// Update 更新投稿
func (r *GormSubmissionRepository) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}
