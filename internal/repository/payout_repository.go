package repository

import (
	"errors"

	"github.com/viewspecash/viewspecash/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutRequestRepository 提现申请数据访问接口
type PayoutRequestRepository interface {
	GetByID(id uint) (*models.PayoutRequest, error)
	GetByIDForUpdate(id uint) (*models.PayoutRequest, error)
	List(filter PayoutRequestListFilter) ([]models.PayoutRequest, int64, error)
	SumPendingByCreator(creatorID uint) (models.Money, error)
	Create(request *models.PayoutRequest) error
	Update(request *models.PayoutRequest) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormPayoutRequestRepository
}

// GormPayoutRequestRepository GORM 提现申请仓储实现
type GormPayoutRequestRepository struct {
	db *gorm.DB
}

// NewPayoutRequestRepository 创建提现申请仓储
func NewPayoutRequestRepository(db *gorm.DB) *GormPayoutRequestRepository {
	return &GormPayoutRequestRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPayoutRequestRepository) WithTx(tx *gorm.DB) *GormPayoutRequestRepository {
	if tx == nil {
		return r
	}
	return &GormPayoutRequestRepository{db: tx}
}

// Transaction 在数据库事务中执行回调
func (r *GormPayoutRequestRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取提现申请
func (r *GormPayoutRequestRepository) GetByID(id uint) (*models.PayoutRequest, error) {
	if id == 0 {
		return nil, nil
	}
	var request models.PayoutRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByIDForUpdate 按ID加锁获取提现申请（审核场景）
func (r *GormPayoutRequestRepository) GetByIDForUpdate(id uint) (*models.PayoutRequest, error) {
	if id == 0 {
		return nil, nil
	}
	var request models.PayoutRequest
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List 分页查询提现申请
func (r *GormPayoutRequestRepository) List(filter PayoutRequestListFilter) ([]models.PayoutRequest, int64, error) {
	query := r.db.Model(&models.PayoutRequest{})
	if filter.CreatorID != 0 {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
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

	var requests []models.PayoutRequest
	if err := query.Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// SumPendingByCreator 统计创作者待审核提现金额
func (r *GormPayoutRequestRepository) SumPendingByCreator(creatorID uint) (models.Money, error) {
	var total models.Money
	if err := r.db.Model(&models.PayoutRequest{}).
		Where("creator_id = ? AND status = ?", creatorID, "pending_review").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return models.ZeroMoney(), err
	}
	return total, nil
}

// Create 创建提现申请
func (r *GormPayoutRequestRepository) Create(request *models.PayoutRequest) error {
	return r.db.Create(request).Error
}

// Update 更新提现申请
func (r *GormPayoutRequestRepository) Update(request *models.PayoutRequest) error {
	return r.db.Save(request).Error
}
