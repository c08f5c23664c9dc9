package repository

import (
	"errors"
	"strings"

	"github.com/viewspecash/viewspecash/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatorRepository 创作者数据访问接口
type CreatorRepository interface {
	GetByEmail(email string) (*models.Creator, error)
	GetByID(id uint) (*models.Creator, error)
	GetByIDForUpdate(id uint) (*models.Creator, error)
	List(filter CreatorListFilter) ([]models.Creator, int64, error)
	Count() (int64, error)
	CountByVettingStatus(status string) (int64, error)
	Create(creator *models.Creator) error
	Update(creator *models.Creator) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormCreatorRepository
}

// GormCreatorRepository GORM 创作者仓储实现
type GormCreatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository 创建创作者仓储
func NewCreatorRepository(db *gorm.DB) *GormCreatorRepository {
	return &GormCreatorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCreatorRepository) WithTx(tx *gorm.DB) *GormCreatorRepository {
	if tx == nil {
		return r
	}
	return &GormCreatorRepository{db: tx}
}

// Transaction 在数据库事务中执行回调
func (r *GormCreatorRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByEmail 按邮箱获取创作者
func (r *GormCreatorRepository) GetByEmail(email string) (*models.Creator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var creator models.Creator
	if err := r.db.Where("email = ?", email).First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

// GetByID 按ID获取创作者
func (r *GormCreatorRepository) GetByID(id uint) (*models.Creator, error) {
	if id == 0 {
		return nil, nil
	}
	var creator models.Creator
	if err := r.db.First(&creator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

// GetByIDForUpdate 按ID加锁获取创作者（余额变更场景）
func (r *GormCreatorRepository) GetByIDForUpdate(id uint) (*models.Creator, error) {
	if id == 0 {
		return nil, nil
	}
	var creator models.Creator
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&creator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

// List 分页查询创作者
func (r *GormCreatorRepository) List(filter CreatorListFilter) ([]models.Creator, int64, error) {
	query := r.db.Model(&models.Creator{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("email LIKE ? OR display_name LIKE ?", pattern, pattern)
	}
	if filter.VettingStatus != "" {
		query = query.Where("vetting_status = ?", filter.VettingStatus)
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

	var creators []models.Creator
	if err := query.Order("id desc").Find(&creators).Error; err != nil {
		return nil, 0, err
	}
	return creators, total, nil
}

// Count 统计创作者总数
func (r *GormCreatorRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Creator{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByVettingStatus 按审核状态统计创作者数量
func (r *GormCreatorRepository) CountByVettingStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Creator{}).
		Where("vetting_status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建创作者
func (r *GormCreatorRepository) Create(creator *models.Creator) error {
	return r.db.Create(creator).Error
}

// Update 更新创作者
func (r *GormCreatorRepository) Update(creator *models.Creator) error {
	return r.db.Save(creator).Error
}
