package repository

import (
	"errors"

	"github.com/viewspecash/viewspecash/internal/models"

	"gorm.io/gorm"
)

// AdvertiserRepository 广告主数据访问接口
type AdvertiserRepository interface {
	GetByID(id uint) (*models.Advertiser, error)
	List() ([]models.Advertiser, error)
	Create(advertiser *models.Advertiser) error
	Update(advertiser *models.Advertiser) error
	Delete(id uint) error
}

// GormAdvertiserRepository GORM 广告主仓储实现
type GormAdvertiserRepository struct {
	db *gorm.DB
}

// NewAdvertiserRepository 创建广告主仓储
func NewAdvertiserRepository(db *gorm.DB) *GormAdvertiserRepository {
	return &GormAdvertiserRepository{db: db}
}

// GetByID 按ID获取广告主
func (r *GormAdvertiserRepository) GetByID(id uint) (*models.Advertiser, error) {
	if id == 0 {
		return nil, nil
	}
	var advertiser models.Advertiser
	if err := r.db.First(&advertiser, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &advertiser, nil
}

// List 获取广告主列表
func (r *GormAdvertiserRepository) List() ([]models.Advertiser, error) {
	advertisers := make([]models.Advertiser, 0)
	if err := r.db.Order("id ASC").Find(&advertisers).Error; err != nil {
		return nil, err
	}
	return advertisers, nil
}

// Create 创建广告主
func (r *GormAdvertiserRepository) Create(advertiser *models.Advertiser) error {
	return r.db.Create(advertiser).Error
}

// Update 更新广告主
func (r *GormAdvertiserRepository) Update(advertiser *models.Advertiser) error {
	return r.db.Save(advertiser).Error
}

// Delete 删除广告主（软删除）
func (r *GormAdvertiserRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Advertiser{}, id).Error
}
