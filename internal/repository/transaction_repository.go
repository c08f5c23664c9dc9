package repository

import (
	"errors"
	"strings"

	"github.com/viewspecash/viewspecash/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository 账本交易数据访问接口
// 账本只追加：仓储层刻意不提供 Update / Delete
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	GetByReference(reference string) (*models.Transaction, error)
	List(filter TransactionListFilter) ([]models.Transaction, int64, error)
	SumByType(txnType string) (models.Money, error)
	CountBySubmission(submissionID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormTransactionRepository
}

// GormTransactionRepository GORM 账本仓储实现
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建账本仓储
func NewTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTransactionRepository) WithTx(tx *gorm.DB) *GormTransactionRepository {
	if tx == nil {
		return r
	}
	return &GormTransactionRepository{db: tx}
}

// Create 追加账本交易
func (r *GormTransactionRepository) Create(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

// GetByReference 按幂等引用号获取交易
func (r *GormTransactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var txn models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// List 分页查询账本交易
func (r *GormTransactionRepository) List(filter TransactionListFilter) ([]models.Transaction, int64, error) {
	query := r.db.Model(&models.Transaction{})
	if filter.CreatorID != 0 {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.SubmissionID != 0 {
		query = query.Where("submission_id = ?", filter.SubmissionID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
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

	var txns []models.Transaction
	if err := query.Order("id desc").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// SumByType 按类型汇总交易金额
func (r *GormTransactionRepository) SumByType(txnType string) (models.Money, error) {
	var total models.Money
	query := r.db.Model(&models.Transaction{})
	if txnType != "" {
		query = query.Where("type = ?", txnType)
	}
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return models.ZeroMoney(), err
	}
	return total, nil
}

// CountBySubmission 统计某投稿产生的交易笔数
func (r *GormTransactionRepository) CountBySubmission(submissionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
