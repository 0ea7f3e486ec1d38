package repository

import (
	"errors"

	"github.com/pizzame/backend/internal/models"

	"gorm.io/gorm"
)

// PizzaSizeRepository 尺寸数据访问接口
type PizzaSizeRepository interface {
	List(onlyActive bool) ([]models.PizzaSize, error)
	GetByID(id uint) (*models.PizzaSize, error)
	Create(size *models.PizzaSize) error
	Update(size *models.PizzaSize) error
	Delete(id uint) error
	CountOpenCartReferences(sizeID uint) (int64, error)
	CountOrderReferences(sizeID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormPizzaSizeRepository
}

// GormPizzaSizeRepository GORM 实现
type GormPizzaSizeRepository struct {
	db *gorm.DB
}

// NewPizzaSizeRepository 创建尺寸仓库
func NewPizzaSizeRepository(db *gorm.DB) *GormPizzaSizeRepository {
	return &GormPizzaSizeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPizzaSizeRepository) WithTx(tx *gorm.DB) *GormPizzaSizeRepository {
	if tx == nil {
		return r
	}
	return &GormPizzaSizeRepository{db: tx}
}

// List 获取尺寸列表
func (r *GormPizzaSizeRepository) List(onlyActive bool) ([]models.PizzaSize, error) {
	var sizes []models.PizzaSize
	query := r.db.Order("diameter_cm asc")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// GetByID 根据 ID 获取尺寸
func (r *GormPizzaSizeRepository) GetByID(id uint) (*models.PizzaSize, error) {
	var size models.PizzaSize
	if err := r.db.First(&size, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// Create 创建尺寸
func (r *GormPizzaSizeRepository) Create(size *models.PizzaSize) error {
	return r.db.Create(size).Error
}

// Update 更新尺寸
func (r *GormPizzaSizeRepository) Update(size *models.PizzaSize) error {
	return r.db.Save(size).Error
}

// Delete 删除尺寸
func (r *GormPizzaSizeRepository) Delete(id uint) error {
	return r.db.Delete(&models.PizzaSize{}, id).Error
}

// CountOpenCartReferences 统计活跃购物车中对该尺寸的引用
func (r *GormPizzaSizeRepository) CountOpenCartReferences(sizeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).Where("size_id = ?", sizeID).Count(&count).Error
	return count, err
}

// CountOrderReferences 统计历史订单项中对该尺寸的引用
func (r *GormPizzaSizeRepository) CountOrderReferences(sizeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("size_id = ?", sizeID).Count(&count).Error
	return count, err
}
