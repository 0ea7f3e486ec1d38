package repository

import (
	"errors"

	"github.com/pizzame/backend/internal/models"

	"gorm.io/gorm"
)

// AllergenRepository 过敏原数据访问接口
type AllergenRepository interface {
	List() ([]models.Allergen, error)
	GetByID(id uint) (*models.Allergen, error)
	GetByIDs(ids []uint) ([]models.Allergen, error)
	Create(allergen *models.Allergen) error
	Update(allergen *models.Allergen) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormAllergenRepository
}

// GormAllergenRepository GORM 实现
type GormAllergenRepository struct {
	db *gorm.DB
}

// NewAllergenRepository 创建过敏原仓库
func NewAllergenRepository(db *gorm.DB) *GormAllergenRepository {
	return &GormAllergenRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAllergenRepository) WithTx(tx *gorm.DB) *GormAllergenRepository {
	if tx == nil {
		return r
	}
	return &GormAllergenRepository{db: tx}
}

// List 获取过敏原列表
func (r *GormAllergenRepository) List() ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := r.db.Order("name asc").Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}

// GetByID 根据 ID 获取过敏原
func (r *GormAllergenRepository) GetByID(id uint) (*models.Allergen, error) {
	var allergen models.Allergen
	if err := r.db.First(&allergen, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &allergen, nil
}

// GetByIDs 批量获取过敏原
func (r *GormAllergenRepository) GetByIDs(ids []uint) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if len(ids) == 0 {
		return allergens, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}

// Create 创建过敏原
func (r *GormAllergenRepository) Create(allergen *models.Allergen) error {
	return r.db.Create(allergen).Error
}

// Update 更新过敏原
func (r *GormAllergenRepository) Update(allergen *models.Allergen) error {
	return r.db.Save(allergen).Error
}

// Delete 删除过敏原
func (r *GormAllergenRepository) Delete(id uint) error {
	return r.db.Delete(&models.Allergen{}, id).Error
}
