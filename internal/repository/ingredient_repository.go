package repository

import (
	"errors"

	"github.com/pizzame/backend/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository 配料数据访问接口
type IngredientRepository interface {
	List(onlyActive bool) ([]models.Ingredient, error)
	ListLowStock() ([]models.Ingredient, error)
	GetByID(id uint) (*models.Ingredient, error)
	GetByIDs(ids []uint) ([]models.Ingredient, error)
	GetBySlug(slug string) (*models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	Update(ingredient *models.Ingredient) error
	Delete(id uint) error
	ReplaceAllergens(ingredient *models.Ingredient, allergens []models.Allergen) error
	CountPizzaReferences(ingredientID uint) (int64, error)
	CountOpenCartReferences(ingredientID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormIngredientRepository
}

// GormIngredientRepository GORM 实现
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建配料仓库
func NewIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// WithTx 绑定事务
func (r *GormIngredientRepository) WithTx(tx *gorm.DB) *GormIngredientRepository {
	if tx == nil {
		return r
	}
	return &GormIngredientRepository{db: tx}
}

// List 获取配料列表
func (r *GormIngredientRepository) List(onlyActive bool) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := r.db.Preload("Allergens")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListLowStock 获取库存低于阈值的配料
func (r *GormIngredientRepository) ListLowStock() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Where("stock_quantity <= minimum_stock").Order("stock_quantity asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetByID 根据 ID 获取配料
func (r *GormIngredientRepository) GetByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.Preload("Allergens").First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

// GetByIDs 批量获取配料
func (r *GormIngredientRepository) GetByIDs(ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetBySlug 根据 slug 获取配料
func (r *GormIngredientRepository) GetBySlug(slug string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.Preload("Allergens").Where("slug = ?", slug).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

// Create 创建配料
func (r *GormIngredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

// Update 更新配料
func (r *GormIngredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

// Delete 删除配料
func (r *GormIngredientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ingredient{}, id).Error
}

// ReplaceAllergens 重设配料的过敏原关联
func (r *GormIngredientRepository) ReplaceAllergens(ingredient *models.Ingredient, allergens []models.Allergen) error {
	return r.db.Model(ingredient).Association("Allergens").Replace(allergens)
}

// CountPizzaReferences 统计引用该配料的披萨配方数量
func (r *GormIngredientRepository) CountPizzaReferences(ingredientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PizzaIngredient{}).Where("ingredient_id = ?", ingredientID).Count(&count).Error
	return count, err
}

// CountOpenCartReferences 统计活跃购物车中对该配料的定制引用
func (r *GormIngredientRepository) CountOpenCartReferences(ingredientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartItemIngredient{}).Where("ingredient_id = ?", ingredientID).Count(&count).Error
	return count, err
}
