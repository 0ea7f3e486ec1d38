package repository

import (
	"errors"

	"github.com/pizzame/backend/internal/models"

	"gorm.io/gorm"
)

// PizzaListFilter 披萨列表查询条件
type PizzaListFilter struct {
	CategoryID   uint
	OnlyActive   bool
	OnlyFeatured bool
	Vegetarian   *bool
	Vegan        *bool
	Keyword      string
	Page         int
	PageSize     int
}

// PizzaRepository 披萨数据访问接口
type PizzaRepository interface {
	List(filter PizzaListFilter) ([]models.Pizza, int64, error)
	GetByID(id uint) (*models.Pizza, error)
	GetBySlug(slug string) (*models.Pizza, error)
	Create(pizza *models.Pizza) error
	Update(pizza *models.Pizza) error
	Delete(id uint) error
	ReplaceIngredients(pizzaID uint, rows []models.PizzaIngredient) error
	CountOpenCartReferences(pizzaID uint) (int64, error)
	CountOrderReferences(pizzaID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormPizzaRepository
}

// GormPizzaRepository GORM 实现
type GormPizzaRepository struct {
	db *gorm.DB
}

// NewPizzaRepository 创建披萨仓库
func NewPizzaRepository(db *gorm.DB) *GormPizzaRepository {
	return &GormPizzaRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPizzaRepository) WithTx(tx *gorm.DB) *GormPizzaRepository {
	if tx == nil {
		return r
	}
	return &GormPizzaRepository{db: tx}
}

func (r *GormPizzaRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.Preload("Category").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Ingredient.Allergens")
}

// List 获取披萨列表
func (r *GormPizzaRepository) List(filter PizzaListFilter) ([]models.Pizza, int64, error) {
	var pizzas []models.Pizza
	query := r.db.Model(&models.Pizza{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Vegetarian != nil {
		query = query.Where("is_vegetarian = ?", *filter.Vegetarian)
	}
	if filter.Vegan != nil {
		query = query.Where("is_vegan = ?", *filter.Vegan)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := r.withDetail(query).Order("sort_order asc, id asc").Find(&pizzas).Error; err != nil {
		return nil, 0, err
	}
	return pizzas, total, nil
}

// GetByID 根据 ID 获取披萨
func (r *GormPizzaRepository) GetByID(id uint) (*models.Pizza, error) {
	var pizza models.Pizza
	if err := r.withDetail(r.db).First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pizza, nil
}

// GetBySlug 根据 slug 获取披萨
func (r *GormPizzaRepository) GetBySlug(slug string) (*models.Pizza, error) {
	var pizza models.Pizza
	if err := r.withDetail(r.db).Where("slug = ?", slug).First(&pizza).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pizza, nil
}

// Create 创建披萨
func (r *GormPizzaRepository) Create(pizza *models.Pizza) error {
	return r.db.Create(pizza).Error
}

// Update 更新披萨
func (r *GormPizzaRepository) Update(pizza *models.Pizza) error {
	return r.db.Save(pizza).Error
}

// Delete 删除披萨
func (r *GormPizzaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Pizza{}, id).Error
}

// ReplaceIngredients 重设披萨的默认配料
func (r *GormPizzaRepository) ReplaceIngredients(pizzaID uint, rows []models.PizzaIngredient) error {
	if err := r.db.Where("pizza_id = ?", pizzaID).Delete(&models.PizzaIngredient{}).Error; err != nil {
		return err
	}
	for i := range rows {
		rows[i].PizzaID = pizzaID
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// CountOpenCartReferences 统计活跃购物车中对该披萨的引用
func (r *GormPizzaRepository) CountOpenCartReferences(pizzaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).Where("pizza_id = ?", pizzaID).Count(&count).Error
	return count, err
}

// CountOrderReferences 统计历史订单项中对该披萨的引用
func (r *GormPizzaRepository) CountOrderReferences(pizzaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("pizza_id = ?", pizzaID).Count(&count).Error
	return count, err
}
