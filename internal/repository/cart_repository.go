package repository

import (
	"errors"

	"github.com/pizzame/backend/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUserID(userID uint) (*models.Cart, error)
	GetBySessionKey(sessionKey string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Touch(cartID uint) error
	Delete(cartID uint) error
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem, ingredients []models.CartItemIngredient) error
	UpdateItem(item *models.CartItem) error
	ReplaceItemIngredients(itemID uint, rows []models.CartItemIngredient) error
	DeleteItem(cartID, itemID uint) error
	Clear(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUserID 获取用户购物车
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetBySessionKey 获取匿名会话购物车
func (r *GormCartRepository) GetBySessionKey(sessionKey string) (*models.Cart, error) {
	if sessionKey == "" {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Where("session_key = ? AND user_id IS NULL", sessionKey).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Touch 更新购物车活跃时间
func (r *GormCartRepository) Touch(cartID uint) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// Delete 删除购物车及其所有项
func (r *GormCartRepository) Delete(cartID uint) error {
	if err := r.Clear(cartID); err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, cartID).Error
}

func (r *GormCartRepository) withItemDetail(query *gorm.DB) *gorm.DB {
	return query.Preload("Pizza").
		Preload("Size").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

// ListItems 获取购物车项列表
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.withItemDetail(r.db).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 获取购物车项
func (r *GormCartRepository) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.withItemDetail(r.db).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项及配料定制
func (r *GormCartRepository) CreateItem(item *models.CartItem, ingredients []models.CartItemIngredient) error {
	if err := r.db.Create(item).Error; err != nil {
		return err
	}
	for i := range ingredients {
		ingredients[i].CartItemID = item.ID
	}
	if len(ingredients) > 0 {
		if err := r.db.Create(&ingredients).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateItem 更新购物车项
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// ReplaceItemIngredients 重设购物车项的配料定制
func (r *GormCartRepository) ReplaceItemIngredients(itemID uint, rows []models.CartItemIngredient) error {
	if err := r.db.Where("cart_item_id = ?", itemID).Delete(&models.CartItemIngredient{}).Error; err != nil {
		return err
	}
	for i := range rows {
		rows[i].CartItemID = itemID
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// DeleteItem 删除购物车项及配料定制
func (r *GormCartRepository) DeleteItem(cartID, itemID uint) error {
	var item models.CartItem
	err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := r.db.Where("cart_item_id = ?", item.ID).Delete(&models.CartItemIngredient{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&item).Error
}

// Clear 清空购物车
func (r *GormCartRepository) Clear(cartID uint) error {
	var itemIDs []uint
	if err := r.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := r.db.Where("cart_item_id IN ?", itemIDs).Delete(&models.CartItemIngredient{}).Error; err != nil {
			return err
		}
	}
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
