package models

import (
	"time"
)

// Cart 购物车表，登录用户与匿名会话二选一
type Cart struct {
	ID         uint      `gorm:"primarykey" json:"id"`                     // 主键
	UserID     *uint     `gorm:"uniqueIndex" json:"user_id"`               // 用户ID（登录购物车，每用户唯一）
	SessionKey string    `gorm:"size:64;index" json:"session_key"`         // 匿名会话标识
	CreatedAt  time.Time `json:"created_at"`                               // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                  // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项
type CartItem struct {
	ID                  uint      `gorm:"primarykey" json:"id"`                                    // 主键
	CartID              uint      `gorm:"not null;index" json:"cart_id"`                           // 购物车ID
	PizzaID             uint      `gorm:"not null" json:"pizza_id"`                                // 披萨ID
	SizeID              uint      `gorm:"not null" json:"size_id"`                                 // 尺寸ID
	Quantity            int       `gorm:"not null;default:1" json:"quantity"`                      // 数量
	UnitPrice           Money     `gorm:"type:decimal(8,2);not null" json:"unit_price"`            // 加入时的单价（含尺寸系数）
	ExtraCost           Money     `gorm:"type:decimal(8,2);not null;default:0" json:"extra_cost"`  // 加入时的加料费合计（每份）
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`                   // 特殊要求
	CreatedAt           time.Time `json:"created_at"`                                              // 创建时间
	UpdatedAt           time.Time `json:"updated_at"`                                              // 更新时间

	Pizza       *Pizza               `gorm:"foreignKey:PizzaID" json:"pizza,omitempty"`           // 披萨
	Size        *PizzaSize           `gorm:"foreignKey:SizeID" json:"size,omitempty"`             // 尺寸
	Ingredients []CartItemIngredient `gorm:"foreignKey:CartItemID" json:"ingredients,omitempty"`  // 定制配料
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal 行小计：(单价 + 加料费) * 数量
func (ci *CartItem) LineTotal() Money {
	per := ci.UnitPrice.Add(ci.ExtraCost)
	return Money{Decimal: per.Mul(intToDecimal(ci.Quantity)).Round(2)}
}

// CartItemIngredient 购物车项配料定制，kind 区分加料与去料，
// (cart_item_id, ingredient_id) 唯一约束保证同一配料不会既加又去
type CartItemIngredient struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                // 主键
	CartItemID   uint      `gorm:"not null;uniqueIndex:uk_cart_item_ingredient" json:"cart_item_id"`    // 购物车项ID
	IngredientID uint      `gorm:"not null;uniqueIndex:uk_cart_item_ingredient" json:"ingredient_id"`   // 配料ID
	Kind         string    `gorm:"size:16;not null" json:"kind"`                                        // extra / removed
	CreatedAt    time.Time `json:"created_at"`                                                          // 创建时间

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"` // 配料
}

// TableName 指定表名
func (CartItemIngredient) TableName() string {
	return "cart_item_ingredients"
}
