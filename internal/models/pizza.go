package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pizza 披萨商品表
type Pizza struct {
	ID           uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name         string         `gorm:"not null;index" json:"name"`                   // 名称
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`             // 唯一标识串
	Description  string         `gorm:"type:text" json:"description"`                 // 描述
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`            // 分类ID
	BasePrice    Money          `gorm:"type:decimal(6,2);not null" json:"base_price"` // 基础价格（标准尺寸）
	ImageURL     string         `gorm:"size:500" json:"image_url"`                    // 图片地址
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`          // 是否上架
	IsFeatured   bool           `gorm:"default:false" json:"is_featured"`             // 是否推荐
	IsVegetarian bool           `gorm:"default:false" json:"is_vegetarian"`           // 是否素食
	IsVegan      bool           `gorm:"default:false" json:"is_vegan"`                // 是否纯素
	IsSpicy      bool           `gorm:"default:false" json:"is_spicy"`                // 是否辣味
	SortOrder    int            `gorm:"default:0" json:"sort_order"`                  // 排序权重
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	Category    *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`  // 所属分类
	Ingredients []PizzaIngredient `gorm:"foreignKey:PizzaID" json:"ingredients,omitempty"`  // 默认配料
}

// TableName 指定表名
func (Pizza) TableName() string {
	return "pizzas"
}

// PriceForSize 按尺寸计算价格：base_price * multiplier，四舍五入到分
func (p *Pizza) PriceForSize(size *PizzaSize) Money {
	if size == nil {
		return p.BasePrice
	}
	return Money{Decimal: p.BasePrice.Mul(size.PriceMultiplier).Round(2)}
}

// PizzaIngredient 披萨默认配料关联表
type PizzaIngredient struct {
	ID           uint            `gorm:"primarykey" json:"id"`                                               // 主键
	PizzaID      uint            `gorm:"not null;uniqueIndex:uk_pizza_ingredient" json:"pizza_id"`           // 披萨ID
	IngredientID uint            `gorm:"not null;uniqueIndex:uk_pizza_ingredient" json:"ingredient_id"`      // 配料ID
	Quantity     decimal.Decimal `gorm:"type:decimal(6,2);not null;default:1" json:"quantity"`               // 用量
	IsRemovable  bool            `gorm:"default:true" json:"is_removable"`                                   // 顾客是否可去除
	CreatedAt    time.Time       `json:"created_at"`                                                         // 创建时间
	UpdatedAt    time.Time       `json:"updated_at"`                                                         // 更新时间

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"` // 配料
}

// TableName 指定表名
func (PizzaIngredient) TableName() string {
	return "pizza_ingredients"
}
