package models

import (
	"time"

	"gorm.io/gorm"
)

// Ingredient 配料表
type Ingredient struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Name          string         `gorm:"uniqueIndex;not null" json:"name"`                           // 名称
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识（由名称派生）
	CostPerUnit   Money          `gorm:"type:decimal(6,2);not null;default:0" json:"cost_per_unit"`  // 单位成本
	PricePerExtra Money          `gorm:"type:decimal(6,2);not null;default:0" json:"price_per_extra"` // 加料售价
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                   // 库存数量
	MinimumStock  int            `gorm:"not null;default:50" json:"minimum_stock"`                   // 最低库存
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                        // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Allergens []Allergen `gorm:"many2many:ingredient_allergens" json:"allergens,omitempty"` // 过敏原
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}

// IsLowStock 库存是否低于预警线
func (i Ingredient) IsLowStock() bool {
	return i.StockQuantity <= i.MinimumStock
}
