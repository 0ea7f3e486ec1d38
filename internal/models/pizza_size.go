package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PizzaSize 尺寸表
type PizzaSize struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                         // 主键
	Name            string          `gorm:"uniqueIndex;not null" json:"name"`                             // 名称
	DiameterCM      int             `gorm:"not null" json:"diameter_cm"`                                  // 直径（厘米）
	PriceMultiplier decimal.Decimal `gorm:"type:decimal(4,2);not null;default:1" json:"price_multiplier"` // 价格系数
	IsActive        bool            `gorm:"default:true;index" json:"is_active"`                          // 是否启用
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time       `json:"updated_at"`                                                   // 更新时间
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (PizzaSize) TableName() string {
	return "pizza_sizes"
}
