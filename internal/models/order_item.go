package models

import (
	"time"
)

// OrderItem 订单项，下单时刻的快照，商品后续变更不影响历史订单
type OrderItem struct {
	ID      uint `gorm:"primarykey" json:"id"`          // 主键
	OrderID uint `gorm:"not null;index" json:"order_id"` // 订单ID

	PizzaID   *uint  `gorm:"index" json:"pizza_id"`               // 披萨ID（身份引用，受删除保护）
	SizeID    *uint  `gorm:"index" json:"size_id"`                // 尺寸ID（身份引用，受删除保护）
	PizzaName string `gorm:"size:200;not null" json:"pizza_name"` // 披萨名称快照
	SizeName  string `gorm:"size:50;not null" json:"size_name"`   // 尺寸名称快照

	Quantity  int   `gorm:"not null" json:"quantity"`                                // 数量
	UnitPrice Money `gorm:"type:decimal(8,2);not null" json:"unit_price"`            // 单价快照（含尺寸系数）
	ExtraCost Money `gorm:"type:decimal(8,2);not null;default:0" json:"extra_cost"`  // 加料费快照（每份）
	LineTotal Money `gorm:"type:decimal(8,2);not null" json:"line_total"`            // 行小计快照

	ExtraIngredients   IngredientSnapshotList `gorm:"type:text" json:"extra_ingredients"`   // 加料快照
	RemovedIngredients IngredientSnapshotList `gorm:"type:text" json:"removed_ingredients"` // 去料快照

	SpecialInstructions string `gorm:"type:text" json:"special_instructions"` // 特殊要求

	PreparationStatus string `gorm:"size:16;not null;default:pending" json:"preparation_status"` // 制作状态

	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
