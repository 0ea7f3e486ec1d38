package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID          uint   `gorm:"primarykey" json:"id"`                          // 主键
	OrderNumber string `gorm:"uniqueIndex;size:32;not null" json:"order_number"` // 订单号 PME-XXXXXXXX
	UserID      *uint  `gorm:"index" json:"user_id"`                          // 用户ID（游客下单为空）
	GuestEmail  string `gorm:"size:254" json:"guest_email"`                   // 游客邮箱
	GuestPhone  string `gorm:"size:32" json:"guest_phone"`                    // 游客电话

	Status    string `gorm:"size:32;not null;default:pending;index" json:"status"` // 订单状态
	OrderType string `gorm:"size:16;not null;default:delivery" json:"order_type"`  // 订单类型 delivery/pickup/dine_in

	Subtotal       Money `gorm:"type:decimal(8,2);not null" json:"subtotal"`                  // 商品小计
	DeliveryFee    Money `gorm:"type:decimal(6,2);not null;default:0" json:"delivery_fee"`    // 配送费
	TaxAmount      Money `gorm:"type:decimal(8,2);not null;default:0" json:"tax_amount"`      // 税额
	DiscountAmount Money `gorm:"type:decimal(8,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money `gorm:"type:decimal(8,2);not null" json:"total_amount"`              // 应付总额

	DeliveryAddress      string `gorm:"type:text" json:"delivery_address"`       // 配送地址
	DeliveryInstructions string `gorm:"type:text" json:"delivery_instructions"`  // 配送备注
	Notes                string `gorm:"type:text" json:"notes"`                  // 订单备注

	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"` // 预计送达时间
	ConfirmedAt           *time.Time `json:"confirmed_at"`            // 确认时间
	DeliveredAt           *time.Time `json:"delivered_at"`            // 送达时间

	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	User     *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`          // 下单用户
	Items    []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`        // 订单项
	Payments []Payment     `gorm:"foreignKey:OrderID" json:"payments,omitempty"`     // 支付记录
	Delivery *DeliveryInfo `gorm:"foreignKey:OrderID" json:"delivery,omitempty"`     // 配送信息
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// IsTerminal 判断订单是否处于终态
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case "cancelled", "refunded":
		return true
	}
	return false
}
