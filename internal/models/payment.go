package models

import (
	"time"
)

// Payment 支付记录表
type Payment struct {
	ID      uint `gorm:"primarykey" json:"id"`           // 主键
	OrderID uint `gorm:"not null;index" json:"order_id"` // 订单ID

	Method string `gorm:"size:32;not null" json:"method"`                        // 支付方式
	Status string `gorm:"size:32;not null;default:pending;index" json:"status"`  // 支付状态
	Amount Money  `gorm:"type:decimal(8,2);not null" json:"amount"`              // 支付金额

	TransactionID   string `gorm:"size:128;index" json:"transaction_id"` // 网关交易号
	GatewayResponse JSON   `gorm:"type:text" json:"gateway_response"`    // 网关原始响应

	PaidAt     *time.Time `json:"paid_at"`     // 支付成功时间
	RefundedAt *time.Time `json:"refunded_at"` // 退款时间

	CreatedAt time.Time `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"`              // 更新时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
