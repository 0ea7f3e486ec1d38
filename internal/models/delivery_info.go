package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryInfo 配送信息表，与订单一对一
type DeliveryInfo struct {
	ID      uint `gorm:"primarykey" json:"id"`                 // 主键
	OrderID uint `gorm:"not null;uniqueIndex" json:"order_id"` // 订单ID

	Status string `gorm:"size:32;not null;default:assigned;index" json:"status"` // 配送状态

	DriverName  string `gorm:"size:100" json:"driver_name"`  // 骑手姓名
	DriverPhone string `gorm:"size:32" json:"driver_phone"`  // 骑手电话

	CurrentLatitude  *decimal.Decimal `gorm:"type:decimal(9,6)" json:"current_latitude"`  // 当前纬度
	CurrentLongitude *decimal.Decimal `gorm:"type:decimal(9,6)" json:"current_longitude"` // 当前经度

	PickedUpAt  *time.Time `json:"picked_up_at"`  // 取餐时间
	DeliveredAt *time.Time `json:"delivered_at"`  // 送达时间

	CustomerRating *int   `json:"customer_rating"`                     // 顾客评分 1-5
	DeliveryNotes  string `gorm:"type:text" json:"delivery_notes"`     // 配送备注

	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (DeliveryInfo) TableName() string {
	return "delivery_infos"
}
