package models

import (
	"strings"
	"time"
)

// Address 收货地址表，同一用户下标签唯一
type Address struct {
	ID     uint   `gorm:"primarykey" json:"id"`                                  // 主键
	UserID uint   `gorm:"not null;uniqueIndex:uk_user_address_label" json:"user_id"` // 用户ID
	Label  string `gorm:"size:50;not null;uniqueIndex:uk_user_address_label" json:"label"` // 标签（家/公司等）

	Street     string `gorm:"size:200;not null" json:"street"`      // 街道
	City       string `gorm:"size:100;not null" json:"city"`        // 城市
	PostalCode string `gorm:"size:20;not null" json:"postal_code"`  // 邮编
	Floor      string `gorm:"size:20" json:"floor"`                 // 楼层
	Notes      string `gorm:"type:text" json:"notes"`               // 备注

	IsDefault bool `gorm:"default:false" json:"is_default"` // 是否默认地址

	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// FormatLine 拼接单行配送地址，用于下单时冻结到订单
func (a *Address) FormatLine() string {
	parts := make([]string, 0, 3)
	if a.Street != "" {
		street := a.Street
		if a.Floor != "" {
			street += " (" + a.Floor + ")"
		}
		parts = append(parts, street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.PostalCode != "" {
		parts = append(parts, a.PostalCode)
	}
	return strings.Join(parts, ", ")
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
