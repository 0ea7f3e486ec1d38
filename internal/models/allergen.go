package models

import (
	"time"

	"gorm.io/gorm"
)

// Allergen 过敏原表
type Allergen struct {
	ID          uint           `gorm:"primarykey" json:"id"`             // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"` // 名称
	Symbol      string         `gorm:"type:varchar(10)" json:"symbol"`   // 标识符号
	Description string         `gorm:"type:text" json:"description"`     // 描述
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Allergen) TableName() string {
	return "allergens"
}
