package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 菜单分类表（支持父子层级）
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`     // 名称
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`     // 唯一标识（由名称派生）
	ParentID    *uint          `gorm:"index" json:"parent_id,omitempty"`     // 父分类ID
	Description string         `gorm:"type:text" json:"description"`         // 描述
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`  // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`    // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`     // 父分类
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`   // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
