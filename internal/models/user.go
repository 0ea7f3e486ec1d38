package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`                        // 主键
	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`  // 邮箱（登录名）
	PasswordHash string `gorm:"size:128;not null" json:"-"`                  // 密码哈希
	FirstName    string `gorm:"size:100" json:"first_name"`                  // 名
	LastName     string `gorm:"size:100" json:"last_name"`                   // 姓
	Phone        string `gorm:"size:32" json:"phone"`                        // 电话

	DateOfBirth      *time.Time `json:"date_of_birth"`                               // 出生日期
	MarketingConsent bool       `gorm:"default:false" json:"marketing_consent"`      // 营销订阅
	IsStaff          bool       `gorm:"default:false" json:"is_staff"`               // 是否后台用户
	Status           string     `gorm:"size:16;not null;default:active" json:"status"` // 账号状态

	LastLoginAt *time.Time `json:"last_login_at"` // 最后登录时间

	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"` // 收货地址
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 拼接姓名
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
