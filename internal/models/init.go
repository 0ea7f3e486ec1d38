package models

import (
	"strings"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultStaff 初始化默认员工账号
func InitDefaultStaff(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("is_staff = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "staff@pizzame.local"
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if password == "" {
		password = "staff123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Staff",
		IsStaff:      true,
		Status:       constants.UserStatusActive,
	}

	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "staff123" {
		logger.Warnw("default_staff_created_with_default_password", "email", email)
		logger.Warnw("default_staff_password_change_required", "email", email)
	} else {
		logger.Warnw("default_staff_created", "email", email, "password_hidden", true)
	}

	return nil
}
