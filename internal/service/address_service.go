package service

import (
	"strings"
	"time"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput 地址写入输入
type AddressInput struct {
	Label      string
	Street     string
	City       string
	PostalCode string
	Floor      string
	Notes      string
	IsDefault  bool
}

// Default 查询用户默认地址，未设置时返回 nil
func (s *AddressService) Default(userID uint) (*models.Address, error) {
	if userID == 0 {
		return nil, nil
	}
	addresses, err := s.addressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i], nil
		}
	}
	return nil, nil
}

// List 获取用户地址列表
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	return s.addressRepo.ListByUser(userID)
}

// Create 创建地址，同一用户下标签唯一，设默认时先取消旧默认
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	label := strings.TrimSpace(input.Label)
	if label == "" || strings.TrimSpace(input.Street) == "" ||
		strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.PostalCode) == "" {
		return nil, ErrInvalidInput
	}

	if input.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	address := &models.Address{
		UserID:     userID,
		Label:      label,
		Street:     strings.TrimSpace(input.Street),
		City:       strings.TrimSpace(input.City),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Floor:      strings.TrimSpace(input.Floor),
		Notes:      input.Notes,
		IsDefault:  input.IsDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.addressRepo.Create(address); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAddressLabelTaken
		}
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	if label := strings.TrimSpace(input.Label); label != "" {
		address.Label = label
	}
	if street := strings.TrimSpace(input.Street); street != "" {
		address.Street = street
	}
	if city := strings.TrimSpace(input.City); city != "" {
		address.City = city
	}
	if code := strings.TrimSpace(input.PostalCode); code != "" {
		address.PostalCode = code
	}
	address.Floor = strings.TrimSpace(input.Floor)
	address.Notes = input.Notes
	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	address.IsDefault = input.IsDefault
	address.UpdatedAt = time.Now()

	if err := s.addressRepo.Update(address); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAddressLabelTaken
		}
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(userID, addressID uint) error {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(addressID, userID)
}
