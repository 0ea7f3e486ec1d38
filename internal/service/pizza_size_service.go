package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// PizzaSizeService 尺寸服务
type PizzaSizeService struct {
	sizeRepo repository.PizzaSizeRepository
}

// NewPizzaSizeService 创建尺寸服务
func NewPizzaSizeService(sizeRepo repository.PizzaSizeRepository) *PizzaSizeService {
	return &PizzaSizeService{sizeRepo: sizeRepo}
}

// PizzaSizeInput 尺寸写入输入
type PizzaSizeInput struct {
	Name            string
	DiameterCM      int
	PriceMultiplier decimal.Decimal
	IsActive        *bool
}

// List 获取尺寸列表
func (s *PizzaSizeService) List(onlyActive bool) ([]models.PizzaSize, error) {
	return s.sizeRepo.List(onlyActive)
}

// Create 创建尺寸
func (s *PizzaSizeService) Create(input PizzaSizeInput) (*models.PizzaSize, error) {
	if input.Name == "" || input.DiameterCM <= 0 || !input.PriceMultiplier.IsPositive() {
		return nil, ErrInvalidInput
	}
	now := time.Now()
	size := &models.PizzaSize{
		Name:            input.Name,
		DiameterCM:      input.DiameterCM,
		PriceMultiplier: input.PriceMultiplier,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.IsActive != nil {
		size.IsActive = *input.IsActive
	}
	if err := s.sizeRepo.Create(size); err != nil {
		return nil, err
	}
	return size, nil
}

// Update 更新尺寸，系数变更只影响后续加入购物车的项
func (s *PizzaSizeService) Update(id uint, input PizzaSizeInput) (*models.PizzaSize, error) {
	size, err := s.sizeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrSizeNotFound
	}
	if input.Name != "" {
		size.Name = input.Name
	}
	if input.DiameterCM > 0 {
		size.DiameterCM = input.DiameterCM
	}
	if input.PriceMultiplier.IsPositive() {
		size.PriceMultiplier = input.PriceMultiplier
	}
	if input.IsActive != nil {
		size.IsActive = *input.IsActive
	}
	size.UpdatedAt = time.Now()
	if err := s.sizeRepo.Update(size); err != nil {
		return nil, err
	}
	return size, nil
}

// Delete 删除尺寸，被活跃购物车或历史订单引用时拒绝
func (s *PizzaSizeService) Delete(id uint) error {
	size, err := s.sizeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if size == nil {
		return ErrSizeNotFound
	}
	cartCount, err := s.sizeRepo.CountOpenCartReferences(id)
	if err != nil {
		return err
	}
	orderCount, err := s.sizeRepo.CountOrderReferences(id)
	if err != nil {
		return err
	}
	if cartCount > 0 || orderCount > 0 {
		return ErrSizeInUse
	}
	return s.sizeRepo.Delete(id)
}
