package service

import (
	"time"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// AllergenService 过敏原服务
type AllergenService struct {
	allergenRepo repository.AllergenRepository
}

// NewAllergenService 创建过敏原服务
func NewAllergenService(allergenRepo repository.AllergenRepository) *AllergenService {
	return &AllergenService{allergenRepo: allergenRepo}
}

// AllergenInput 过敏原写入输入
type AllergenInput struct {
	Name        string
	Symbol      string
	Description string
}

// List 获取过敏原列表
func (s *AllergenService) List() ([]models.Allergen, error) {
	return s.allergenRepo.List()
}

// Create 创建过敏原
func (s *AllergenService) Create(input AllergenInput) (*models.Allergen, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	now := time.Now()
	allergen := &models.Allergen{
		Name:        input.Name,
		Symbol:      input.Symbol,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.allergenRepo.Create(allergen); err != nil {
		return nil, err
	}
	return allergen, nil
}

// Update 更新过敏原
func (s *AllergenService) Update(id uint, input AllergenInput) (*models.Allergen, error) {
	allergen, err := s.allergenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if allergen == nil {
		return nil, ErrAllergenNotFound
	}
	if input.Name != "" {
		allergen.Name = input.Name
	}
	allergen.Symbol = input.Symbol
	allergen.Description = input.Description
	allergen.UpdatedAt = time.Now()
	if err := s.allergenRepo.Update(allergen); err != nil {
		return nil, err
	}
	return allergen, nil
}

// Delete 删除过敏原
func (s *AllergenService) Delete(id uint) error {
	allergen, err := s.allergenRepo.GetByID(id)
	if err != nil {
		return err
	}
	if allergen == nil {
		return ErrAllergenNotFound
	}
	return s.allergenRepo.Delete(id)
}
