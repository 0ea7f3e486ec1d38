package service

import (
	"time"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput 分类写入输入
type CategoryInput struct {
	Name        string
	Description string
	ParentID    *uint
	IsActive    *bool
	SortOrder   int
}

// List 获取分类树
func (s *CategoryService) List(onlyActive bool) ([]models.Category, error) {
	return s.categoryRepo.List(onlyActive)
}

// GetBySlug 按 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	if slug == "" {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类，slug 由名称生成，冲突自动追加后缀
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if input.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}

	now := time.Now()
	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    true,
		SortOrder:   input.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	err := createWithUniqueSlug(input.Name,
		func(slug string) { category.Slug = slug },
		func() error { return s.categoryRepo.Create(category) },
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类，名称变更不回写 slug
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	category.Description = input.Description
	category.SortOrder = input.SortOrder
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrInvalidInput
		}
		parent, err := s.categoryRepo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
		category.ParentID = input.ParentID
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，存在披萨或子分类时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	pizzaCount, err := s.categoryRepo.CountPizzas(id)
	if err != nil {
		return err
	}
	childCount, err := s.categoryRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if pizzaCount > 0 || childCount > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}
