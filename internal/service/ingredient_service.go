package service

import (
	"time"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// IngredientService 配料服务
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
	allergenRepo   repository.AllergenRepository
}

// NewIngredientService 创建配料服务
func NewIngredientService(ingredientRepo repository.IngredientRepository, allergenRepo repository.AllergenRepository) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		allergenRepo:   allergenRepo,
	}
}

// IngredientInput 配料写入输入
type IngredientInput struct {
	Name          string
	CostPerUnit   models.Money
	PricePerExtra models.Money
	StockQuantity int
	MinimumStock  int
	IsActive      *bool
	AllergenIDs   []uint
}

// List 获取配料列表
func (s *IngredientService) List(onlyActive bool) ([]models.Ingredient, error) {
	return s.ingredientRepo.List(onlyActive)
}

// ListLowStock 获取低库存配料
func (s *IngredientService) ListLowStock() ([]models.Ingredient, error) {
	return s.ingredientRepo.ListLowStock()
}

// GetBySlug 按 slug 获取配料
func (s *IngredientService) GetBySlug(slug string) (*models.Ingredient, error) {
	if slug == "" {
		return nil, ErrIngredientNotFound
	}
	ingredient, err := s.ingredientRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	return ingredient, nil
}

func (s *IngredientService) resolveAllergens(ids []uint) ([]models.Allergen, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	allergens, err := s.allergenRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(allergens) != len(ids) {
		return nil, ErrAllergenNotFound
	}
	return allergens, nil
}

// Create 创建配料，slug 由名称生成
func (s *IngredientService) Create(input IngredientInput) (*models.Ingredient, error) {
	if input.Name == "" || input.PricePerExtra.IsNegative() || input.CostPerUnit.IsNegative() {
		return nil, ErrInvalidInput
	}
	allergens, err := s.resolveAllergens(input.AllergenIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ingredient := &models.Ingredient{
		Name:          input.Name,
		CostPerUnit:   input.CostPerUnit,
		PricePerExtra: input.PricePerExtra,
		StockQuantity: input.StockQuantity,
		MinimumStock:  input.MinimumStock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.IsActive != nil {
		ingredient.IsActive = *input.IsActive
	}
	if ingredient.MinimumStock <= 0 {
		ingredient.MinimumStock = 50
	}

	err = createWithUniqueSlug(input.Name,
		func(slug string) { ingredient.Slug = slug },
		func() error { return s.ingredientRepo.Create(ingredient) },
	)
	if err != nil {
		return nil, err
	}
	if len(allergens) > 0 {
		if err := s.ingredientRepo.ReplaceAllergens(ingredient, allergens); err != nil {
			return nil, err
		}
	}
	return ingredient, nil
}

// Update 更新配料，价格变更只影响后续加入购物车的定制
func (s *IngredientService) Update(id uint, input IngredientInput) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	if input.PricePerExtra.IsNegative() || input.CostPerUnit.IsNegative() {
		return nil, ErrInvalidInput
	}

	if input.Name != "" {
		ingredient.Name = input.Name
	}
	ingredient.CostPerUnit = input.CostPerUnit
	ingredient.PricePerExtra = input.PricePerExtra
	ingredient.StockQuantity = input.StockQuantity
	if input.MinimumStock > 0 {
		ingredient.MinimumStock = input.MinimumStock
	}
	if input.IsActive != nil {
		ingredient.IsActive = *input.IsActive
	}
	ingredient.UpdatedAt = time.Now()

	if err := s.ingredientRepo.Update(ingredient); err != nil {
		return nil, err
	}
	if input.AllergenIDs != nil {
		allergens, err := s.resolveAllergens(input.AllergenIDs)
		if err != nil {
			return nil, err
		}
		if err := s.ingredientRepo.ReplaceAllergens(ingredient, allergens); err != nil {
			return nil, err
		}
	}
	return ingredient, nil
}

// Delete 删除配料，被配方或活跃购物车引用时拒绝；
// 历史订单只持有快照，不受删除影响
func (s *IngredientService) Delete(id uint) error {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return ErrIngredientNotFound
	}

	recipeCount, err := s.ingredientRepo.CountPizzaReferences(id)
	if err != nil {
		return err
	}
	cartCount, err := s.ingredientRepo.CountOpenCartReferences(id)
	if err != nil {
		return err
	}
	if recipeCount > 0 || cartCount > 0 {
		return ErrIngredientInUse
	}
	return s.ingredientRepo.Delete(id)
}

// AdjustStock 调整库存，增量可为负
func (s *IngredientService) AdjustStock(id uint, delta int) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	next := ingredient.StockQuantity + delta
	if next < 0 {
		next = 0
	}
	ingredient.StockQuantity = next
	ingredient.UpdatedAt = time.Now()
	if err := s.ingredientRepo.Update(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}
