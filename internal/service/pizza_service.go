package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// PizzaService 披萨商品服务
type PizzaService struct {
	pizzaRepo      repository.PizzaRepository
	categoryRepo   repository.CategoryRepository
	ingredientRepo repository.IngredientRepository
	sizeRepo       repository.PizzaSizeRepository
}

// NewPizzaService 创建披萨服务
func NewPizzaService(pizzaRepo repository.PizzaRepository, categoryRepo repository.CategoryRepository, ingredientRepo repository.IngredientRepository, sizeRepo repository.PizzaSizeRepository) *PizzaService {
	return &PizzaService{
		pizzaRepo:      pizzaRepo,
		categoryRepo:   categoryRepo,
		ingredientRepo: ingredientRepo,
		sizeRepo:       sizeRepo,
	}
}

// PizzaIngredientInput 披萨默认配料输入
type PizzaIngredientInput struct {
	IngredientID uint
	Quantity     decimal.Decimal
	IsRemovable  *bool
}

// PizzaInput 披萨写入输入
type PizzaInput struct {
	Name         string
	Description  string
	CategoryID   uint
	BasePrice    models.Money
	ImageURL     string
	IsActive     *bool
	IsFeatured   *bool
	IsVegetarian *bool
	IsVegan      *bool
	IsSpicy      *bool
	SortOrder    int
	Ingredients  []PizzaIngredientInput
}

// PizzaPriceOption 各尺寸报价
type PizzaPriceOption struct {
	SizeID    uint         `json:"size_id"`
	SizeName  string       `json:"size_name"`
	Price     models.Money `json:"price"`
}

// List 获取披萨列表
func (s *PizzaService) List(filter repository.PizzaListFilter) ([]models.Pizza, int64, error) {
	return s.pizzaRepo.List(filter)
}

// GetBySlug 按 slug 获取披萨
func (s *PizzaService) GetBySlug(slug string) (*models.Pizza, error) {
	if slug == "" {
		return nil, ErrPizzaNotFound
	}
	pizza, err := s.pizzaRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if pizza == nil {
		return nil, ErrPizzaNotFound
	}
	return pizza, nil
}

// PriceOptions 计算披萨在各启用尺寸下的价格
func (s *PizzaService) PriceOptions(pizza *models.Pizza) ([]PizzaPriceOption, error) {
	sizes, err := s.sizeRepo.List(true)
	if err != nil {
		return nil, err
	}
	options := make([]PizzaPriceOption, 0, len(sizes))
	for i := range sizes {
		options = append(options, PizzaPriceOption{
			SizeID:   sizes[i].ID,
			SizeName: sizes[i].Name,
			Price:    pizza.PriceForSize(&sizes[i]),
		})
	}
	return options, nil
}

func (s *PizzaService) buildIngredientRows(inputs []PizzaIngredientInput) ([]models.PizzaIngredient, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if in.IngredientID == 0 || seen[in.IngredientID] {
			return nil, ErrInvalidInput
		}
		seen[in.IngredientID] = true
		ids = append(ids, in.IngredientID)
	}
	found, err := s.ingredientRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, ErrIngredientNotFound
	}

	now := time.Now()
	rows := make([]models.PizzaIngredient, 0, len(inputs))
	for _, in := range inputs {
		row := models.PizzaIngredient{
			IngredientID: in.IngredientID,
			Quantity:     in.Quantity,
			IsRemovable:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if row.Quantity.IsZero() || row.Quantity.IsNegative() {
			row.Quantity = decimal.NewFromInt(1)
		}
		if in.IsRemovable != nil {
			row.IsRemovable = *in.IsRemovable
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Create 创建披萨及默认配料，slug 由名称生成
func (s *PizzaService) Create(input PizzaInput) (*models.Pizza, error) {
	if input.Name == "" || input.CategoryID == 0 || input.BasePrice.IsNegative() || input.BasePrice.IsZero() {
		return nil, ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	rows, err := s.buildIngredientRows(input.Ingredients)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pizza := &models.Pizza{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		BasePrice:   input.BasePrice,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		SortOrder:   input.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyPizzaFlags(pizza, input)

	err = createWithUniqueSlug(input.Name,
		func(slug string) { pizza.Slug = slug },
		func() error { return s.pizzaRepo.Create(pizza) },
	)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := s.pizzaRepo.ReplaceIngredients(pizza.ID, rows); err != nil {
			return nil, err
		}
	}
	return s.pizzaRepo.GetByID(pizza.ID)
}

// Update 更新披萨，价格变更不影响既有购物车项与历史订单
func (s *PizzaService) Update(id uint, input PizzaInput) (*models.Pizza, error) {
	pizza, err := s.pizzaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pizza == nil {
		return nil, ErrPizzaNotFound
	}

	if input.Name != "" {
		pizza.Name = input.Name
	}
	pizza.Description = input.Description
	pizza.ImageURL = input.ImageURL
	pizza.SortOrder = input.SortOrder
	if input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		pizza.CategoryID = input.CategoryID
	}
	if !input.BasePrice.IsZero() && !input.BasePrice.IsNegative() {
		pizza.BasePrice = input.BasePrice
	}
	applyPizzaFlags(pizza, input)
	pizza.UpdatedAt = time.Now()

	if err := s.pizzaRepo.Update(pizza); err != nil {
		return nil, err
	}
	if input.Ingredients != nil {
		rows, err := s.buildIngredientRows(input.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.pizzaRepo.ReplaceIngredients(pizza.ID, rows); err != nil {
			return nil, err
		}
	}
	return s.pizzaRepo.GetByID(pizza.ID)
}

func applyPizzaFlags(pizza *models.Pizza, input PizzaInput) {
	if input.IsActive != nil {
		pizza.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		pizza.IsFeatured = *input.IsFeatured
	}
	if input.IsVegetarian != nil {
		pizza.IsVegetarian = *input.IsVegetarian
	}
	if input.IsVegan != nil {
		pizza.IsVegan = *input.IsVegan
	}
	if input.IsSpicy != nil {
		pizza.IsSpicy = *input.IsSpicy
	}
}

// Delete 删除披萨。被活跃购物车或历史订单引用时拒绝，
// 订单项依赖披萨行保持可引用（快照之外的身份引用）
func (s *PizzaService) Delete(id uint) error {
	pizza, err := s.pizzaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pizza == nil {
		return ErrPizzaNotFound
	}
	cartCount, err := s.pizzaRepo.CountOpenCartReferences(id)
	if err != nil {
		return err
	}
	if cartCount > 0 {
		return ErrPizzaNotAvailable
	}
	orderCount, err := s.pizzaRepo.CountOrderReferences(id)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return ErrPizzaInUse
	}
	if err := s.pizzaRepo.ReplaceIngredients(id, nil); err != nil {
		return err
	}
	return s.pizzaRepo.Delete(id)
}
