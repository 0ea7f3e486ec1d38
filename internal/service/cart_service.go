package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pizzame/backend/internal/cache"
	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// CartOwner 购物车归属：登录用户或匿名会话，二选一
type CartOwner struct {
	UserID     uint
	SessionKey string
}

// CartItemInput 购物车项写入输入
type CartItemInput struct {
	PizzaID              uint
	SizeID               uint
	Quantity             int
	ExtraIngredientIDs   []uint
	RemovedIngredientIDs []uint
	SpecialInstructions  string
}

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID                  uint                `json:"id"`
	PizzaID             uint                `json:"pizza_id"`
	PizzaName           string              `json:"pizza_name"`
	SizeID              uint                `json:"size_id"`
	SizeName            string              `json:"size_name"`
	Quantity            int                 `json:"quantity"`
	UnitPrice           models.Money        `json:"unit_price"`
	ExtraCost           models.Money        `json:"extra_cost"`
	LineTotal           models.Money        `json:"line_total"`
	ExtraIngredients    []models.Ingredient `json:"extra_ingredients"`
	RemovedIngredients  []models.Ingredient `json:"removed_ingredients"`
	SpecialInstructions string              `json:"special_instructions"`
}

// CartDetail 购物车聚合详情
type CartDetail struct {
	CartID     uint             `json:"cart_id"`
	SessionKey string           `json:"session_key,omitempty"`
	Items      []CartItemDetail `json:"items"`
	ItemCount  int              `json:"item_count"`
	Subtotal   models.Money     `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo       repository.CartRepository
	pizzaRepo      repository.PizzaRepository
	sizeRepo       repository.PizzaSizeRepository
	ingredientRepo repository.IngredientRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, pizzaRepo repository.PizzaRepository, sizeRepo repository.PizzaSizeRepository, ingredientRepo repository.IngredientRepository) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		pizzaRepo:      pizzaRepo,
		sizeRepo:       sizeRepo,
		ingredientRepo: ingredientRepo,
	}
}

// resolveCart 查找归属购物车，createIfMissing 时按需创建。
// 用户购物车依赖 user_id 唯一约束保证每人一个，并发创建时冲突方改走查询。
func (s *CartService) resolveCart(owner CartOwner, createIfMissing bool) (*models.Cart, error) {
	if owner.UserID != 0 {
		cart, err := s.cartRepo.GetByUserID(owner.UserID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
		if !createIfMissing {
			return nil, nil
		}
		now := time.Now()
		userID := owner.UserID
		cart = &models.Cart{UserID: &userID, CreatedAt: now, UpdatedAt: now}
		if err := s.cartRepo.Create(cart); err != nil {
			if isUniqueViolation(err) {
				return s.cartRepo.GetByUserID(owner.UserID)
			}
			return nil, err
		}
		return cart, nil
	}

	if owner.SessionKey != "" {
		cart, err := s.cartRepo.GetBySessionKey(owner.SessionKey)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}
	if !createIfMissing {
		return nil, nil
	}
	now := time.Now()
	sessionKey := owner.SessionKey
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}
	cart := &models.Cart{SessionKey: sessionKey, CreatedAt: now, UpdatedAt: now}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// pricedCustomization 校验后的定制与计价结果
type pricedCustomization struct {
	unitPrice models.Money
	extraCost models.Money
	rows      []models.CartItemIngredient
}

// priceItem 校验披萨、尺寸与定制并计价。
// 单价与加料费在此刻按目录现价固化到购物车项。
func (s *CartService) priceItem(input CartItemInput) (*pricedCustomization, error) {
	if input.PizzaID == 0 || input.SizeID == 0 || input.Quantity <= 0 {
		return nil, ErrInvalidInput
	}
	pizza, err := s.pizzaRepo.GetByID(input.PizzaID)
	if err != nil {
		return nil, err
	}
	if pizza == nil || !pizza.IsActive {
		return nil, ErrPizzaNotAvailable
	}
	size, err := s.sizeRepo.GetByID(input.SizeID)
	if err != nil {
		return nil, err
	}
	if size == nil || !size.IsActive {
		return nil, ErrSizeNotAvailable
	}

	removedSet := make(map[uint]bool, len(input.RemovedIngredientIDs))
	for _, id := range input.RemovedIngredientIDs {
		if id == 0 || removedSet[id] {
			return nil, ErrInvalidInput
		}
		removedSet[id] = true
	}
	extraSet := make(map[uint]bool, len(input.ExtraIngredientIDs))
	for _, id := range input.ExtraIngredientIDs {
		if id == 0 || extraSet[id] {
			return nil, ErrInvalidInput
		}
		if removedSet[id] {
			return nil, ErrIngredientOverlap
		}
		extraSet[id] = true
	}

	// 去料必须是配方内可去除的默认配料
	recipe := make(map[uint]*models.PizzaIngredient, len(pizza.Ingredients))
	for i := range pizza.Ingredients {
		recipe[pizza.Ingredients[i].IngredientID] = &pizza.Ingredients[i]
	}
	for id := range removedSet {
		row, ok := recipe[id]
		if !ok || !row.IsRemovable {
			return nil, ErrIngredientNotRemovable
		}
	}

	now := time.Now()
	extraCost := decimal.Zero
	rows := make([]models.CartItemIngredient, 0, len(extraSet)+len(removedSet))
	if len(input.ExtraIngredientIDs) > 0 {
		extras, err := s.ingredientRepo.GetByIDs(input.ExtraIngredientIDs)
		if err != nil {
			return nil, err
		}
		if len(extras) != len(input.ExtraIngredientIDs) {
			return nil, ErrIngredientNotFound
		}
		for _, ing := range extras {
			if !ing.IsActive {
				return nil, ErrIngredientNotFound
			}
			extraCost = extraCost.Add(ing.PricePerExtra.Decimal)
			rows = append(rows, models.CartItemIngredient{
				IngredientID: ing.ID,
				Kind:         constants.CartIngredientExtra,
				CreatedAt:    now,
			})
		}
	}
	for _, id := range input.RemovedIngredientIDs {
		rows = append(rows, models.CartItemIngredient{
			IngredientID: id,
			Kind:         constants.CartIngredientRemoved,
			CreatedAt:    now,
		})
	}

	return &pricedCustomization{
		unitPrice: pizza.PriceForSize(size),
		extraCost: models.NewMoneyFromDecimal(extraCost),
		rows:      rows,
	}, nil
}

// AddItem 添加购物车项，价格按当前目录计算并固化
func (s *CartService) AddItem(owner CartOwner, input CartItemInput) (*CartDetail, error) {
	priced, err := s.priceItem(input)
	if err != nil {
		return nil, err
	}
	cart, err := s.resolveCart(owner, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.CartItem{
		CartID:              cart.ID,
		PizzaID:             input.PizzaID,
		SizeID:              input.SizeID,
		Quantity:            input.Quantity,
		UnitPrice:           priced.unitPrice,
		ExtraCost:           priced.extraCost,
		SpecialInstructions: input.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.cartRepo.CreateItem(item, priced.rows); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(cart.ID); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// UpdateItem 更新购物车项，数量与定制变更后按当前目录重新计价
func (s *CartService) UpdateItem(owner CartOwner, itemID uint, input CartItemInput) (*CartDetail, error) {
	cart, err := s.resolveCart(owner, false)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if input.PizzaID == 0 {
		input.PizzaID = item.PizzaID
	}
	if input.SizeID == 0 {
		input.SizeID = item.SizeID
	}
	priced, err := s.priceItem(input)
	if err != nil {
		return nil, err
	}

	item.PizzaID = input.PizzaID
	item.SizeID = input.SizeID
	item.Quantity = input.Quantity
	item.UnitPrice = priced.unitPrice
	item.ExtraCost = priced.extraCost
	item.SpecialInstructions = input.SpecialInstructions
	item.UpdatedAt = time.Now()
	item.Ingredients = nil
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	if err := s.cartRepo.ReplaceItemIngredients(item.ID, priced.rows); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(cart.ID); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(owner CartOwner, itemID uint) (*CartDetail, error) {
	cart, err := s.resolveCart(owner, false)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(cart.ID); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// Clear 清空购物车
func (s *CartService) Clear(owner CartOwner) error {
	cart, err := s.resolveCart(owner, false)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.Clear(cart.ID)
}

// Get 获取购物车详情，匿名首次访问按需创建
func (s *CartService) Get(owner CartOwner) (*CartDetail, error) {
	cart, err := s.resolveCart(owner, true)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// MergeGuestCart 登录后将匿名购物车并入用户购物车，
// 匿名项整体搬移，价格保持加入时的固化值
func (s *CartService) MergeGuestCart(userID uint, sessionKey string) error {
	if userID == 0 || sessionKey == "" {
		return nil
	}
	guestCart, err := s.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return err
	}
	if guestCart == nil {
		return nil
	}
	userCart, err := s.resolveCart(CartOwner{UserID: userID}, true)
	if err != nil {
		return err
	}

	items, err := s.cartRepo.ListItems(guestCart.ID)
	if err != nil {
		return err
	}
	for i := range items {
		item := items[i]
		rows := make([]models.CartItemIngredient, len(item.Ingredients))
		copy(rows, item.Ingredients)
		for j := range rows {
			rows[j].ID = 0
			rows[j].Ingredient = nil
		}
		moved := &models.CartItem{
			CartID:              userCart.ID,
			PizzaID:             item.PizzaID,
			SizeID:              item.SizeID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			ExtraCost:           item.ExtraCost,
			SpecialInstructions: item.SpecialInstructions,
			CreatedAt:           item.CreatedAt,
			UpdatedAt:           time.Now(),
		}
		if err := s.cartRepo.CreateItem(moved, rows); err != nil {
			return err
		}
	}
	if err := s.cartRepo.Delete(guestCart.ID); err != nil {
		return err
	}
	// 匿名会话键随购物车一并失效
	_ = cache.DropGuestCart(context.Background(), sessionKey)
	return nil
}

// buildDetail 组装购物车详情并即时汇总小计
func (s *CartService) buildDetail(cart *models.Cart) (*CartDetail, error) {
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{
		CartID:     cart.ID,
		SessionKey: cart.SessionKey,
		Items:      make([]CartItemDetail, 0, len(items)),
	}
	subtotal := decimal.Zero
	for i := range items {
		item := items[i]
		d := CartItemDetail{
			ID:                  item.ID,
			PizzaID:             item.PizzaID,
			SizeID:              item.SizeID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			ExtraCost:           item.ExtraCost,
			LineTotal:           item.LineTotal(),
			ExtraIngredients:    make([]models.Ingredient, 0),
			RemovedIngredients:  make([]models.Ingredient, 0),
			SpecialInstructions: item.SpecialInstructions,
		}
		if item.Pizza != nil {
			d.PizzaName = item.Pizza.Name
		}
		if item.Size != nil {
			d.SizeName = item.Size.Name
		}
		for _, row := range item.Ingredients {
			if row.Ingredient == nil {
				continue
			}
			switch row.Kind {
			case constants.CartIngredientExtra:
				d.ExtraIngredients = append(d.ExtraIngredients, *row.Ingredient)
			case constants.CartIngredientRemoved:
				d.RemovedIngredients = append(d.RemovedIngredients, *row.Ingredient)
			}
		}
		detail.ItemCount += item.Quantity
		subtotal = subtotal.Add(d.LineTotal.Decimal)
		detail.Items = append(detail.Items, d)
	}
	detail.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return detail, nil
}
