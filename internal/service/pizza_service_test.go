package service

import (
	"errors"
	"testing"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPizzaServiceTest(t *testing.T) (*PizzaService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "pizza_service_test")
	return NewPizzaService(
		repository.NewPizzaRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewIngredientRepository(db),
		repository.NewPizzaSizeRepository(db),
	), db
}

func TestPizzaServiceCreateWithRecipe(t *testing.T) {
	svc, db := setupPizzaServiceTest(t)
	f := createMenuFixture(t, db)

	removable := false
	pizza, err := svc.Create(PizzaInput{
		Name:       "Funghi",
		CategoryID: f.category.ID,
		BasePrice:  mustMoney(t, "9.50"),
		Ingredients: []PizzaIngredientInput{
			{IngredientID: f.tomato.ID, IsRemovable: &removable},
			{IngredientID: f.mushroom.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	if err != nil {
		t.Fatalf("create pizza failed: %v", err)
	}
	if pizza.Slug != "funghi" {
		t.Fatalf("expected slug funghi, got %q", pizza.Slug)
	}
	if len(pizza.Ingredients) != 2 {
		t.Fatalf("expected 2 recipe rows, got %d", len(pizza.Ingredients))
	}
	for _, row := range pizza.Ingredients {
		switch row.IngredientID {
		case f.tomato.ID:
			if row.IsRemovable {
				t.Fatalf("expected tomato locked in recipe")
			}
		case f.mushroom.ID:
			if !row.Quantity.Equal(decimal.NewFromInt(2)) {
				t.Fatalf("expected mushroom quantity 2, got %s", row.Quantity)
			}
			if !row.IsRemovable {
				t.Fatalf("expected mushroom removable by default")
			}
		default:
			t.Fatalf("unexpected recipe row %+v", row)
		}
	}
}

func TestPizzaServiceCreateValidation(t *testing.T) {
	svc, db := setupPizzaServiceTest(t)
	f := createMenuFixture(t, db)

	cases := []struct {
		name    string
		input   PizzaInput
		wantErr error
	}{
		{"empty name", PizzaInput{CategoryID: f.category.ID, BasePrice: mustMoney(t, "9.00")}, ErrInvalidInput},
		{"zero price", PizzaInput{Name: "Zero", CategoryID: f.category.ID}, ErrInvalidInput},
		{"unknown category", PizzaInput{Name: "Lost", CategoryID: 9999, BasePrice: mustMoney(t, "9.00")}, ErrCategoryNotFound},
		{"unknown ingredient", PizzaInput{
			Name: "Ghost", CategoryID: f.category.ID, BasePrice: mustMoney(t, "9.00"),
			Ingredients: []PizzaIngredientInput{{IngredientID: 9999}},
		}, ErrIngredientNotFound},
		{"duplicate ingredient", PizzaInput{
			Name: "Twice", CategoryID: f.category.ID, BasePrice: mustMoney(t, "9.00"),
			Ingredients: []PizzaIngredientInput{{IngredientID: f.tomato.ID}, {IngredientID: f.tomato.ID}},
		}, ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestPizzaServiceUpdateReplacesRecipe(t *testing.T) {
	svc, db := setupPizzaServiceTest(t)
	f := createMenuFixture(t, db)

	updated, err := svc.Update(f.margherita.ID, PizzaInput{
		BasePrice:   mustMoney(t, "8.50"),
		Ingredients: []PizzaIngredientInput{{IngredientID: f.mushroom.ID}},
	})
	if err != nil {
		t.Fatalf("update pizza failed: %v", err)
	}
	if updated.BasePrice.String() != "8.50" {
		t.Fatalf("expected base price 8.50, got %s", updated.BasePrice.String())
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].IngredientID != f.mushroom.ID {
		t.Fatalf("expected recipe replaced, got %+v", updated.Ingredients)
	}
	if updated.Slug != "margherita" {
		t.Fatalf("expected slug stable, got %q", updated.Slug)
	}
}

func TestPizzaServicePriceOptions(t *testing.T) {
	svc, db := setupPizzaServiceTest(t)
	f := createMenuFixture(t, db)

	pizza, err := svc.GetBySlug("margherita")
	if err != nil {
		t.Fatalf("get pizza failed: %v", err)
	}
	options, err := svc.PriceOptions(pizza)
	if err != nil {
		t.Fatalf("price options failed: %v", err)
	}
	// 停用尺寸不报价
	if len(options) != 1 {
		t.Fatalf("expected 1 active size option, got %d", len(options))
	}
	if options[0].SizeID != f.large.ID || options[0].Price.String() != "12.00" {
		t.Fatalf("unexpected option: %+v", options[0])
	}
}

func TestPizzaServiceDelete(t *testing.T) {
	svc, db := setupPizzaServiceTest(t)
	f := createMenuFixture(t, db)

	// 活跃购物车引用时拒绝删除
	cart := models.Cart{SessionKey: "pizza-delete-1"}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	item := models.CartItem{CartID: cart.ID, PizzaID: f.margherita.ID, SizeID: f.large.ID, Quantity: 1, UnitPrice: mustMoney(t, "12.00")}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	if err := svc.Delete(f.margherita.ID); !errors.Is(err, ErrPizzaNotAvailable) {
		t.Fatalf("expected ErrPizzaNotAvailable while in carts, got %v", err)
	}

	if err := db.Delete(&item).Error; err != nil {
		t.Fatalf("drop cart item failed: %v", err)
	}

	// 历史订单引用时同样拒绝，快照之外的身份引用需保留
	order := models.Order{OrderNumber: "PME-00000A01", Status: "delivered", OrderType: "pickup"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	orderItem := models.OrderItem{OrderID: order.ID, PizzaID: &f.margherita.ID, SizeID: &f.large.ID, Quantity: 1, UnitPrice: mustMoney(t, "12.00"), PizzaName: "Margherita", SizeName: "Large"}
	if err := db.Create(&orderItem).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	if err := svc.Delete(f.margherita.ID); !errors.Is(err, ErrPizzaInUse) {
		t.Fatalf("expected ErrPizzaInUse while in orders, got %v", err)
	}
	if err := db.Delete(&orderItem).Error; err != nil {
		t.Fatalf("drop order item failed: %v", err)
	}

	if err := svc.Delete(f.margherita.ID); err != nil {
		t.Fatalf("delete pizza failed: %v", err)
	}
	if _, err := svc.GetBySlug("margherita"); !errors.Is(err, ErrPizzaNotFound) {
		t.Fatalf("expected ErrPizzaNotFound after delete, got %v", err)
	}
}
