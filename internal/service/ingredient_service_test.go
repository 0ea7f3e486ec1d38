package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupIngredientServiceTest(t *testing.T) (*IngredientService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "ingredient_service_test")
	return NewIngredientService(
		repository.NewIngredientRepository(db),
		repository.NewAllergenRepository(db),
	), db
}

func createTestAllergen(t *testing.T, db *gorm.DB, name, symbol string) *models.Allergen {
	t.Helper()
	now := time.Now()
	allergen := &models.Allergen{Name: name, Symbol: symbol, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(allergen).Error; err != nil {
		t.Fatalf("create allergen failed: %v", err)
	}
	return allergen
}

func TestIngredientServiceCreate(t *testing.T) {
	svc, db := setupIngredientServiceTest(t)
	milk := createTestAllergen(t, db, "Milk", "M")

	ingredient, err := svc.Create(IngredientInput{
		Name:          "Gorgonzola",
		CostPerUnit:   mustMoney(t, "0.80"),
		PricePerExtra: mustMoney(t, "1.80"),
		StockQuantity: 40,
		MinimumStock:  10,
		AllergenIDs:   []uint{milk.ID},
	})
	if err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	if ingredient.Slug != "gorgonzola" {
		t.Fatalf("expected slug gorgonzola, got %q", ingredient.Slug)
	}

	reloaded, err := svc.GetBySlug("gorgonzola")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if len(reloaded.Allergens) != 1 || reloaded.Allergens[0].Name != "Milk" {
		t.Fatalf("expected milk allergen linked, got %+v", reloaded.Allergens)
	}

	if _, err := svc.Create(IngredientInput{Name: "Mystery", AllergenIDs: []uint{9999}}); !errors.Is(err, ErrAllergenNotFound) {
		t.Fatalf("expected ErrAllergenNotFound, got %v", err)
	}
	if _, err := svc.Create(IngredientInput{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	negative, _ := models.NewMoneyFromString("-1.00")
	if _, err := svc.Create(IngredientInput{Name: "Bad", PricePerExtra: negative}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestIngredientServiceAdjustStock(t *testing.T) {
	svc, _ := setupIngredientServiceTest(t)
	ingredient, err := svc.Create(IngredientInput{Name: "Basil", PricePerExtra: mustMoney(t, "0.50"), StockQuantity: 20, MinimumStock: 5})
	if err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}

	up, err := svc.AdjustStock(ingredient.ID, 30)
	if err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	if up.StockQuantity != 50 {
		t.Fatalf("expected stock 50, got %d", up.StockQuantity)
	}

	// 扣减不会为负
	down, err := svc.AdjustStock(ingredient.ID, -80)
	if err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	if down.StockQuantity != 0 {
		t.Fatalf("expected stock floored at 0, got %d", down.StockQuantity)
	}

	if _, err := svc.AdjustStock(9999, 1); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}

func TestIngredientServiceListLowStock(t *testing.T) {
	svc, _ := setupIngredientServiceTest(t)
	if _, err := svc.Create(IngredientInput{Name: "Pepperoni", PricePerExtra: mustMoney(t, "1.50"), StockQuantity: 100, MinimumStock: 20}); err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	if _, err := svc.Create(IngredientInput{Name: "Anchovies", PricePerExtra: mustMoney(t, "1.50"), StockQuantity: 5, MinimumStock: 20}); err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}

	low, err := svc.ListLowStock()
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Anchovies" {
		t.Fatalf("expected only anchovies below threshold, got %+v", low)
	}
}

func TestIngredientServiceDeleteInUse(t *testing.T) {
	svc, db := setupIngredientServiceTest(t)
	ingredient, err := svc.Create(IngredientInput{Name: "Ham", PricePerExtra: mustMoney(t, "1.50"), StockQuantity: 50, MinimumStock: 10})
	if err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}

	now := time.Now()
	row := models.PizzaIngredient{PizzaID: 1, IngredientID: ingredient.ID, Quantity: decimal.NewFromInt(1), IsRemovable: true, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create recipe ref failed: %v", err)
	}
	if err := svc.Delete(ingredient.ID); !errors.Is(err, ErrIngredientInUse) {
		t.Fatalf("expected ErrIngredientInUse, got %v", err)
	}

	if err := db.Delete(&row).Error; err != nil {
		t.Fatalf("drop recipe ref failed: %v", err)
	}
	if err := svc.Delete(ingredient.ID); err != nil {
		t.Fatalf("delete unused ingredient failed: %v", err)
	}
	if _, err := svc.GetBySlug("ham"); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound after delete, got %v", err)
	}
}
