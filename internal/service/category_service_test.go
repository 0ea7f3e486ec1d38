package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"

	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "category_service_test")
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryServiceCreateSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	first, err := svc.Create(CategoryInput{Name: "Classic Pizzas"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Slug != "classic-pizzas" {
		t.Fatalf("expected slug classic-pizzas, got %q", first.Slug)
	}

	// 名称不同但 slug 相同，冲突后追加数字后缀
	second, err := svc.Create(CategoryInput{Name: " Classic  Pizzas "})
	if err != nil {
		t.Fatalf("create conflicting slug failed: %v", err)
	}
	if second.Slug != "classic-pizzas-1" {
		t.Fatalf("expected slug classic-pizzas-1, got %q", second.Slug)
	}

	if _, err := svc.Create(CategoryInput{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := svc.GetBySlug("classic-pizzas")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected category %d, got %d", first.ID, got.ID)
	}
	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryServiceParentValidation(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	unknown := uint(9999)
	if _, err := svc.Create(CategoryInput{Name: "Orphan", ParentID: &unknown}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for unknown parent, got %v", err)
	}

	parent, err := svc.Create(CategoryInput{Name: "Pizzas"})
	if err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	child, err := svc.Create(CategoryInput{Name: "Vegetarian", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("expected parent %d, got %v", parent.ID, child.ParentID)
	}

	// 不允许把自己设为父分类
	if _, err := svc.Update(parent.ID, CategoryInput{ParentID: &parent.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self parent, got %v", err)
	}
}

func TestCategoryServiceUpdateKeepsSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	category, err := svc.Create(CategoryInput{Name: "Specialty"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(category.ID, CategoryInput{Name: "Signature Range"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Signature Range" {
		t.Fatalf("expected renamed category, got %q", updated.Name)
	}
	if updated.Slug != "specialty" {
		t.Fatalf("expected slug stable after rename, got %q", updated.Slug)
	}
}

func TestCategoryServiceDeleteInUse(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	parent, err := svc.Create(CategoryInput{Name: "Pizzas"})
	if err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Vegan", ParentID: &parent.ID}); err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	if err := svc.Delete(parent.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse for parent with children, got %v", err)
	}

	withPizza, err := svc.Create(CategoryInput{Name: "Seasonal"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	now := time.Now()
	pizza := models.Pizza{Name: "Pumpkin Special", Slug: "pumpkin-special", CategoryID: withPizza.ID, BasePrice: mustMoney(t, "9.00"), IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(&pizza).Error; err != nil {
		t.Fatalf("create pizza failed: %v", err)
	}
	if err := svc.Delete(withPizza.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse for category with pizzas, got %v", err)
	}

	empty, err := svc.Create(CategoryInput{Name: "Deprecated"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if err := svc.Delete(empty.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}
