package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Payment{}, &models.DeliveryInfo{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func seedOrder(t *testing.T, repo *GormOrderRepository, number, status string, userID *uint, guestEmail string, createdAt time.Time) *models.Order {
	t.Helper()
	total, err := models.NewMoneyFromString("20.00")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	order := &models.Order{
		OrderNumber: number,
		UserID:      userID,
		GuestEmail:  guestEmail,
		Status:      status,
		OrderType:   constants.OrderTypeDelivery,
		Subtotal:    total,
		TotalAmount: total,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	items := []models.OrderItem{{
		PizzaName:         "Margherita",
		SizeName:          "Large",
		Quantity:          1,
		UnitPrice:         total,
		LineTotal:         total,
		PreparationStatus: constants.PreparationStatusPending,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	userID := uint(5)
	order := seedOrder(t, repo, "PME-0000000A", constants.OrderStatusPending, &userID, "", time.Now())

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got == nil || len(got.Items) != 1 {
		t.Fatalf("expected order with 1 item, got %+v", got)
	}
	if got.Items[0].OrderID != order.ID {
		t.Fatalf("expected item bound to order %d, got %d", order.ID, got.Items[0].OrderID)
	}

	byNumber, err := repo.GetByOrderNumber("PME-0000000A")
	if err != nil {
		t.Fatalf("get by number failed: %v", err)
	}
	if byNumber == nil || byNumber.ID != order.ID {
		t.Fatalf("expected order %d by number, got %+v", order.ID, byNumber)
	}

	missing, err := repo.GetByOrderNumber("PME-FFFFFFFF")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown number, got %+v", missing)
	}

	other, err := repo.GetByIDAndUser(order.ID, 99)
	if err != nil {
		t.Fatalf("get by id and user failed: %v", err)
	}
	if other != nil {
		t.Fatalf("expected nil for foreign user, got %+v", other)
	}
}

func TestOrderRepositoryListAdminFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	userID := uint(7)
	old := time.Now().Add(-48 * time.Hour)
	seedOrder(t, repo, "PME-00000001", constants.OrderStatusPending, &userID, "", old)
	seedOrder(t, repo, "PME-00000002", constants.OrderStatusDelivered, &userID, "", time.Now())
	seedOrder(t, repo, "PME-00000003", constants.OrderStatusPending, nil, "guest@example.com", time.Now())

	orders, total, err := repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusPending, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 pending orders, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{GuestEmail: "guest@example.com", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by guest email failed: %v", err)
	}
	if total != 1 || orders[0].OrderNumber != "PME-00000003" {
		t.Fatalf("expected guest order, got total=%d %+v", total, orders)
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	_, total, err = repo.ListAdmin(OrderListFilter{CreatedFrom: &cutoff, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by created_from failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 recent orders, got %d", total)
	}

	_, total, err = repo.ListAdmin(OrderListFilter{OrderNumber: "PME-00000002", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by number failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected exact number match, got %d", total)
	}
}

func TestOrderRepositoryItemPreparation(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	userID := uint(3)
	order := seedOrder(t, repo, "PME-0000000B", constants.OrderStatusPreparing, &userID, "", time.Now())

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	itemID := loaded.Items[0].ID

	if err := repo.UpdateItemPreparationStatus(order.ID, itemID, constants.PreparationStatusPreparing); err != nil {
		t.Fatalf("update preparation failed: %v", err)
	}
	item, err := repo.GetItem(order.ID, itemID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if item.PreparationStatus != constants.PreparationStatusPreparing {
		t.Fatalf("expected preparing, got %s", item.PreparationStatus)
	}

	// 订单不匹配时不可见
	ghost, err := repo.GetItem(order.ID+1, itemID)
	if err != nil {
		t.Fatalf("get item wrong order failed: %v", err)
	}
	if ghost != nil {
		t.Fatalf("expected nil for wrong order scope, got %+v", ghost)
	}
}
