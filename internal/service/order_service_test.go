package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/queue"
	"github.com/pizzame/backend/internal/repository"

	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "order_service_test")
	cartRepo := repository.NewCartRepository(db)
	cartSvc := NewCartService(
		cartRepo,
		repository.NewPizzaRepository(db),
		repository.NewPizzaSizeRepository(db),
		repository.NewIngredientRepository(db),
	)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		cartRepo,
		repository.NewDeliveryRepository(db),
		queueClient,
		OrderServiceOptions{DeliveryFee: "2.50", TaxRate: "0.10"},
	)
	return orderSvc, cartSvc, db
}

func fillTestCart(t *testing.T, cartSvc *CartService, f *menuFixture, owner CartOwner) {
	t.Helper()
	if _, err := cartSvc.AddItem(owner, CartItemInput{
		PizzaID:            f.margherita.ID,
		SizeID:             f.large.ID,
		Quantity:           2,
		ExtraIngredientIDs: []uint{f.mushroom.ID},
	}); err != nil {
		t.Fatalf("fill cart failed: %v", err)
	}
}

var orderNumberPattern = regexp.MustCompile(`^PME-[0-9A-F]{8}$`)

func TestOrderServiceCheckout(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)
	owner := CartOwner{UserID: 11}
	fillTestCart(t, cartSvc, f, owner)

	order, err := orderSvc.Checkout(CheckoutInput{
		Owner:           owner,
		OrderType:       constants.OrderTypeDelivery,
		DeliveryAddress: "1 Main Street",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !orderNumberPattern.MatchString(order.OrderNumber) {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.UserID == nil || *order.UserID != 11 {
		t.Fatalf("expected order bound to user 11, got %v", order.UserID)
	}
	// (12.00 + 1.50) * 2 = 27.00，配送费 2.50，税率 10%
	if order.Subtotal.String() != "27.00" {
		t.Fatalf("expected subtotal 27.00, got %s", order.Subtotal.String())
	}
	if order.DeliveryFee.String() != "2.50" {
		t.Fatalf("expected delivery fee 2.50, got %s", order.DeliveryFee.String())
	}
	if order.TaxAmount.String() != "2.70" {
		t.Fatalf("expected tax 2.70, got %s", order.TaxAmount.String())
	}
	if order.TotalAmount.String() != "32.20" {
		t.Fatalf("expected total 32.20, got %s", order.TotalAmount.String())
	}

	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.PizzaName != "Margherita" || item.SizeName != "Large" {
		t.Fatalf("unexpected item snapshot: %q %q", item.PizzaName, item.SizeName)
	}
	if item.LineTotal.String() != "27.00" {
		t.Fatalf("expected item line total 27.00, got %s", item.LineTotal.String())
	}
	if len(item.ExtraIngredients) != 1 || item.ExtraIngredients[0].Name != "Mushrooms" {
		t.Fatalf("unexpected extras snapshot: %+v", item.ExtraIngredients)
	}
	if item.PreparationStatus != constants.PreparationStatusPending {
		t.Fatalf("expected preparation pending, got %s", item.PreparationStatus)
	}

	// 支付失败可重试下单，结算不清空购物车
	cart, err := cartSvc.Get(owner)
	if err != nil {
		t.Fatalf("get cart after checkout failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected cart untouched after checkout, got %d items", len(cart.Items))
	}
}

func TestOrderServiceCheckoutPickupSkipsDeliveryFee(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)
	owner := CartOwner{UserID: 12}
	fillTestCart(t, cartSvc, f, owner)

	order, err := orderSvc.Checkout(CheckoutInput{Owner: owner, OrderType: constants.OrderTypePickup})
	if err != nil {
		t.Fatalf("pickup checkout failed: %v", err)
	}
	if order.DeliveryFee.String() != "0.00" {
		t.Fatalf("expected no delivery fee, got %s", order.DeliveryFee.String())
	}
	if order.TotalAmount.String() != "29.70" {
		t.Fatalf("expected total 29.70, got %s", order.TotalAmount.String())
	}
}

func TestOrderServiceCheckoutValidation(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)
	owner := CartOwner{UserID: 13}

	if _, err := orderSvc.Checkout(CheckoutInput{Owner: owner, OrderType: constants.OrderTypePickup}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	fillTestCart(t, cartSvc, f, owner)
	if _, err := orderSvc.Checkout(CheckoutInput{Owner: owner, OrderType: "drone"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for order type, got %v", err)
	}
	if _, err := orderSvc.Checkout(CheckoutInput{Owner: owner, OrderType: constants.OrderTypeDelivery}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing address, got %v", err)
	}

	guest := CartOwner{SessionKey: "guest-checkout-1"}
	fillTestCart(t, cartSvc, f, guest)
	if _, err := orderSvc.Checkout(CheckoutInput{Owner: guest, OrderType: constants.OrderTypePickup}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing guest email, got %v", err)
	}
}

func TestOrderServiceSnapshotImmutable(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	f := createMenuFixture(t, db)
	owner := CartOwner{UserID: 14}
	fillTestCart(t, cartSvc, f, owner)

	order, err := orderSvc.Checkout(CheckoutInput{Owner: owner, OrderType: constants.OrderTypePickup})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 下单后目录调价、改名并删除加料配料，历史订单不受影响
	if err := db.Model(&models.Pizza{}).Where("id = ?", f.margherita.ID).
		Updates(map[string]interface{}{"base_price": "99.00", "name": "Renamed"}).Error; err != nil {
		t.Fatalf("mutate pizza failed: %v", err)
	}
	if err := db.Delete(&models.Ingredient{}, f.mushroom.ID).Error; err != nil {
		t.Fatalf("delete ingredient failed: %v", err)
	}

	reloaded, err := orderSvc.GetForAdmin(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	item := reloaded.Items[0]
	if item.PizzaName != "Margherita" {
		t.Fatalf("expected snapshot name Margherita, got %s", item.PizzaName)
	}
	if item.UnitPrice.String() != "12.00" {
		t.Fatalf("expected snapshot unit 12.00, got %s", item.UnitPrice.String())
	}
	if len(item.ExtraIngredients) != 1 || item.ExtraIngredients[0].Name != "Mushrooms" {
		t.Fatalf("expected extras snapshot intact, got %+v", item.ExtraIngredients)
	}
	if reloaded.TotalAmount.String() != order.TotalAmount.String() {
		t.Fatalf("expected total unchanged, got %s", reloaded.TotalAmount.String())
	}
}

func checkoutTestOrder(t *testing.T, orderSvc *OrderService, cartSvc *CartService, f *menuFixture, owner CartOwner) *models.Order {
	t.Helper()
	fillTestCart(t, cartSvc, f, owner)
	input := CheckoutInput{Owner: owner, OrderType: constants.OrderTypeDelivery, DeliveryAddress: "1 Main Street"}
	if owner.UserID == 0 {
		input.GuestEmail = "guest@example.com"
	}
	order, err := orderSvc.Checkout(input)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}

func advanceOrder(t *testing.T, orderSvc *OrderService, orderID uint, statuses ...string) *models.Order {
	t.Helper()
	var order *models.Order
	var err error
	for _, status := range statuses {
		order, err = orderSvc.UpdateStatus(orderID, status)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", status, err)
		}
	}
	return order
}

func TestOrderServiceStatusTransitions(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)
	order := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{UserID: 15})

	confirmed := advanceOrder(t, orderSvc, order.ID, constants.OrderStatusConfirmed)
	if confirmed.ConfirmedAt == nil {
		t.Fatalf("expected confirmed_at set")
	}

	// 跳级推进拒绝
	if _, err := orderSvc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid on skip, got %v", err)
	}

	delivered := advanceOrder(t, orderSvc, order.ID,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	)
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}

	// 同状态重放幂等
	if _, err := orderSvc.UpdateStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("expected idempotent replay, got %v", err)
	}
	if _, err := orderSvc.UpdateStatus(order.ID, constants.OrderStatusPreparing); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid on rollback, got %v", err)
	}

	refunded := advanceOrder(t, orderSvc, order.ID, constants.OrderStatusRefunded)
	if refunded.Status != constants.OrderStatusRefunded {
		t.Fatalf("expected refunded, got %s", refunded.Status)
	}
}

func TestOrderServiceCancel(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)

	order := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{UserID: 16})
	cancelled, err := orderSvc.Cancel(order.ID, 16)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	if _, err := orderSvc.Cancel(order.ID, 99); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}

	if err := cartSvc.Clear(CartOwner{UserID: 16}); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	delivered := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{UserID: 16})
	advanceOrder(t, orderSvc, delivered.ID,
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	)
	if _, err := orderSvc.Cancel(delivered.ID, 16); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for delivered order, got %v", err)
	}
}

func TestOrderServiceCancelExpired(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)

	pending := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{UserID: 17})
	cancelled, err := orderSvc.CancelExpired(pending.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	confirmed := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{UserID: 17})
	advanceOrder(t, orderSvc, confirmed.ID, constants.OrderStatusConfirmed)
	skipped, err := orderSvc.CancelExpired(confirmed.ID)
	if err != nil {
		t.Fatalf("cancel expired on confirmed failed: %v", err)
	}
	if skipped.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed order untouched, got %s", skipped.Status)
	}
}

func TestOrderServiceTrackByNumber(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)

	order := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{SessionKey: "guest-track-1"})
	if order.GuestEmail != "guest@example.com" {
		t.Fatalf("expected normalized guest email, got %q", order.GuestEmail)
	}

	tracked, err := orderSvc.TrackByNumber(order.OrderNumber, "GUEST@Example.com")
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if tracked.ID != order.ID {
		t.Fatalf("expected order %d, got %d", order.ID, tracked.ID)
	}

	if _, err := orderSvc.TrackByNumber(order.OrderNumber, "other@example.com"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for wrong email, got %v", err)
	}
	if _, err := orderSvc.TrackByNumber(order.OrderNumber, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for missing email, got %v", err)
	}
	if _, err := orderSvc.TrackByNumber("PME-FFFFFFFF", "guest@example.com"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for unknown number, got %v", err)
	}
}

func TestOrderServiceUpdateItemPreparation(t *testing.T) {
	orderSvc, cartSvc, _ := setupOrderServiceTest(t)
	f := createMenuFixture(t, models.DB)
	order := checkoutTestOrder(t, orderSvc, cartSvc, f, CartOwner{UserID: 18})
	itemID := order.Items[0].ID

	item, err := orderSvc.UpdateItemPreparation(order.ID, itemID, constants.PreparationStatusPreparing)
	if err != nil {
		t.Fatalf("advance preparation failed: %v", err)
	}
	if item.PreparationStatus != constants.PreparationStatusPreparing {
		t.Fatalf("expected preparing, got %s", item.PreparationStatus)
	}
	if _, err := orderSvc.UpdateItemPreparation(order.ID, itemID, constants.PreparationStatusReady); err != nil {
		t.Fatalf("advance to ready failed: %v", err)
	}
	if _, err := orderSvc.UpdateItemPreparation(order.ID, itemID, constants.PreparationStatusPreparing); !errors.Is(err, ErrPrepStatusInvalid) {
		t.Fatalf("expected ErrPrepStatusInvalid on rollback, got %v", err)
	}
	if _, err := orderSvc.UpdateItemPreparation(order.ID, 9999, constants.PreparationStatusPreparing); !errors.Is(err, ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}
}
