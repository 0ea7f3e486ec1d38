package service

import (
	"errors"
	"testing"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDeliveryServiceTest(t *testing.T) (*DeliveryService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "delivery_service_test")
	return NewDeliveryService(
		repository.NewDeliveryRepository(db),
		repository.NewOrderRepository(db),
	), db
}

func TestDeliveryServiceAssignDriver(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)
	ready := createTestOrderRow(t, db, constants.OrderStatusReady, constants.OrderTypeDelivery, "25.00")

	info, err := svc.AssignDriver(AssignDriverInput{OrderID: ready.ID, DriverName: "Mario", DriverPhone: "0600000001"})
	if err != nil {
		t.Fatalf("assign driver failed: %v", err)
	}
	if info.Status != constants.DeliveryStatusAssigned {
		t.Fatalf("expected assigned, got %s", info.Status)
	}

	// 每单至多一条配送信息
	if _, err := svc.AssignDriver(AssignDriverInput{OrderID: ready.ID, DriverName: "Luigi"}); !errors.Is(err, ErrDeliveryExists) {
		t.Fatalf("expected ErrDeliveryExists, got %v", err)
	}

	pickup := createTestOrderRow(t, db, constants.OrderStatusReady, constants.OrderTypePickup, "12.00")
	if _, err := svc.AssignDriver(AssignDriverInput{OrderID: pickup.ID, DriverName: "Mario"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pickup order, got %v", err)
	}

	early := createTestOrderRow(t, db, constants.OrderStatusPreparing, constants.OrderTypeDelivery, "18.00")
	if _, err := svc.AssignDriver(AssignDriverInput{OrderID: early.ID, DriverName: "Mario"}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid before ready, got %v", err)
	}

	if _, err := svc.AssignDriver(AssignDriverInput{OrderID: early.ID, DriverName: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank driver, got %v", err)
	}
}

func TestDeliveryServiceStatusFlow(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)
	order := createTestOrderRow(t, db, constants.OrderStatusReady, constants.OrderTypeDelivery, "25.00")
	if _, err := svc.AssignDriver(AssignDriverInput{OrderID: order.ID, DriverName: "Mario"}); err != nil {
		t.Fatalf("assign driver failed: %v", err)
	}

	// assigned 不可直接 delivered
	if _, err := svc.UpdateStatus(order.ID, constants.DeliveryStatusDelivered); !errors.Is(err, ErrDeliveryStatusInvalid) {
		t.Fatalf("expected ErrDeliveryStatusInvalid on skip, got %v", err)
	}

	inTransit, err := svc.UpdateStatus(order.ID, constants.DeliveryStatusInTransit)
	if err != nil {
		t.Fatalf("advance to in_transit failed: %v", err)
	}
	if inTransit.PickedUpAt == nil {
		t.Fatalf("expected picked_up_at set")
	}

	delivered, err := svc.UpdateStatus(order.ID, constants.DeliveryStatusDelivered)
	if err != nil {
		t.Fatalf("advance to delivered failed: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}

	if _, err := svc.UpdateStatus(order.ID, constants.DeliveryStatusInTransit); !errors.Is(err, ErrDeliveryStatusInvalid) {
		t.Fatalf("expected ErrDeliveryStatusInvalid on rollback, got %v", err)
	}
	if _, err := svc.GetByOrder(9999); !errors.Is(err, ErrDeliveryNotFound) {
		t.Fatalf("expected ErrDeliveryNotFound, got %v", err)
	}
}

func TestDeliveryServiceLocationAndRating(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)
	order := createTestOrderRow(t, db, constants.OrderStatusReady, constants.OrderTypeDelivery, "25.00")
	if _, err := svc.AssignDriver(AssignDriverInput{OrderID: order.ID, DriverName: "Mario"}); err != nil {
		t.Fatalf("assign driver failed: %v", err)
	}

	lat := decimal.RequireFromString("48.856613")
	lng := decimal.RequireFromString("2.352222")

	// 仅配送中可上报坐标
	if _, err := svc.UpdateLocation(order.ID, lat, lng); !errors.Is(err, ErrDeliveryStatusInvalid) {
		t.Fatalf("expected ErrDeliveryStatusInvalid before transit, got %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.DeliveryStatusInTransit); err != nil {
		t.Fatalf("advance to in_transit failed: %v", err)
	}
	located, err := svc.UpdateLocation(order.ID, lat, lng)
	if err != nil {
		t.Fatalf("update location failed: %v", err)
	}
	if located.CurrentLatitude == nil || !located.CurrentLatitude.Equal(lat) {
		t.Fatalf("expected latitude stored, got %v", located.CurrentLatitude)
	}

	// 仅送达后可评分
	if _, err := svc.Rate(order.ID, 5); !errors.Is(err, ErrDeliveryStatusInvalid) {
		t.Fatalf("expected ErrDeliveryStatusInvalid before delivered, got %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.DeliveryStatusDelivered); err != nil {
		t.Fatalf("advance to delivered failed: %v", err)
	}
	if _, err := svc.Rate(order.ID, 0); !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("expected ErrRatingOutOfRange for 0, got %v", err)
	}
	if _, err := svc.Rate(order.ID, 6); !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("expected ErrRatingOutOfRange for 6, got %v", err)
	}
	rated, err := svc.Rate(order.ID, 5)
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rated.CustomerRating == nil || *rated.CustomerRating != 5 {
		t.Fatalf("expected rating 5, got %v", rated.CustomerRating)
	}
}
