package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"

	"gorm.io/gorm"
)

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "payment_service_test")
	return NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewOrderRepository(db),
	), db
}

var orderRowSeq int

func createTestOrderRow(t *testing.T, db *gorm.DB, status, orderType, total string) *models.Order {
	t.Helper()
	orderRowSeq++
	now := time.Now()
	amount := mustMoney(t, total)
	order := &models.Order{
		OrderNumber: fmt.Sprintf("PME-%08X", orderRowSeq),
		Status:      status,
		OrderType:   orderType,
		Subtotal:    amount,
		TotalAmount: amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order row failed: %v", err)
	}
	return order
}

func TestPaymentServiceCreate(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := createTestOrderRow(t, db, constants.OrderStatusPending, constants.OrderTypeDelivery, "32.20")

	payment, err := svc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCard})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusPending {
		t.Fatalf("expected pending, got %s", payment.Status)
	}
	// 未指定金额时取订单应付总额
	if payment.Amount.String() != "32.20" {
		t.Fatalf("expected amount 32.20, got %s", payment.Amount.String())
	}
	if payment.TransactionID == "" {
		t.Fatalf("expected transaction id assigned")
	}

	if _, err := svc.Create(CreatePaymentInput{OrderID: order.ID, Method: "bitcoin"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for method, got %v", err)
	}
	if _, err := svc.Create(CreatePaymentInput{OrderID: 9999, Method: constants.PaymentMethodCash}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	cancelled := createTestOrderRow(t, db, constants.OrderStatusCancelled, constants.OrderTypePickup, "10.00")
	if _, err := svc.Create(CreatePaymentInput{OrderID: cancelled.ID, Method: constants.PaymentMethodCash}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for cancelled order, got %v", err)
	}
}

func TestPaymentServiceStatusFlow(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := createTestOrderRow(t, db, constants.OrderStatusPending, constants.OrderTypeDelivery, "20.00")

	payment, err := svc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodPaypal})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	// pending 不可直接 completed
	if _, err := svc.UpdateStatus(payment.ID, constants.PaymentStatusCompleted, nil); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid on skip, got %v", err)
	}

	if _, err := svc.UpdateStatus(payment.ID, constants.PaymentStatusProcessing, nil); err != nil {
		t.Fatalf("advance to processing failed: %v", err)
	}
	completed, err := svc.UpdateStatus(payment.ID, constants.PaymentStatusCompleted, models.JSON{"gateway_ref": "pp-123"})
	if err != nil {
		t.Fatalf("advance to completed failed: %v", err)
	}
	if completed.PaidAt == nil {
		t.Fatalf("expected paid_at set")
	}
	if completed.GatewayResponse["gateway_ref"] != "pp-123" {
		t.Fatalf("expected gateway response stored, got %+v", completed.GatewayResponse)
	}

	if _, err := svc.UpdateStatus(payment.ID, constants.PaymentStatusProcessing, nil); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid on rollback, got %v", err)
	}

	refunded, err := svc.UpdateStatus(payment.ID, constants.PaymentStatusRefunded, nil)
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if refunded.RefundedAt == nil {
		t.Fatalf("expected refunded_at set")
	}
}

func TestPaymentServiceRetryAppendsRecord(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := createTestOrderRow(t, db, constants.OrderStatusPending, constants.OrderTypeDelivery, "15.00")

	first, err := svc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCard})
	if err != nil {
		t.Fatalf("create first payment failed: %v", err)
	}
	if _, err := svc.UpdateStatus(first.ID, constants.PaymentStatusFailed, nil); err != nil {
		t.Fatalf("fail first payment failed: %v", err)
	}

	second, err := svc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCard})
	if err != nil {
		t.Fatalf("create retry payment failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a new payment record on retry")
	}

	payments, err := svc.ListByOrder(order.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payment records, got %d", len(payments))
	}
}
