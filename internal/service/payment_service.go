package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// PaymentService 支付服务，记录按订单追加，重试产生新记录
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewPaymentService 创建支付服务
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// CreatePaymentInput 创建支付输入
type CreatePaymentInput struct {
	OrderID uint
	Method  string
	Amount  models.Money
}

// Create 为订单创建一条支付记录。
// 金额默认取订单应付总额，终态订单不再受理。
func (s *PaymentService) Create(input CreatePaymentInput) (*models.Payment, error) {
	method := strings.TrimSpace(input.Method)
	switch method {
	case constants.PaymentMethodCard, constants.PaymentMethodPaypal, constants.PaymentMethodCash:
	default:
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled || order.Status == constants.OrderStatusRefunded {
		return nil, ErrOrderStatusInvalid
	}

	amount := input.Amount
	if amount.IsZero() {
		amount = order.TotalAmount
	}
	if amount.IsNegative() {
		return nil, ErrPaymentAmountInvalid
	}

	now := time.Now()
	payment := &models.Payment{
		OrderID:       order.ID,
		Method:        method,
		Status:        constants.PaymentStatusPending,
		Amount:        amount,
		TransactionID: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	logger.Infow("payment_created",
		"payment_id", payment.ID,
		"order_id", order.ID,
		"method", method,
		"amount", amount.String(),
	)
	return payment, nil
}

// ListByOrder 获取订单的全部支付记录
func (s *PaymentService) ListByOrder(orderID uint) ([]models.Payment, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	return s.paymentRepo.ListByOrder(orderID)
}

// UpdateStatus 推进支付状态，记录网关回执。
// completed 落支付时间，refunded 落退款时间。
func (s *PaymentService) UpdateStatus(paymentID uint, targetStatus string, gatewayResponse models.JSON) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !isPaymentTransitionAllowed(payment.Status, targetStatus) {
		return nil, ErrPaymentStatusInvalid
	}
	if payment.Status == targetStatus {
		return payment, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch targetStatus {
	case constants.PaymentStatusCompleted:
		updates["paid_at"] = now
	case constants.PaymentStatusRefunded:
		updates["refunded_at"] = now
	}
	if gatewayResponse != nil {
		updates["gateway_response"] = gatewayResponse
	}
	if err := s.paymentRepo.UpdateStatus(payment.ID, targetStatus, updates); err != nil {
		return nil, err
	}
	logger.Infow("payment_status_changed",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"from", payment.Status,
		"to", targetStatus,
	)
	return s.paymentRepo.GetByID(payment.ID)
}
