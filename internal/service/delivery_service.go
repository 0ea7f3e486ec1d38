package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
)

// DeliveryService 配送服务，每单至多一条配送信息
type DeliveryService struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
}

// NewDeliveryService 创建配送服务
func NewDeliveryService(deliveryRepo repository.DeliveryRepository, orderRepo repository.OrderRepository) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
	}
}

// AssignDriverInput 指派骑手输入
type AssignDriverInput struct {
	OrderID     uint
	DriverName  string
	DriverPhone string
	Notes       string
}

// AssignDriver 指派骑手，创建配送信息。
// 只有外送订单进入 ready 及之后状态才可指派。
func (s *DeliveryService) AssignDriver(input AssignDriverInput) (*models.DeliveryInfo, error) {
	if input.OrderID == 0 || strings.TrimSpace(input.DriverName) == "" {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.OrderType != constants.OrderTypeDelivery {
		return nil, ErrInvalidInput
	}
	switch order.Status {
	case constants.OrderStatusReady, constants.OrderStatusOutForDelivery:
	default:
		return nil, ErrOrderStatusInvalid
	}

	existing, err := s.deliveryRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDeliveryExists
	}

	now := time.Now()
	info := &models.DeliveryInfo{
		OrderID:       order.ID,
		Status:        constants.DeliveryStatusAssigned,
		DriverName:    strings.TrimSpace(input.DriverName),
		DriverPhone:   strings.TrimSpace(input.DriverPhone),
		DeliveryNotes: input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.deliveryRepo.Create(info); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDeliveryExists
		}
		return nil, err
	}
	logger.Infow("delivery_assigned",
		"order_id", order.ID,
		"driver", info.DriverName,
	)
	return info, nil
}

// GetByOrder 获取订单配送信息
func (s *DeliveryService) GetByOrder(orderID uint) (*models.DeliveryInfo, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	info, err := s.deliveryRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrDeliveryNotFound
	}
	return info, nil
}

// UpdateStatus 推进配送状态。取餐与送达分别落时间戳，
// 配送状态机与订单状态机相互独立，订单侧推进由调用方负责。
func (s *DeliveryService) UpdateStatus(orderID uint, targetStatus string) (*models.DeliveryInfo, error) {
	info, err := s.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !isDeliveryTransitionAllowed(info.Status, targetStatus) {
		return nil, ErrDeliveryStatusInvalid
	}
	if info.Status == targetStatus {
		return info, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch targetStatus {
	case constants.DeliveryStatusInTransit:
		updates["picked_up_at"] = now
	case constants.DeliveryStatusDelivered:
		updates["delivered_at"] = now
	}
	if err := s.deliveryRepo.UpdateStatus(info.ID, targetStatus, updates); err != nil {
		return nil, err
	}
	logger.Infow("delivery_status_changed",
		"order_id", orderID,
		"from", info.Status,
		"to", targetStatus,
	)
	return s.deliveryRepo.GetByOrderID(orderID)
}

// UpdateLocation 更新骑手当前坐标
func (s *DeliveryService) UpdateLocation(orderID uint, latitude, longitude decimal.Decimal) (*models.DeliveryInfo, error) {
	info, err := s.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if info.Status != constants.DeliveryStatusInTransit {
		return nil, ErrDeliveryStatusInvalid
	}
	info.CurrentLatitude = &latitude
	info.CurrentLongitude = &longitude
	info.UpdatedAt = time.Now()
	if err := s.deliveryRepo.Update(info); err != nil {
		return nil, err
	}
	return info, nil
}

// Rate 顾客评分，仅送达后允许，评分 1 到 5
func (s *DeliveryService) Rate(orderID uint, rating int) (*models.DeliveryInfo, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	info, err := s.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if info.Status != constants.DeliveryStatusDelivered {
		return nil, ErrDeliveryStatusInvalid
	}
	info.CustomerRating = &rating
	info.UpdatedAt = time.Now()
	if err := s.deliveryRepo.Update(info); err != nil {
		return nil, err
	}
	return info, nil
}
