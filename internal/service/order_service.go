package service

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/queue"
	"github.com/pizzame/backend/internal/repository"
)

// OrderService 订单服务：结算快照流水线与状态推进
type OrderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	deliveryRepo repository.DeliveryRepository
	queueClient  *queue.Client

	deliveryFee        models.Money
	taxRate            decimal.Decimal
	autoCancelMinutes  int
	numberMaxGenerates int
}

// OrderServiceOptions 订单服务参数
type OrderServiceOptions struct {
	DeliveryFee        string
	TaxRate            string
	AutoCancelMinutes  int
	NumberMaxGenerates int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, deliveryRepo repository.DeliveryRepository, queueClient *queue.Client, opts OrderServiceOptions) *OrderService {
	fee, err := models.NewMoneyFromString(opts.DeliveryFee)
	if err != nil {
		fee = models.NewMoneyFromDecimal(decimal.Zero)
	}
	rate, err := decimal.NewFromString(opts.TaxRate)
	if err != nil {
		rate = decimal.Zero
	}
	autoCancel := opts.AutoCancelMinutes
	if autoCancel <= 0 {
		autoCancel = 30
	}
	maxGen := opts.NumberMaxGenerates
	if maxGen <= 0 {
		maxGen = 5
	}
	return &OrderService{
		orderRepo:          orderRepo,
		cartRepo:           cartRepo,
		deliveryRepo:       deliveryRepo,
		queueClient:        queueClient,
		deliveryFee:        fee,
		taxRate:            rate,
		autoCancelMinutes:  autoCancel,
		numberMaxGenerates: maxGen,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	Owner                CartOwner
	OrderType            string
	DeliveryAddress      string
	DeliveryInstructions string
	Notes                string
	GuestEmail           string
	GuestPhone           string
}

// generateOrderNumber 生成候选订单号：前缀 + 8 位大写十六进制随机串
func generateOrderNumber() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%s%08X", constants.OrderNumberPrefix, time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s%02X%02X%02X%02X", constants.OrderNumberPrefix, buf[0], buf[1], buf[2], buf[3])
}

// Checkout 结算流水线：校验购物车、冻结价格与定制快照、
// 原子创建订单与订单项。购物车保持不动，支付失败后可重试下单。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	orderType := strings.TrimSpace(input.OrderType)
	if orderType == "" {
		orderType = constants.OrderTypeDelivery
	}
	switch orderType {
	case constants.OrderTypeDelivery, constants.OrderTypePickup, constants.OrderTypeDineIn:
	default:
		return nil, ErrInvalidInput
	}
	if orderType == constants.OrderTypeDelivery && strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, ErrInvalidInput
	}
	isGuest := input.Owner.UserID == 0
	if isGuest && strings.TrimSpace(input.GuestEmail) == "" {
		return nil, ErrInvalidInput
	}

	cart, items, err := s.loadCart(input.Owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	orderItems, subtotal := buildOrderItems(items, now)

	deliveryFee := models.NewMoneyFromDecimal(decimal.Zero)
	if orderType == constants.OrderTypeDelivery {
		deliveryFee = s.deliveryFee
	}
	taxAmount := models.NewMoneyFromDecimal(subtotal.Mul(s.taxRate))
	total := subtotal.Add(deliveryFee.Decimal).Add(taxAmount.Decimal)

	order := &models.Order{
		Status:               constants.OrderStatusPending,
		OrderType:            orderType,
		Subtotal:             models.NewMoneyFromDecimal(subtotal),
		DeliveryFee:          deliveryFee,
		TaxAmount:            taxAmount,
		DiscountAmount:       models.NewMoneyFromDecimal(decimal.Zero),
		TotalAmount:          models.NewMoneyFromDecimal(total),
		DeliveryAddress:      strings.TrimSpace(input.DeliveryAddress),
		DeliveryInstructions: input.DeliveryInstructions,
		Notes:                input.Notes,
		GuestPhone:           strings.TrimSpace(input.GuestPhone),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if isGuest {
		order.GuestEmail = strings.ToLower(strings.TrimSpace(input.GuestEmail))
	} else {
		userID := input.Owner.UserID
		order.UserID = &userID
	}

	// 订单号乐观写入：冲突则换号重试，次数耗尽报错
	var created bool
	for attempt := 0; attempt < s.numberMaxGenerates; attempt++ {
		order.OrderNumber = generateOrderNumber()
		txErr := models.DB.Transaction(func(tx *gorm.DB) error {
			return s.orderRepo.WithTx(tx).Create(order, orderItems)
		})
		if txErr == nil {
			created = true
			break
		}
		if isUniqueViolation(txErr) {
			order.ID = 0
			continue
		}
		logger.Errorw("order_create_failed",
			"cart_id", cart.ID,
			"error", txErr,
		)
		return nil, ErrOrderCreateFailed
	}
	if !created {
		return nil, ErrOrderNumberExhausted
	}

	if err := s.queueClient.EnqueueOrderAutoCancel(queue.OrderAutoCancelPayload{
		OrderID: order.ID,
	}, time.Duration(s.autoCancelMinutes)*time.Minute); err != nil {
		logger.Errorw("order_enqueue_auto_cancel_failed",
			"order_id", order.ID,
			"order_number", order.OrderNumber,
			"error", err,
		)
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"order_type", order.OrderType,
		"total", order.TotalAmount.String(),
	)
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) loadCart(owner CartOwner) (*models.Cart, []models.CartItem, error) {
	var cart *models.Cart
	var err error
	if owner.UserID != 0 {
		cart, err = s.cartRepo.GetByUserID(owner.UserID)
	} else {
		cart, err = s.cartRepo.GetBySessionKey(owner.SessionKey)
	}
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, ErrCartEmpty
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, nil, err
	}
	return cart, items, nil
}

// buildOrderItems 将购物车项冻结为订单项快照。
// 名称、单价、加料明细全部复制值，此后目录任何变更不回写这里。
func buildOrderItems(items []models.CartItem, now time.Time) ([]models.OrderItem, decimal.Decimal) {
	orderItems := make([]models.OrderItem, 0, len(items))
	subtotal := decimal.Zero
	for i := range items {
		item := items[i]
		lineTotal := item.LineTotal()

		extras := make(models.IngredientSnapshotList, 0)
		removed := make(models.IngredientSnapshotList, 0)
		for _, row := range item.Ingredients {
			if row.Ingredient == nil {
				continue
			}
			snap := models.IngredientSnapshot{
				IngredientID:  row.Ingredient.ID,
				Name:          row.Ingredient.Name,
				PricePerExtra: row.Ingredient.PricePerExtra,
			}
			switch row.Kind {
			case constants.CartIngredientExtra:
				extras = append(extras, snap)
			case constants.CartIngredientRemoved:
				removed = append(removed, snap)
			}
		}

		pizzaID := item.PizzaID
		sizeID := item.SizeID
		oi := models.OrderItem{
			PizzaID:             &pizzaID,
			SizeID:              &sizeID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			ExtraCost:           item.ExtraCost,
			LineTotal:           lineTotal,
			ExtraIngredients:    extras,
			RemovedIngredients:  removed,
			SpecialInstructions: item.SpecialInstructions,
			PreparationStatus:   constants.PreparationStatusPending,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if item.Pizza != nil {
			oi.PizzaName = item.Pizza.Name
		}
		if item.Size != nil {
			oi.SizeName = item.Size.Name
		}
		orderItems = append(orderItems, oi)
		subtotal = subtotal.Add(lineTotal.Decimal)
	}
	return orderItems, subtotal
}

// GetByIDAndUser 获取用户订单详情
func (s *OrderService) GetByIDAndUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// TrackByNumber 按订单号查询订单，游客需带下单邮箱核对
func (s *OrderService) TrackByNumber(orderNumber, guestEmail string) (*models.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNumber(strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID == nil {
		email := strings.ToLower(strings.TrimSpace(guestEmail))
		if email == "" || email != order.GuestEmail {
			return nil, ErrOrderNotFound
		}
	}
	return order, nil
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetForAdmin 管理端订单详情
func (s *OrderService) GetForAdmin(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 推进订单状态，非法迁移拒绝。
// confirmed 与 delivered 同步落时间戳，变更后推送状态通知。
func (s *OrderService) UpdateStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.GetForAdmin(orderID)
	if err != nil {
		return nil, err
	}
	if !isOrderTransitionAllowed(order.Status, targetStatus) {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == targetStatus {
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch targetStatus {
	case constants.OrderStatusConfirmed:
		updates["confirmed_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, targetStatus, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}

	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: order.ID,
		Status:  targetStatus,
	}); err != nil {
		logger.Warnw("order_enqueue_status_notify_failed",
			"order_id", order.ID,
			"status", targetStatus,
			"error", err,
		)
	}
	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"from", order.Status,
		"to", targetStatus,
	)
	return s.orderRepo.GetByID(order.ID)
}

// Cancel 用户取消订单，仅 pending/confirmed/preparing 允许
func (s *OrderService) Cancel(orderID, userID uint) (*models.Order, error) {
	order, err := s.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if !isOrderTransitionAllowed(order.Status, constants.OrderStatusCancelled) {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
		"updated_at": time.Now(),
	}); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	logger.Infow("order_cancelled",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"by_user", userID,
	)
	return s.orderRepo.GetByID(order.ID)
}

// CancelExpired 超时取消：仅订单仍处 pending 时生效，其余状态静默跳过
func (s *OrderService) CancelExpired(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return order, nil
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
		"updated_at": time.Now(),
	}); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	logger.Infow("order_auto_cancelled",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
	)
	return s.orderRepo.GetByID(order.ID)
}

// UpdateItemPreparation 推进订单项制作状态
func (s *OrderService) UpdateItemPreparation(orderID, itemID uint, targetStatus string) (*models.OrderItem, error) {
	item, err := s.orderRepo.GetItem(orderID, itemID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if item == nil {
		return nil, ErrOrderItemNotFound
	}
	if !isPreparationTransitionAllowed(item.PreparationStatus, targetStatus) {
		return nil, ErrPrepStatusInvalid
	}
	if err := s.orderRepo.UpdateItemPreparationStatus(orderID, itemID, targetStatus); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	item.PreparationStatus = targetStatus
	return item, nil
}
