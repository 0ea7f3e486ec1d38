package constants

// 订单状态
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusRefunded       = "refunded"
)

// 订单类型
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
	OrderTypeDineIn   = "dine_in"
)

// 订单项备餐状态
const (
	PreparationStatusPending   = "pending"
	PreparationStatusPreparing = "preparing"
	PreparationStatusReady     = "ready"
)

// 支付状态
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// 支付方式
const (
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
	PaymentMethodCash   = "cash"
)

// 配送状态
const (
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// 购物车配料定制类型
const (
	CartIngredientExtra   = "extra"
	CartIngredientRemoved = "removed"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 订单号前缀（后接 8 位大写十六进制随机串）
const OrderNumberPrefix = "PME-"

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskOrderAutoCancel   = "order:auto_cancel"
	TaskOrderStatusNotify = "order:status_notify"
)
