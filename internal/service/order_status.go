package service

import (
	"github.com/pizzame/backend/internal/constants"
)

// 订单状态机：单向推进，pending/confirmed/preparing 可取消，
// delivered 可退款，其余组合一律拒绝
var orderTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPreparing: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusReady:     true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusReady: {
		constants.OrderStatusOutForDelivery: true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusRefunded: true,
	},
}

// 订单项制作状态机
var preparationTransitions = map[string]map[string]bool{
	constants.PreparationStatusPending: {
		constants.PreparationStatusPreparing: true,
	},
	constants.PreparationStatusPreparing: {
		constants.PreparationStatusReady: true,
	},
}

// 支付状态机：支付记录按订单追加，单条记录只能前进
var paymentTransitions = map[string]map[string]bool{
	constants.PaymentStatusPending: {
		constants.PaymentStatusProcessing: true,
		constants.PaymentStatusFailed:     true,
	},
	constants.PaymentStatusProcessing: {
		constants.PaymentStatusCompleted: true,
		constants.PaymentStatusFailed:    true,
	},
	constants.PaymentStatusCompleted: {
		constants.PaymentStatusRefunded: true,
	},
}

// 配送状态机：与订单状态互相独立
var deliveryTransitions = map[string]map[string]bool{
	constants.DeliveryStatusAssigned: {
		constants.DeliveryStatusInTransit: true,
	},
	constants.DeliveryStatusInTransit: {
		constants.DeliveryStatusDelivered: true,
		constants.DeliveryStatusFailed:    true,
	},
}

// transitionAllowed 查表判断状态迁移，原地迁移视为合法（幂等重放）
func transitionAllowed(table map[string]map[string]bool, current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[target]
}

func isOrderTransitionAllowed(current, target string) bool {
	return transitionAllowed(orderTransitions, current, target)
}

func isPreparationTransitionAllowed(current, target string) bool {
	return transitionAllowed(preparationTransitions, current, target)
}

func isPaymentTransitionAllowed(current, target string) bool {
	return transitionAllowed(paymentTransitions, current, target)
}

func isDeliveryTransitionAllowed(current, target string) bool {
	return transitionAllowed(deliveryTransitions, current, target)
}
