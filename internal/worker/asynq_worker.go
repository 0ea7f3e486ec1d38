package worker

import (
	"context"
	"encoding/json"

	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/provider"
	"github.com/pizzame/backend/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderAutoCancel, c.handleOrderAutoCancel)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

// handleOrderAutoCancel 到期检查 pending 订单并取消
func (c *Consumer) handleOrderAutoCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderAutoCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_auto_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	if _, err := c.OrderService.CancelExpired(payload.OrderID); err != nil {
		logger.Warnw("worker_order_auto_cancel_failed",
			"order_id", payload.OrderID,
			"error", err,
		)
		return err
	}
	return nil
}

// handleOrderStatusNotify 订单状态变更通知。
// 通知通道尚未接入，先落结构化日志保证链路可观测。
func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_failed",
			"order_id", payload.OrderID,
			"error", err,
		)
		return err
	}
	if order == nil {
		return nil
	}
	receiver := order.GuestEmail
	if order.UserID != nil {
		user, err := c.UserRepo.GetByID(*order.UserID)
		if err != nil {
			logger.Warnw("worker_order_status_notify_fetch_user_failed",
				"order_id", order.ID,
				"error", err,
			)
			return err
		}
		if user != nil {
			receiver = user.Email
		}
	}
	logger.Infow("order_status_notify",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"status", payload.Status,
		"receiver", receiver,
	)
	return nil
}
