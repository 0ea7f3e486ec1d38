package queue

import (
	"encoding/json"

	"github.com/pizzame/backend/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderAutoCancel 待确认订单超时取消任务
	TaskOrderAutoCancel = constants.TaskOrderAutoCancel
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// OrderAutoCancelPayload 超时取消任务载荷
type OrderAutoCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusNotifyPayload 状态通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderAutoCancelTask 创建超时取消任务
func NewOrderAutoCancelTask(payload OrderAutoCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAutoCancel, body), nil
}

// NewOrderStatusNotifyTask 创建状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}
