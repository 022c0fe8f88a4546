package queue

import (
	"encoding/json"

	"github.com/unimart/unimart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskDeliveryOtpEmail 配送确认码邮件任务
	TaskDeliveryOtpEmail = constants.TaskDeliveryOtpEmail
	// TaskBookingStatusEmail 预订状态邮件通知任务
	TaskBookingStatusEmail = constants.TaskBookingStatusEmail
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// DeliveryOtpEmailPayload 配送确认码邮件任务载荷
type DeliveryOtpEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Code    string `json:"code"`
}

// BookingStatusEmailPayload 预订状态邮件任务载荷
type BookingStatusEmailPayload struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewDeliveryOtpEmailTask 创建配送确认码邮件任务
func NewDeliveryOtpEmailTask(payload DeliveryOtpEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeliveryOtpEmail, body), nil
}

// NewBookingStatusEmailTask 创建预订状态邮件任务
func NewBookingStatusEmailTask(payload BookingStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingStatusEmail, body), nil
}
