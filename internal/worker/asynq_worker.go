package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/provider"
	"github.com/unimart/unimart/internal/queue"
	"github.com/unimart/unimart/internal/service"

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
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskDeliveryOtpEmail, c.handleDeliveryOtpEmail)
	mux.HandleFunc(queue.TaskBookingStatusEmail, c.handleBookingStatusEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail, locale, err := c.resolveUserReceiver(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo: order.OrderNo,
		Status:  status,
		Amount:  order.TotalAmount,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input, locale); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleDeliveryOtpEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_delivery_otp_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DeliveryOtpEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_delivery_otp_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.Code == "" {
		logger.Debugw("worker_delivery_otp_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_delivery_otp_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_delivery_otp_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail, locale, err := c.resolveUserReceiver(order.UserID)
	if err != nil {
		logger.Warnw("worker_delivery_otp_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("worker_delivery_otp_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_delivery_otp_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if err := c.EmailService.SendOtp(receiverEmail, payload.Code, "delivery", locale); err != nil {
		logger.Warnw("worker_delivery_otp_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleBookingStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_booking_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookingStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.BookingID == 0 {
		logger.Debugw("worker_booking_status_email_skip_invalid_payload", "booking_id", payload.BookingID)
		return nil
	}
	booking, err := c.BookingRepo.GetByID(payload.BookingID)
	if err != nil {
		logger.Warnw("worker_booking_status_email_fetch_booking_failed", "booking_id", payload.BookingID, "error", err)
		return err
	}
	if booking == nil {
		logger.Debugw("worker_booking_status_email_skip_booking_not_found", "booking_id", payload.BookingID)
		return nil
	}
	receiverEmail, locale, err := c.resolveUserReceiver(booking.UserID)
	if err != nil {
		logger.Warnw("worker_booking_status_email_fetch_user_failed", "booking_id", booking.ID, "user_id", booking.UserID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("worker_booking_status_email_skip_empty_receiver", "booking_id", booking.ID, "booking_no", booking.BookingNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_booking_status_email_skip_email_service_nil", "booking_id", booking.ID, "booking_no", booking.BookingNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = booking.Status
	}
	input := service.BookingStatusEmailInput{
		BookingNo: booking.BookingNo,
		Status:    status,
		Amount:    booking.TotalAmount,
	}
	if err := c.EmailService.SendBookingStatusEmail(receiverEmail, input, locale); err != nil {
		logger.Warnw("worker_booking_status_email_send_failed",
			"booking_id", booking.ID,
			"booking_no", booking.BookingNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) resolveUserReceiver(userID uint) (string, string, error) {
	if userID == 0 {
		return "", "", nil
	}
	user, err := c.UserRepo.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", nil
	}
	return strings.TrimSpace(user.Email), strings.TrimSpace(user.Locale), nil
}
