package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/provider"
	"github.com/unimart/unimart/internal/queue"
	"github.com/unimart/unimart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Booking{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	container := &provider.Container{
		UserRepo:    repository.NewUserRepository(db),
		OrderRepo:   repository.NewOrderRepository(db),
		BookingRepo: repository.NewBookingRepository(db),
	}
	return NewConsumer(container), db
}

func TestHandleOrderStatusEmailBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte("{not-json"))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleOrderStatusEmailSkipsInvalidOrMissing(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got: %v", err)
	}

	task, err = queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: 404})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got: %v", err)
	}
}

func TestHandleOrderStatusEmailSkipsWithoutEmailService(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	user := models.User{Email: "user@example.com", Phone: "13800138000", PasswordHash: "x", Status: constants.UserStatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := models.Order{
		OrderNo:       "UM3001",
		UserID:        user.ID,
		CartType:      constants.CartTypeProduct,
		Status:        constants.OrderStatusConfirmed,
		PaymentStatus: constants.PaymentStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: order.ID, Status: order.Status})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// EmailService 未配置时任务完成而非重试
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("nil email service should not fail the task, got: %v", err)
	}
}

func TestHandleBookingStatusEmailSkipsMissingBooking(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewBookingStatusEmailTask(queue.BookingStatusEmailPayload{BookingID: 404})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleBookingStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("missing booking should be skipped, got: %v", err)
	}
}

func TestResolveUserReceiver(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	email, locale, err := consumer.resolveUserReceiver(0)
	if err != nil || email != "" || locale != "" {
		t.Fatalf("zero user id should resolve empty, got %q %q %v", email, locale, err)
	}

	user := models.User{Email: " user@example.com ", Phone: "13800138000", PasswordHash: "x", Locale: constants.LocaleZhCN}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	email, locale, err = consumer.resolveUserReceiver(user.ID)
	if err != nil {
		t.Fatalf("resolve receiver failed: %v", err)
	}
	if email != "user@example.com" || locale != constants.LocaleZhCN {
		t.Fatalf("unexpected receiver: %q %q", email, locale)
	}
}
