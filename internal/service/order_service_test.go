package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// openOrderTestDB 结算与取消走 models.DB 事务，测试库同时挂到全局
func openOrderTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Cart{},
		&models.CartItem{},
		&models.Product{},
		&models.ProductVariation{},
		&models.Restaurant{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.Otp{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
	return db
}

func newOrderTestService(db *gorm.DB, cfg *config.Config) *OrderService {
	return NewOrderService(
		cfg,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewOtpRepository(db),
		nil,
	)
}

func seedProductCart(t *testing.T, db *gorm.DB, cfg *config.Config, userID uint, stock, quantity int) *models.Product {
	t.Helper()
	product := models.Product{
		Vertical:    constants.CartTypeProduct,
		Name:        "测试商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.90)),
		StockCount:  stock,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	cartSvc := NewCartService(cfg,
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewDishRepository(db),
		repository.NewRestaurantRepository(db),
	)
	if _, err := cartSvc.AddItem(AddItemInput{
		UserID:    userID,
		CartType:  constants.CartTypeProduct,
		ProductID: product.ID,
		Quantity:  quantity,
	}); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}
	return &product
}

func TestCheckoutSnapshotsCartAndDecrementsStock(t *testing.T) {
	db := openOrderTestDB(t, "order_checkout")
	cfg := &config.Config{}
	cfg.Cart.TaxRate = 0.08
	cfg.Cart.DeliveryFee = 5
	svc := newOrderTestService(db, cfg)

	product := seedProductCart(t, db, cfg, 1, 10, 2)

	order, err := svc.Checkout(CheckoutInput{
		UserID:   1,
		CartType: constants.CartTypeProduct,
		Address:  map[string]interface{}{"street": "幸福路 88 号"},
		Notes:    "  放门口  ",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "UM") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending || order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("unexpected initial status: %s/%s", order.Status, order.PaymentStatus)
	}
	if order.Notes != "放门口" {
		t.Fatalf("expected trimmed notes, got %q", order.Notes)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	if order.Items[0].SnapshotJSON["name"] != "测试商品" {
		t.Fatalf("expected snapshot name, got %v", order.Items[0].SnapshotJSON["name"])
	}

	subtotal := decimal.NewFromFloat(19.90).Mul(decimal.NewFromInt(2))
	tax := subtotal.Mul(decimal.NewFromFloat(0.08)).Round(2)
	total := subtotal.Add(decimal.NewFromInt(5)).Add(tax)
	if !order.TotalAmount.Decimal.Equal(total) {
		t.Fatalf("expected total %s, got %s", total.String(), order.TotalAmount.String())
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockCount != 8 {
		t.Fatalf("expected stock 8 after checkout, got %d", reloaded.StockCount)
	}

	// 结算后购物车删除
	var cartCount int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart deleted after checkout, got %d", cartCount)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := openOrderTestDB(t, "order_empty_cart")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	_, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected cart empty, got: %v", err)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db := openOrderTestDB(t, "order_stock_race")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	product := seedProductCart(t, db, cfg, 1, 5, 3)

	// 加购后库存被其他订单抢走
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("stock_count", 1).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected out of stock, got: %v", err)
	}

	// 事务回滚：订单不应落库
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders after rollback, got %d", orderCount)
	}
}

func TestUpdateStatusRejectsDirectDelivered(t *testing.T) {
	db := openOrderTestDB(t, "order_direct_delivered")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	seedProductCart(t, db, cfg, 1, 10, 1)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected delivered to be rejected, got: %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusOutForDelivery); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected skipped transition to be rejected, got: %v", err)
	}
}

func TestDeliveryOtpFlow(t *testing.T) {
	db := openOrderTestDB(t, "order_delivery_otp")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)
	otpRepo := repository.NewOtpRepository(db)

	seedProductCart(t, db, cfg, 1, 10, 1)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusOutForDelivery,
	} {
		if _, err := svc.UpdateStatus(order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	otp, err := otpRepo.GetLatestForOrder(order.ID)
	if err != nil {
		t.Fatalf("load delivery otp failed: %v", err)
	}
	if otp == nil {
		t.Fatalf("expected delivery otp issued on out_for_delivery")
	}
	if otp.Purpose != constants.OtpPurposeDelivery {
		t.Fatalf("unexpected otp purpose: %s", otp.Purpose)
	}
	if len(otp.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", otp.Code)
	}

	if _, err := svc.ConfirmDelivery(order.ID, "000000x"); !errors.Is(err, ErrOtpInvalid) {
		t.Fatalf("expected invalid code to be rejected, got: %v", err)
	}

	delivered, err := svc.ConfirmDelivery(order.ID, otp.Code)
	if err != nil {
		t.Fatalf("confirm delivery failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}

	// 验证码单次有效
	if _, err := svc.ConfirmDelivery(order.ID, otp.Code); !errors.Is(err, ErrOrderNotDeliverable) {
		t.Fatalf("expected delivered order to reject re-confirm, got: %v", err)
	}
}

func TestConfirmDeliveryRequiresOutForDelivery(t *testing.T) {
	db := openOrderTestDB(t, "order_confirm_guard")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	seedProductCart(t, db, cfg, 1, 10, 1)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.ConfirmDelivery(order.ID, "123456"); !errors.Is(err, ErrOrderNotDeliverable) {
		t.Fatalf("expected not deliverable, got: %v", err)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := openOrderTestDB(t, "order_cancel_stock")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	product := seedProductCart(t, db, cfg, 1, 10, 3)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(1, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockCount != 10 {
		t.Fatalf("expected stock restored to 10, got %d", reloaded.StockCount)
	}
}

func TestCancelPaidOrderMarksRefunded(t *testing.T) {
	db := openOrderTestDB(t, "order_cancel_refund")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	seedProductCart(t, db, cfg, 1, 10, 1)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(1, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", cancelled.PaymentStatus)
	}
}

func TestCancelOrderRejectedAfterDispatch(t *testing.T) {
	db := openOrderTestDB(t, "order_cancel_late")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	seedProductCart(t, db, cfg, 1, 10, 1)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusOutForDelivery,
	} {
		if _, err := svc.UpdateStatus(order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	if _, err := svc.CancelOrder(1, order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected cancel after dispatch to be rejected, got: %v", err)
	}
}

func TestAdminCancelAfterDispatchRestoresStock(t *testing.T) {
	db := openOrderTestDB(t, "order_admin_cancel_late")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	product := seedProductCart(t, db, cfg, 1, 10, 2)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusOutForDelivery,
	} {
		if _, err := svc.UpdateStatus(order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// 配送异常时管理端仍可取消，走回补库存与退款路径
	cancelled, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("admin cancel after dispatch failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}
	if cancelled.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", cancelled.PaymentStatus)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockCount != 10 {
		t.Fatalf("expected stock restored to 10, got %d", reloaded.StockCount)
	}
}

func TestUpdatePaymentStatusTransitions(t *testing.T) {
	db := openOrderTestDB(t, "order_payment")
	cfg := &config.Config{}
	svc := newOrderTestService(db, cfg)

	seedProductCart(t, db, cfg, 1, 10, 1)
	order, err := svc.Checkout(CheckoutInput{UserID: 1, CartType: constants.CartTypeProduct})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusRefunded); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected pending->refunded to be rejected, got: %v", err)
	}
	updated, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", updated.PaymentStatus)
	}
}
