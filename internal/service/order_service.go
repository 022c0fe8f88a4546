package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/logger"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/queue"
	"github.com/unimart/unimart/internal/repository"

	"gorm.io/gorm"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID   uint
	CartType string
	Address  map[string]interface{}
	Notes    string
}

// OrderService 订单服务
type OrderService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	otpRepo     repository.OtpRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(cfg *config.Config, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, otpRepo repository.OtpRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		otpRepo:     otpRepo,
		queueClient: queueClient,
	}
}

// Checkout 从购物车下单：快照目录项、扣减库存、删除购物车，整体在一个事务内
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if !isCartTypeSupported(input.CartType) {
		return nil, ErrCartTypeInvalid
	}

	cart, err := s.cartRepo.GetByUserAndType(input.UserID, input.CartType)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		CartType:       cart.Type,
		RestaurantID:   cart.RestaurantID,
		Status:         constants.OrderStatusPending,
		PaymentStatus:  constants.PaymentStatusPending,
		Subtotal:       cart.Subtotal,
		DeliveryFee:    cart.DeliveryFee,
		TaxAmount:      cart.TaxAmount,
		DiscountAmount: cart.DiscountAmount,
		TotalAmount:    cart.TotalAmount,
		AddressJSON:    models.JSON(input.Address),
		Notes:          strings.TrimSpace(input.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:      cartItem.ProductID,
			VariationID:    cartItem.VariationID,
			DishID:         cartItem.DishID,
			SnapshotJSON:   buildItemSnapshot(cartItem),
			Customizations: cartItem.Customizations,
			UnitPrice:      cartItem.UnitPrice,
			Quantity:       cartItem.Quantity,
			TotalPrice:     cartItem.TotalPrice,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		for _, cartItem := range cart.Items {
			if cartItem.ProductID == nil {
				continue
			}
			if err := productRepo.AdjustStock(*cartItem.ProductID, -cartItem.Quantity); err != nil {
				return ErrOutOfStock
			}
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return cartRepo.Delete(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(order.ID, order.Status)
	return s.orderRepo.GetByID(order.ID)
}

// GetOrder 获取用户订单详情
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrders 用户订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListAdminOrders 管理端订单列表
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 管理端推进订单状态；delivered 必须走 ConfirmDelivery
func (s *OrderService) UpdateStatus(orderID uint, newStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if newStatus == constants.OrderStatusDelivered {
		return nil, ErrOrderStatusInvalid
	}
	if !canTransitionOrder(order.Status, newStatus) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if newStatus == constants.OrderStatusCancelled {
		updates["cancelled_at"] = now
	}
	if err := s.applyStatus(order, newStatus, updates); err != nil {
		return nil, err
	}

	// 进入配送时签发收货确认码
	if newStatus == constants.OrderStatusOutForDelivery {
		if err := s.issueDeliveryOtp(order); err != nil {
			logger.Errorw("delivery_otp_issue_failed", "order_id", order.ID, "error", err)
		}
	}
	return s.orderRepo.GetByID(orderID)
}

// CancelOrder 用户取消订单，仅限尚未进入配送的订单
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	// 已出发的配送只能由管理端取消
	if order.Status == constants.OrderStatusOutForDelivery {
		return nil, ErrOrderStatusInvalid
	}
	if !canTransitionOrder(order.Status, constants.OrderStatusCancelled) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":   now,
		"cancelled_at": now,
	}
	if err := s.applyStatus(order, constants.OrderStatusCancelled, updates); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// ConfirmDelivery 配送确认码核销后订单进入 delivered
func (s *OrderService) ConfirmDelivery(orderID uint, code string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status != constants.OrderStatusOutForDelivery {
		return nil, ErrOrderNotDeliverable
	}

	otp, err := s.otpRepo.GetLatestForOrder(orderID)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, ErrOtpInvalid
	}
	if otp.UsedAt != nil {
		return nil, ErrOtpUsed
	}
	if time.Now().After(otp.ExpiresAt) {
		return nil, ErrOtpExpired
	}
	if strings.TrimSpace(code) == "" || otp.Code != strings.TrimSpace(code) {
		return nil, ErrOtpInvalid
	}
	if err := s.otpRepo.MarkUsed(otp.ID, time.Now()); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":   now,
		"delivered_at": now,
	}
	if err := s.applyStatus(order, constants.OrderStatusDelivered, updates); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// UpdatePaymentStatus 更新支付状态；取消已支付订单时置为 refunded
func (s *OrderService) UpdatePaymentStatus(orderID uint, newStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if !canTransitionPayment(order.PaymentStatus, newStatus) {
		return nil, ErrOrderStatusInvalid
	}
	updates := map[string]interface{}{
		"payment_status": newStatus,
		"updated_at":     time.Now(),
	}
	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, updates); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// applyStatus 写入状态并触发通知；取消订单时回补库存与退款标记
func (s *OrderService) applyStatus(order *models.Order, newStatus string, updates map[string]interface{}) error {
	if newStatus == constants.OrderStatusCancelled {
		if order.PaymentStatus == constants.PaymentStatusPaid {
			updates["payment_status"] = constants.PaymentStatusRefunded
		}
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if item.ProductID == nil {
					continue
				}
				if err := productRepo.AdjustStock(*item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return orderRepo.UpdateStatus(order.ID, newStatus, updates)
		})
		if err != nil {
			return err
		}
	} else {
		if err := s.orderRepo.UpdateStatus(order.ID, newStatus, updates); err != nil {
			return err
		}
	}
	s.enqueueStatusEmail(order.ID, newStatus)
	return nil
}

// issueDeliveryOtp 为订单签发一次性收货确认码并推送邮件
func (s *OrderService) issueDeliveryOtp(order *models.Order) error {
	code, err := generateNumericCode(s.cfg.Otp.Length)
	if err != nil {
		return err
	}
	now := time.Now()
	expireMinutes := s.cfg.Otp.ExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 10
	}
	orderID := order.ID
	otp := &models.Otp{
		UserID:    order.UserID,
		OrderID:   &orderID,
		Purpose:   constants.OtpPurposeDelivery,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(expireMinutes) * time.Minute),
		SentAt:    now,
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(otp); err != nil {
		return err
	}
	if err := s.queueClient.EnqueueDeliveryOtpEmail(queue.DeliveryOtpEmailPayload{
		OrderID: order.ID,
		Code:    code,
	}); err != nil {
		logger.Errorw("delivery_otp_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return nil
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Errorw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
}

// buildItemSnapshot 固化下单时的目录项展示字段
func buildItemSnapshot(item models.CartItem) models.JSON {
	snapshot := models.JSON{
		"unit_price": item.UnitPrice.String(),
		"quantity":   item.Quantity,
	}
	if item.Product != nil {
		snapshot["name"] = item.Product.Name
		snapshot["description"] = item.Product.Description
		if len(item.Product.Images) > 0 {
			snapshot["image"] = item.Product.Images[0]
		}
	}
	if item.Dish != nil {
		snapshot["name"] = item.Dish.Name
		snapshot["description"] = item.Dish.Description
		snapshot["restaurant_id"] = item.Dish.RestaurantID
		if len(item.Dish.Images) > 0 {
			snapshot["image"] = item.Dish.Images[0]
		}
	}
	if len(item.Customizations) > 0 {
		snapshot["customizations"] = []string(item.Customizations)
	}
	return snapshot
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("UM%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
