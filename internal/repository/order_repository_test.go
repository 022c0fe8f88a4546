package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Product{}); err != nil {
		t.Fatalf("migrate order failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID uint, cartType, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       orderNo,
		UserID:        userID,
		CartType:      cartType,
		Status:        status,
		PaymentStatus: constants.PaymentStatusPending,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
	items := []models.OrderItem{
		{SnapshotJSON: models.JSON{"name": "测试商品"}, Quantity: 1, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryListAdminFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	createTestOrder(t, repo, "UM1001", 1, constants.CartTypeProduct, constants.OrderStatusPending)
	createTestOrder(t, repo, "UM1002", 1, constants.CartTypeFood, constants.OrderStatusConfirmed)
	createTestOrder(t, repo, "UM1003", 2, constants.CartTypeFood, constants.OrderStatusConfirmed)

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, CartType: constants.CartTypeFood})
	if err != nil {
		t.Fatalf("list by cart type failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 food orders, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, UserID: 1, Status: constants.OrderStatusConfirmed})
	if err != nil {
		t.Fatalf("list by user and status failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "UM1002" {
		t.Fatalf("expected UM1002, got total=%d orders=%+v", total, orders)
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, OrderNo: "UM1003"})
	if err != nil {
		t.Fatalf("list by order no failed: %v", err)
	}
	if total != 1 || orders[0].UserID != 2 {
		t.Fatalf("expected order of user 2, got %+v", orders)
	}
	if len(orders[0].Items) != 1 {
		t.Fatalf("expected items preloaded, got %d", len(orders[0].Items))
	}
}

func TestOrderRepositoryListByUserScopes(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	createTestOrder(t, repo, "UM2001", 1, constants.CartTypeProduct, constants.OrderStatusPending)
	createTestOrder(t, repo, "UM2002", 2, constants.CartTypeProduct, constants.OrderStatusPending)

	orders, total, err := repo.ListByUser(OrderListFilter{Page: 1, PageSize: 10, UserID: 1})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "UM2001" {
		t.Fatalf("expected only own orders, got total=%d orders=%+v", total, orders)
	}

	order, err := repo.GetByIDAndUser(orders[0].ID, 2)
	if err != nil {
		t.Fatalf("get by id and user failed: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil for foreign order, got %+v", order)
	}
}

func TestProductRepositoryAdjustStockGuard(t *testing.T) {
	dsn := fmt.Sprintf("file:product_stock_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	repo := NewProductRepository(db)

	product := models.Product{
		Vertical:    constants.CartTypeProduct,
		Name:        "测试商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StockCount:  3,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := repo.AdjustStock(product.ID, -2); err != nil {
		t.Fatalf("adjust within stock failed: %v", err)
	}
	if err := repo.AdjustStock(product.ID, -2); err == nil {
		t.Fatalf("expected adjust beyond stock to fail")
	}
	if err := repo.AdjustStock(product.ID, 5); err != nil {
		t.Fatalf("restock failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockCount != 6 {
		t.Fatalf("expected stock 6, got %d", reloaded.StockCount)
	}
}
