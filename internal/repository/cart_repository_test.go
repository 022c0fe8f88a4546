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

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestCartRepositoryListStale(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	now := time.Now()
	stale := models.Cart{
		UserID:    1,
		Type:      constants.CartTypeProduct,
		Status:    constants.CartStatusActive,
		UpdatedAt: now.Add(-48 * time.Hour),
	}
	fresh := models.Cart{
		UserID:    2,
		Type:      constants.CartTypeProduct,
		Status:    constants.CartStatusActive,
		UpdatedAt: now,
	}
	emptyStale := models.Cart{
		UserID:    3,
		Type:      constants.CartTypeProduct,
		Status:    constants.CartStatusEmpty,
		UpdatedAt: now.Add(-48 * time.Hour),
	}
	for _, cart := range []*models.Cart{&stale, &fresh, &emptyStale} {
		if err := db.Create(cart).Error; err != nil {
			t.Fatalf("create cart failed: %v", err)
		}
		// Create 会刷新 updated_at，写回期望的时间戳
		if err := db.Model(&models.Cart{}).Where("id = ?", cart.ID).
			UpdateColumn("updated_at", cart.UpdatedAt).Error; err != nil {
			t.Fatalf("backdate cart failed: %v", err)
		}
	}

	carts, err := repo.ListStale(now.Add(-24*time.Hour), 10)
	if err != nil {
		t.Fatalf("list stale failed: %v", err)
	}
	if len(carts) != 1 {
		t.Fatalf("expected 1 stale active cart, got %d", len(carts))
	}
	if carts[0].UserID != 1 {
		t.Fatalf("expected stale cart of user 1, got user %d", carts[0].UserID)
	}
}

func TestCartRepositoryGetItemByKey(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	cart := models.Cart{UserID: 1, Type: constants.CartTypeProduct, Status: constants.CartStatusActive}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	productID := uint(7)
	item := models.CartItem{
		CartID:    cart.ID,
		ItemKey:   "p:7:v:0",
		ProductID: &productID,
		Quantity:  2,
		UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
	}
	if err := repo.CreateItem(&item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	found, err := repo.GetItem(cart.ID, "p:7:v:0")
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Fatalf("expected item by key, got %+v", found)
	}

	missing, err := repo.GetItem(cart.ID, "p:8:v:0")
	if err != nil {
		t.Fatalf("get missing item failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown key, got %+v", missing)
	}
}

func TestCartRepositoryDeleteRemovesItems(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	cart := models.Cart{UserID: 1, Type: constants.CartTypeFood, Status: constants.CartStatusActive}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	dishID := uint(3)
	item := models.CartItem{
		CartID:   cart.ID,
		ItemKey:  "d:3:c:",
		DishID:   &dishID,
		Quantity: 1,
	}
	if err := repo.CreateItem(&item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	if err := repo.Delete(cart.ID); err != nil {
		t.Fatalf("delete cart failed: %v", err)
	}
	reloaded, err := repo.GetByID(cart.ID)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if reloaded != nil {
		t.Fatalf("expected cart deleted, got %+v", reloaded)
	}
	orphan, err := repo.GetItem(cart.ID, "d:3:c:")
	if err != nil {
		t.Fatalf("get orphan item failed: %v", err)
	}
	if orphan != nil {
		t.Fatalf("expected items deleted with cart, got %+v", orphan)
	}
}
