package repository

import (
	"errors"
	"time"

	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUserAndType(userID uint, cartType string) (*models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	Update(cart *models.Cart) error
	Delete(id uint) error
	GetItem(cartID uint, itemKey string) (*models.CartItem, error)
	GetItemByID(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(id uint) error
	DeleteItems(cartID uint) error
	ListStale(before time.Time, limit int) ([]models.Cart, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUserAndType 获取用户在指定类型下的购物车（含项）
func (r *GormCartRepository) GetByUserAndType(userID uint, cartType string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").Preload("Items.Product").Preload("Items.Dish").
		Where("user_id = ? AND type = ?", userID, cartType).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByID 根据 ID 获取购物车（含项）
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").Preload("Items.Product").Preload("Items.Dish").
		First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Update 更新购物车
func (r *GormCartRepository) Update(cart *models.Cart) error {
	return r.db.Save(cart).Error
}

// Delete 删除购物车及其项
func (r *GormCartRepository) Delete(id uint) error {
	if err := r.db.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, id).Error
}

// GetItem 按去重键获取购物车项
func (r *GormCartRepository) GetItem(cartID uint, itemKey string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND item_key = ?", cartID, itemKey).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByID 按 ID 获取购物车项，校验归属
func (r *GormCartRepository) GetItemByID(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND id = ?", cartID, itemID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新购物车项
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// DeleteItems 清空购物车项
func (r *GormCartRepository) DeleteItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// ListStale 列出更新时间早于 before 的活跃购物车，用于放弃标记
func (r *GormCartRepository) ListStale(before time.Time, limit int) ([]models.Cart, error) {
	query := r.db.Where("status = ? AND updated_at < ?", constants.CartStatusActive, before)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var carts []models.Cart
	if err := query.Order("updated_at asc").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}
