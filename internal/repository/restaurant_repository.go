package repository

import (
	"errors"

	"github.com/unimart/unimart/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository 餐厅数据访问接口
type RestaurantRepository interface {
	GetByID(id uint) (*models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id uint) error
	List(filter RestaurantListFilter) ([]models.Restaurant, int64, error)
}

// GormRestaurantRepository GORM 实现
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository 创建餐厅仓库
func NewRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// GetByID 根据 ID 获取餐厅（含菜品）
func (r *GormRestaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.Preload("Dishes").First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// Create 创建餐厅
func (r *GormRestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// Update 更新餐厅
func (r *GormRestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Delete 删除餐厅
func (r *GormRestaurantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Restaurant{}, id).Error
}

// List 餐厅列表
func (r *GormRestaurantRepository) List(filter RestaurantListFilter) ([]models.Restaurant, int64, error) {
	query := r.db.Model(&models.Restaurant{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ?", like)
	}
	if filter.OnlyOpen {
		query = query.Where("is_open = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	var restaurants []models.Restaurant
	if err := query.Order("id desc").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// DishRepository 菜品数据访问接口
type DishRepository interface {
	GetByID(id uint) (*models.Dish, error)
	Create(dish *models.Dish) error
	Update(dish *models.Dish) error
	Delete(id uint) error
	ListByRestaurant(restaurantID uint, onlyAvailable bool) ([]models.Dish, error)
}

// GormDishRepository GORM 实现
type GormDishRepository struct {
	db *gorm.DB
}

// NewDishRepository 创建菜品仓库
func NewDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

// GetByID 根据 ID 获取菜品（含餐厅）
func (r *GormDishRepository) GetByID(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.Preload("Restaurant").First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dish, nil
}

// Create 创建菜品
func (r *GormDishRepository) Create(dish *models.Dish) error {
	return r.db.Create(dish).Error
}

// Update 更新菜品
func (r *GormDishRepository) Update(dish *models.Dish) error {
	return r.db.Save(dish).Error
}

// Delete 删除菜品
func (r *GormDishRepository) Delete(id uint) error {
	return r.db.Delete(&models.Dish{}, id).Error
}

// ListByRestaurant 获取餐厅菜品列表
func (r *GormDishRepository) ListByRestaurant(restaurantID uint, onlyAvailable bool) ([]models.Dish, error) {
	query := r.db.Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	var dishes []models.Dish
	if err := query.Order("id asc").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}
