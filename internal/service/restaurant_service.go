package service

import (
	"strings"
	"time"

	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/shopspring/decimal"
)

// RestaurantInput 餐厅创建/更新输入
type RestaurantInput struct {
	Name        string
	Description string
	Address     string
	Images      []string
	DeliveryFee decimal.Decimal
	IsOpen      *bool
}

// DishInput 菜品创建/更新输入
type DishInput struct {
	RestaurantID uint
	Name         string
	Description  string
	Price        decimal.Decimal
	Images       []string
	Options      map[string]interface{}
	IsAvailable  *bool
}

// RestaurantService 餐厅目录服务
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	dishRepo       repository.DishRepository
}

// NewRestaurantService 创建餐厅服务
func NewRestaurantService(restaurantRepo repository.RestaurantRepository, dishRepo repository.DishRepository) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		dishRepo:       dishRepo,
	}
}

// GetRestaurant 获取餐厅详情（含菜品）
func (s *RestaurantService) GetRestaurant(id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrNotFound
	}
	return restaurant, nil
}

// ListRestaurants 餐厅列表
func (s *RestaurantService) ListRestaurants(filter repository.RestaurantListFilter) ([]models.Restaurant, int64, error) {
	return s.restaurantRepo.List(filter)
}

// ListDishes 餐厅菜品列表
func (s *RestaurantService) ListDishes(restaurantID uint, onlyAvailable bool) ([]models.Dish, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrNotFound
	}
	return s.dishRepo.ListByRestaurant(restaurantID, onlyAvailable)
}

// CreateRestaurant 创建餐厅
func (s *RestaurantService) CreateRestaurant(input RestaurantInput) (*models.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if input.DeliveryFee.IsNegative() {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	restaurant := &models.Restaurant{
		Name:        name,
		Description: input.Description,
		Address:     input.Address,
		Images:      models.StringArray(input.Images),
		DeliveryFee: models.NewMoneyFromDecimal(input.DeliveryFee),
		IsOpen:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsOpen != nil {
		restaurant.IsOpen = *input.IsOpen
	}
	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// UpdateRestaurant 更新餐厅
func (s *RestaurantService) UpdateRestaurant(id uint, input RestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		restaurant.Name = name
	}
	if input.Description != "" {
		restaurant.Description = input.Description
	}
	if input.Address != "" {
		restaurant.Address = input.Address
	}
	if input.Images != nil {
		restaurant.Images = models.StringArray(input.Images)
	}
	if !input.DeliveryFee.IsNegative() {
		restaurant.DeliveryFee = models.NewMoneyFromDecimal(input.DeliveryFee)
	}
	if input.IsOpen != nil {
		restaurant.IsOpen = *input.IsOpen
	}
	restaurant.UpdatedAt = time.Now()

	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// DeleteRestaurant 删除餐厅
func (s *RestaurantService) DeleteRestaurant(id uint) error {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if restaurant == nil {
		return ErrNotFound
	}
	return s.restaurantRepo.Delete(id)
}

// CreateDish 创建菜品
func (s *RestaurantService) CreateDish(input DishInput) (*models.Dish, error) {
	restaurant, err := s.restaurantRepo.GetByID(input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	dish := &models.Dish{
		RestaurantID: input.RestaurantID,
		Name:         name,
		Description:  input.Description,
		PriceAmount:  models.NewMoneyFromDecimal(input.Price),
		Images:       models.StringArray(input.Images),
		OptionsJSON:  models.JSON(input.Options),
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}
	if err := s.dishRepo.Create(dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// UpdateDish 更新菜品
func (s *RestaurantService) UpdateDish(id uint, input DishInput) (*models.Dish, error) {
	dish, err := s.dishRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		dish.Name = name
	}
	if input.Description != "" {
		dish.Description = input.Description
	}
	if !input.Price.IsNegative() && !input.Price.IsZero() {
		dish.PriceAmount = models.NewMoneyFromDecimal(input.Price)
	}
	if input.Images != nil {
		dish.Images = models.StringArray(input.Images)
	}
	if input.Options != nil {
		dish.OptionsJSON = models.JSON(input.Options)
	}
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}
	dish.UpdatedAt = time.Now()

	if err := s.dishRepo.Update(dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// DeleteDish 删除菜品
func (s *RestaurantService) DeleteDish(id uint) error {
	dish, err := s.dishRepo.GetByID(id)
	if err != nil {
		return err
	}
	if dish == nil {
		return ErrNotFound
	}
	return s.dishRepo.Delete(id)
}
