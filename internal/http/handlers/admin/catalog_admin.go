package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/unimart/unimart/internal/http/response"
	"github.com/unimart/unimart/internal/repository"
	"github.com/unimart/unimart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ====================  商品管理  ====================

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Vertical: strings.TrimSpace(c.Query("vertical")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, product)
}

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Vertical    string   `json:"vertical"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	StockCount  int      `json:"stock_count"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   int      `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	return service.ProductInput{
		Vertical:    r.Vertical,
		Name:        r.Name,
		Description: r.Description,
		Price:       decimal.NewFromFloat(r.Price),
		Images:      r.Images,
		StockCount:  r.StockCount,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	product, err := h.ProductService.CreateProduct(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	product, err := h.ProductService.UpdateProduct(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	if err := h.ProductService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}

// ====================  餐厅与菜品管理  ====================

// GetAdminRestaurants 获取餐厅列表 (Admin)
func (h *Handler) GetAdminRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.RestaurantListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	restaurants, total, err := h.RestaurantService.ListRestaurants(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, restaurants, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// RestaurantRequest 创建/更新餐厅请求
type RestaurantRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
	DeliveryFee float64  `json:"delivery_fee"`
	IsOpen      *bool    `json:"is_open"`
}

func (r RestaurantRequest) toServiceInput() service.RestaurantInput {
	return service.RestaurantInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Images:      r.Images,
		DeliveryFee: decimal.NewFromFloat(r.DeliveryFee),
		IsOpen:      r.IsOpen,
	}
}

// CreateRestaurant 创建餐厅
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	restaurant, err := h.RestaurantService.CreateRestaurant(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, restaurant)
}

// UpdateRestaurant 更新餐厅
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	restaurant, err := h.RestaurantService.UpdateRestaurant(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, restaurant)
}

// DeleteRestaurant 删除餐厅（软删除）
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	if err := h.RestaurantService.DeleteRestaurant(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}

// GetAdminDishes 获取餐厅全部菜品（含下架）
func (h *Handler) GetAdminDishes(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	dishes, err := h.RestaurantService.ListDishes(id, false)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"items": dishes})
}

// DishRequest 创建/更新菜品请求
type DishRequest struct {
	RestaurantID uint                   `json:"restaurant_id"`
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description"`
	Price        float64                `json:"price"`
	Images       []string               `json:"images"`
	Options      map[string]interface{} `json:"options"`
	IsAvailable  *bool                  `json:"is_available"`
}

func (r DishRequest) toServiceInput() service.DishInput {
	return service.DishInput{
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        decimal.NewFromFloat(r.Price),
		Images:       r.Images,
		Options:      r.Options,
		IsAvailable:  r.IsAvailable,
	}
}

// CreateDish 创建菜品
func (h *Handler) CreateDish(c *gin.Context) {
	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	dish, err := h.RestaurantService.CreateDish(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, dish)
}

// UpdateDish 更新菜品
func (h *Handler) UpdateDish(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	dish, err := h.RestaurantService.UpdateDish(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, dish)
}

// DeleteDish 删除菜品（软删除）
func (h *Handler) DeleteDish(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	if err := h.RestaurantService.DeleteDish(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}

// ====================  酒店与房型管理  ====================

// GetAdminHotels 获取酒店列表 (Admin)
func (h *Handler) GetAdminHotels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.HotelListFilter{
		Page:     page,
		PageSize: pageSize,
		City:     strings.TrimSpace(c.Query("city")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	hotels, total, err := h.HotelService.ListHotels(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, hotels, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// HotelRequest 创建/更新酒店请求
type HotelRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
}

func (r HotelRequest) toServiceInput() service.HotelInput {
	return service.HotelInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		Images:      r.Images,
		IsActive:    r.IsActive,
	}
}

// CreateHotel 创建酒店
func (h *Handler) CreateHotel(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	hotel, err := h.HotelService.CreateHotel(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, hotel)
}

// UpdateHotel 更新酒店
func (h *Handler) UpdateHotel(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	hotel, err := h.HotelService.UpdateHotel(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.hotel_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, hotel)
}

// DeleteHotel 删除酒店（软删除）
func (h *Handler) DeleteHotel(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	if err := h.HotelService.DeleteHotel(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.hotel_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}

// GetAdminRooms 获取酒店全部房型（含停售）
func (h *Handler) GetAdminRooms(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	rooms, err := h.HotelService.ListRooms(id, false)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.hotel_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"items": rooms})
}

// RoomRequest 创建/更新房型请求
type RoomRequest struct {
	HotelID      uint     `json:"hotel_id"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	RatePerNight float64  `json:"rate_per_night"`
	Capacity     int      `json:"capacity"`
	RoomCount    int      `json:"room_count"`
	Images       []string `json:"images"`
	IsActive     *bool    `json:"is_active"`
}

func (r RoomRequest) toServiceInput() service.RoomInput {
	return service.RoomInput{
		HotelID:      r.HotelID,
		Name:         r.Name,
		Description:  r.Description,
		RatePerNight: decimal.NewFromFloat(r.RatePerNight),
		Capacity:     r.Capacity,
		RoomCount:    r.RoomCount,
		Images:       r.Images,
		IsActive:     r.IsActive,
	}
}

// CreateRoom 创建房型
func (h *Handler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	room, err := h.HotelService.CreateRoom(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.hotel_not_found", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, room)
}

// UpdateRoom 更新房型
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	room, err := h.HotelService.UpdateRoom(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.room_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, room)
}

// DeleteRoom 删除房型（软删除）
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	if err := h.HotelService.DeleteRoom(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.room_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}
