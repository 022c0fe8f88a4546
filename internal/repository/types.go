package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Vertical   string
	Search     string
	OnlyActive bool
}

// RestaurantListFilter 查询餐厅列表的过滤条件
type RestaurantListFilter struct {
	Page     int
	PageSize int
	Search   string
	OnlyOpen bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	CartType    string
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// HotelListFilter 查询酒店列表的过滤条件
type HotelListFilter struct {
	Page       int
	PageSize   int
	City       string
	Search     string
	OnlyActive bool
}

// BookingListFilter 查询酒店预订列表的过滤条件
type BookingListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}

// RideListFilter 查询行程列表的过滤条件
type RideListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	DriverID    uint
	VehicleType string
	Status      string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
