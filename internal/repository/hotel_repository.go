package repository

import (
	"errors"
	"time"

	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"

	"gorm.io/gorm"
)

// HotelRepository 酒店数据访问接口
type HotelRepository interface {
	GetByID(id uint) (*models.Hotel, error)
	Create(hotel *models.Hotel) error
	Update(hotel *models.Hotel) error
	Delete(id uint) error
	List(filter HotelListFilter) ([]models.Hotel, int64, error)
}

// GormHotelRepository GORM 实现
type GormHotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository 创建酒店仓库
func NewHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

// GetByID 根据 ID 获取酒店（含房型）
func (r *GormHotelRepository) GetByID(id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.Preload("Rooms").First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

// Create 创建酒店
func (r *GormHotelRepository) Create(hotel *models.Hotel) error {
	return r.db.Create(hotel).Error
}

// Update 更新酒店
func (r *GormHotelRepository) Update(hotel *models.Hotel) error {
	return r.db.Save(hotel).Error
}

// Delete 删除酒店
func (r *GormHotelRepository) Delete(id uint) error {
	return r.db.Delete(&models.Hotel{}, id).Error
}

// List 酒店列表
func (r *GormHotelRepository) List(filter HotelListFilter) ([]models.Hotel, int64, error) {
	query := r.db.Model(&models.Hotel{})

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ?", like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	var hotels []models.Hotel
	if err := query.Order("id desc").Find(&hotels).Error; err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

// RoomRepository 房型数据访问接口
type RoomRepository interface {
	GetByID(id uint) (*models.Room, error)
	Create(room *models.Room) error
	Update(room *models.Room) error
	Delete(id uint) error
	ListByHotel(hotelID uint, onlyActive bool) ([]models.Room, error)
	CountOverlapping(roomID uint, checkIn, checkOut time.Time) (int64, error)
}

// GormRoomRepository GORM 实现
type GormRoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房型仓库
func NewRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// GetByID 根据 ID 获取房型（含酒店）
func (r *GormRoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.Preload("Hotel").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// Create 创建房型
func (r *GormRoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

// Update 更新房型
func (r *GormRoomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

// Delete 删除房型
func (r *GormRoomRepository) Delete(id uint) error {
	return r.db.Delete(&models.Room{}, id).Error
}

// ListByHotel 获取酒店房型列表
func (r *GormRoomRepository) ListByHotel(hotelID uint, onlyActive bool) ([]models.Room, error) {
	query := r.db.Where("hotel_id = ?", hotelID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var rooms []models.Room
	if err := query.Order("id asc").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CountOverlapping 统计与给定日期区间重叠的未取消预订数
func (r *GormRoomRepository) CountOverlapping(roomID uint, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status NOT IN ?", []string{constants.BookingStatusCancelled, constants.BookingStatusCheckedOut}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&count).Error
	return count, err
}
