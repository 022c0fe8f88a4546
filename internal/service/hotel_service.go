package service

import (
	"strings"
	"time"

	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/shopspring/decimal"
)

// HotelInput 酒店创建/更新输入
type HotelInput struct {
	Name        string
	Description string
	Address     string
	City        string
	Images      []string
	IsActive    *bool
}

// RoomInput 房型创建/更新输入
type RoomInput struct {
	HotelID      uint
	Name         string
	Description  string
	RatePerNight decimal.Decimal
	Capacity     int
	RoomCount    int
	Images       []string
	IsActive     *bool
}

// HotelService 酒店目录服务
type HotelService struct {
	hotelRepo repository.HotelRepository
	roomRepo  repository.RoomRepository
}

// NewHotelService 创建酒店服务
func NewHotelService(hotelRepo repository.HotelRepository, roomRepo repository.RoomRepository) *HotelService {
	return &HotelService{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
	}
}

// GetHotel 获取酒店详情（含房型）
func (s *HotelService) GetHotel(id uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, ErrNotFound
	}
	return hotel, nil
}

// ListHotels 酒店列表
func (s *HotelService) ListHotels(filter repository.HotelListFilter) ([]models.Hotel, int64, error) {
	return s.hotelRepo.List(filter)
}

// ListRooms 酒店房型列表
func (s *HotelService) ListRooms(hotelID uint, onlyActive bool) ([]models.Room, error) {
	hotel, err := s.hotelRepo.GetByID(hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, ErrNotFound
	}
	return s.roomRepo.ListByHotel(hotelID, onlyActive)
}

// CreateHotel 创建酒店
func (s *HotelService) CreateHotel(input HotelInput) (*models.Hotel, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	hotel := &models.Hotel{
		Name:        name,
		Description: input.Description,
		Address:     input.Address,
		City:        strings.TrimSpace(input.City),
		Images:      models.StringArray(input.Images),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		hotel.IsActive = *input.IsActive
	}
	if err := s.hotelRepo.Create(hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

// UpdateHotel 更新酒店
func (s *HotelService) UpdateHotel(id uint, input HotelInput) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		hotel.Name = name
	}
	if input.Description != "" {
		hotel.Description = input.Description
	}
	if input.Address != "" {
		hotel.Address = input.Address
	}
	if city := strings.TrimSpace(input.City); city != "" {
		hotel.City = city
	}
	if input.Images != nil {
		hotel.Images = models.StringArray(input.Images)
	}
	if input.IsActive != nil {
		hotel.IsActive = *input.IsActive
	}
	hotel.UpdatedAt = time.Now()

	if err := s.hotelRepo.Update(hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

// DeleteHotel 删除酒店
func (s *HotelService) DeleteHotel(id uint) error {
	hotel, err := s.hotelRepo.GetByID(id)
	if err != nil {
		return err
	}
	if hotel == nil {
		return ErrNotFound
	}
	return s.hotelRepo.Delete(id)
}

// CreateRoom 创建房型
func (s *HotelService) CreateRoom(input RoomInput) (*models.Room, error) {
	hotel, err := s.hotelRepo.GetByID(input.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if input.RatePerNight.IsNegative() || input.RatePerNight.IsZero() {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	room := &models.Room{
		HotelID:      input.HotelID,
		Name:         name,
		Description:  input.Description,
		RatePerNight: models.NewMoneyFromDecimal(input.RatePerNight),
		Capacity:     input.Capacity,
		RoomCount:    input.RoomCount,
		Images:       models.StringArray(input.Images),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if room.Capacity <= 0 {
		room.Capacity = 2
	}
	if room.RoomCount <= 0 {
		room.RoomCount = 1
	}
	if input.IsActive != nil {
		room.IsActive = *input.IsActive
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoom 更新房型
func (s *HotelService) UpdateRoom(id uint, input RoomInput) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		room.Name = name
	}
	if input.Description != "" {
		room.Description = input.Description
	}
	if !input.RatePerNight.IsNegative() && !input.RatePerNight.IsZero() {
		room.RatePerNight = models.NewMoneyFromDecimal(input.RatePerNight)
	}
	if input.Capacity > 0 {
		room.Capacity = input.Capacity
	}
	if input.RoomCount > 0 {
		room.RoomCount = input.RoomCount
	}
	if input.Images != nil {
		room.Images = models.StringArray(input.Images)
	}
	if input.IsActive != nil {
		room.IsActive = *input.IsActive
	}
	room.UpdatedAt = time.Now()

	if err := s.roomRepo.Update(room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom 删除房型
func (s *HotelService) DeleteRoom(id uint) error {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrNotFound
	}
	return s.roomRepo.Delete(id)
}
