package repository

import (
	"errors"

	"github.com/unimart/unimart/internal/models"

	"gorm.io/gorm"
)

// BookingRepository 酒店预订数据访问接口
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetByIDAndUser(id uint, userID uint) (*models.Booking, error)
	ListByUser(filter BookingListFilter) ([]models.Booking, int64, error)
	ListAdmin(filter BookingListFilter) ([]models.Booking, int64, error)
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) *GormBookingRepository
}

// GormBookingRepository GORM 实现
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓库
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBookingRepository) WithTx(tx *gorm.DB) *GormBookingRepository {
	if tx == nil {
		return r
	}
	return &GormBookingRepository{db: tx}
}

// Create 创建预订
func (r *GormBookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByID 根据 ID 获取预订
func (r *GormBookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Room").Preload("Room.Hotel").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByIDAndUser 获取用户预订详情
func (r *GormBookingRepository) GetByIDAndUser(id uint, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Room").Preload("Room.Hotel").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// ListByUser 用户预订列表
func (r *GormBookingRepository) ListByUser(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{}).Where("user_id = ?", filter.UserID)
	return r.list(query, filter)
}

// ListAdmin 管理端预订列表
func (r *GormBookingRepository) ListAdmin(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return r.list(query, filter)
}

func (r *GormBookingRepository) list(query *gorm.DB, filter BookingListFilter) ([]models.Booking, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	var bookings []models.Booking
	if err := query.Preload("Room").Order("id desc").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatus 更新预订状态
func (r *GormBookingRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}
