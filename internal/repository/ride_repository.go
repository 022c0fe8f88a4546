package repository

import (
	"errors"

	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"

	"gorm.io/gorm"
)

// RideRepository 行程数据访问接口
type RideRepository interface {
	Create(ride *models.Ride) error
	GetByID(id uint) (*models.Ride, error)
	GetByIDAndUser(id uint, userID uint) (*models.Ride, error)
	ListByUser(filter RideListFilter) ([]models.Ride, int64, error)
	ListRequested(vehicleType string, limit int) ([]models.Ride, error)
	Update(ride *models.Ride) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormRideRepository
}

// GormRideRepository GORM 实现
type GormRideRepository struct {
	db *gorm.DB
}

// NewRideRepository 创建行程仓库
func NewRideRepository(db *gorm.DB) *GormRideRepository {
	return &GormRideRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRideRepository) WithTx(tx *gorm.DB) *GormRideRepository {
	if tx == nil {
		return r
	}
	return &GormRideRepository{db: tx}
}

// Create 创建行程
func (r *GormRideRepository) Create(ride *models.Ride) error {
	return r.db.Create(ride).Error
}

// GetByID 根据 ID 获取行程
func (r *GormRideRepository) GetByID(id uint) (*models.Ride, error) {
	var ride models.Ride
	if err := r.db.Preload("Driver").First(&ride, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ride, nil
}

// GetByIDAndUser 获取乘客行程详情
func (r *GormRideRepository) GetByIDAndUser(id uint, userID uint) (*models.Ride, error) {
	var ride models.Ride
	if err := r.db.Preload("Driver").
		Where("id = ? AND user_id = ?", id, userID).
		First(&ride).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ride, nil
}

// ListByUser 乘客行程列表
func (r *GormRideRepository) ListByUser(filter RideListFilter) ([]models.Ride, int64, error) {
	query := r.db.Model(&models.Ride{}).Where("user_id = ?", filter.UserID)

	if filter.VehicleType != "" {
		query = query.Where("vehicle_type = ?", filter.VehicleType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	var rides []models.Ride
	if err := query.Preload("Driver").Order("id desc").Find(&rides).Error; err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// ListRequested 列出待接单行程，供司机端拉取
func (r *GormRideRepository) ListRequested(vehicleType string, limit int) ([]models.Ride, error) {
	query := r.db.Where("status = ?", constants.RideStatusRequested)
	if vehicleType != "" {
		query = query.Where("vehicle_type = ?", vehicleType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rides []models.Ride
	if err := query.Order("id asc").Find(&rides).Error; err != nil {
		return nil, err
	}
	return rides, nil
}

// Update 更新行程
func (r *GormRideRepository) Update(ride *models.Ride) error {
	return r.db.Save(ride).Error
}

// UpdateStatus 更新行程状态及附加字段
func (r *GormRideRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Ride{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DriverRepository 司机数据访问接口
type DriverRepository interface {
	Create(driver *models.Driver) error
	GetByID(id uint) (*models.Driver, error)
	GetByUserID(userID uint) (*models.Driver, error)
	UpdateStatus(id uint, status string) error
}

// GormDriverRepository GORM 实现
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository 创建司机仓库
func NewDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Create 创建司机
func (r *GormDriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID 根据 ID 获取司机
func (r *GormDriverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// GetByUserID 根据用户 ID 获取司机
func (r *GormDriverRepository) GetByUserID(userID uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// UpdateStatus 更新司机状态
func (r *GormDriverRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Driver{}).
		Where("id = ?", id).
		Update("status", status).Error
}
