package repository

import (
	"errors"
	"time"

	"github.com/unimart/unimart/internal/models"

	"gorm.io/gorm"
)

// OtpRepository 一次性验证码数据访问接口
type OtpRepository interface {
	Create(otp *models.Otp) error
	GetLatest(userID uint, purpose string) (*models.Otp, error)
	GetLatestForOrder(orderID uint) (*models.Otp, error)
	MarkUsed(id uint, usedAt time.Time) error
}

// GormOtpRepository GORM 实现
type GormOtpRepository struct {
	db *gorm.DB
}

// NewOtpRepository 创建验证码仓库
func NewOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

// Create 创建验证码记录
func (r *GormOtpRepository) Create(otp *models.Otp) error {
	return r.db.Create(otp).Error
}

// GetLatest 获取用户在指定用途下的最新验证码
func (r *GormOtpRepository) GetLatest(userID uint, purpose string) (*models.Otp, error) {
	var record models.Otp
	if err := r.db.Where("user_id = ? AND purpose = ?", userID, purpose).
		Order("sent_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetLatestForOrder 获取订单的最新配送验证码
func (r *GormOtpRepository) GetLatestForOrder(orderID uint) (*models.Otp, error) {
	var record models.Otp
	if err := r.db.Where("order_id = ?", orderID).
		Order("sent_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MarkUsed 标记验证码已使用
func (r *GormOtpRepository) MarkUsed(id uint, usedAt time.Time) error {
	return r.db.Model(&models.Otp{}).
		Where("id = ?", id).
		Update("used_at", usedAt).Error
}
