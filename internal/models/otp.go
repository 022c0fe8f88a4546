package models

import (
	"time"

	"gorm.io/gorm"
)

// Otp 一次性验证码记录
type Otp struct {
	ID        uint           `gorm:"primarykey" json:"id"`          // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"` // 关联用户ID
	OrderID   *uint          `gorm:"index" json:"order_id"`         // 关联订单ID（仅送达确认用途）
	Purpose   string         `gorm:"index;not null" json:"purpose"` // 用途（login/reset/delivery）
	Code      string         `gorm:"not null" json:"-"`             // 验证码（不返回给前端）
	ExpiresAt time.Time      `gorm:"index" json:"expires_at"`       // 过期时间
	UsedAt    *time.Time     `gorm:"index" json:"used_at"`          // 使用时间（单次有效）
	SentAt    time.Time      `gorm:"index" json:"sent_at"`          // 发送时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`       // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                // 软删除时间
}

// TableName 指定表名
func (Otp) TableName() string {
	return "otps"
}
