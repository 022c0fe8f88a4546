package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver 司机表
type Driver struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`                 // 关联用户ID
	VehicleType string         `gorm:"type:varchar(20);not null;index" json:"vehicle_type"` // 车辆类型（taxi/porter）
	VehicleNo   string         `gorm:"type:varchar(50)" json:"vehicle_no"`                  // 车牌号
	Status      string         `gorm:"type:varchar(20);not null;default:'offline';index" json:"status"` // 状态（offline/online/busy）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Driver) TableName() string {
	return "drivers"
}

// Ride 行程表（出租车/搬运）
type Ride struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                     // 主键
	RideNo         string         `gorm:"uniqueIndex;not null" json:"ride_no"`                      // 行程编号
	UserID         uint           `gorm:"index;not null" json:"user_id"`                            // 乘客用户ID
	DriverID       *uint          `gorm:"index" json:"driver_id"`                                   // 接单司机ID
	VehicleType    string         `gorm:"type:varchar(20);not null;index" json:"vehicle_type"`      // 车辆类型
	Status         string         `gorm:"index;not null;default:'requested'" json:"status"`         // 行程状态
	PickupAddress  string         `gorm:"type:varchar(500)" json:"pickup_address"`                  // 上车地址
	PickupLat      float64        `gorm:"not null" json:"pickup_lat"`                               // 上车纬度
	PickupLng      float64        `gorm:"not null" json:"pickup_lng"`                               // 上车经度
	DropoffAddress string         `gorm:"type:varchar(500)" json:"dropoff_address"`                 // 下车地址
	DropoffLat     float64        `gorm:"not null" json:"dropoff_lat"`                              // 下车纬度
	DropoffLng     float64        `gorm:"not null" json:"dropoff_lng"`                              // 下车经度
	DistanceKM     float64        `gorm:"not null;default:0" json:"distance_km"`                    // 预估里程（公里）
	FareAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fare_amount"` // 预估车费
	CompletedAt    *time.Time     `gorm:"index" json:"completed_at"`                                // 完成时间
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`                                // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Driver *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"` // 关联司机
}

// TableName 指定表名
func (Ride) TableName() string {
	return "rides"
}
