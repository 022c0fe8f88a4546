package models

import (
	"time"

	"gorm.io/gorm"
)

// Hotel 酒店表
type Hotel struct {
	ID          uint           `gorm:"primarykey" json:"id"`                // 主键
	Name        string         `gorm:"not null;index" json:"name"`          // 名称
	Description string         `gorm:"type:text" json:"description"`        // 描述
	Address     string         `gorm:"type:varchar(500)" json:"address"`    // 地址
	City        string         `gorm:"type:varchar(100);index" json:"city"` // 城市
	Images      StringArray    `gorm:"type:json" json:"images"`             // 图片数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"` // 是否可订
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间

	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"` // 房型列表
}

// TableName 指定表名
func (Hotel) TableName() string {
	return "hotels"
}

// Room 房型表
type Room struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                        // 主键
	HotelID      uint           `gorm:"index;not null" json:"hotel_id"`                              // 酒店ID
	Name         string         `gorm:"not null" json:"name"`                                        // 房型名称
	Description  string         `gorm:"type:text" json:"description"`                                // 描述
	RatePerNight Money          `gorm:"type:decimal(20,2);not null;default:0" json:"rate_per_night"` // 每晚价格
	Capacity     int            `gorm:"not null;default:2" json:"capacity"`                          // 可住人数
	RoomCount    int            `gorm:"not null;default:1" json:"room_count"`                        // 房间数量
	Images       StringArray    `gorm:"type:json" json:"images"`                                     // 图片数组
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`                         // 是否可订
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"` // 关联酒店
}

// TableName 指定表名
func (Room) TableName() string {
	return "rooms"
}

// Booking 酒店预订表
type Booking struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	BookingNo   string         `gorm:"uniqueIndex;not null" json:"booking_no"`                    // 预订编号
	UserID      uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	RoomID      uint           `gorm:"index;not null" json:"room_id"`                             // 房型ID
	CheckIn     time.Time      `gorm:"index;not null" json:"check_in"`                            // 入住日期
	CheckOut    time.Time      `gorm:"index;not null" json:"check_out"`                           // 退房日期
	Guests      int            `gorm:"not null;default:1" json:"guests"`                          // 入住人数
	Status      string         `gorm:"index;not null;default:'pending'" json:"status"`            // 预订状态
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 总金额（晚数 × 房价）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"` // 关联房型
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}
