package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant 餐厅表
type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"not null;index" json:"name"`                                // 名称
	Description string         `gorm:"type:text" json:"description"`                              // 描述
	Address     string         `gorm:"type:varchar(500)" json:"address"`                          // 地址
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	DeliveryFee Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"` // 配送费
	IsOpen      bool           `gorm:"default:true;index" json:"is_open"`                         // 是否营业
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Dishes []Dish `gorm:"foreignKey:RestaurantID" json:"dishes,omitempty"` // 菜品列表
}

// TableName 指定表名
func (Restaurant) TableName() string {
	return "restaurants"
}

// Dish 菜品表
type Dish struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	RestaurantID uint           `gorm:"index;not null" json:"restaurant_id"`                       // 餐厅ID
	Name         string         `gorm:"not null;index" json:"name"`                                // 名称
	Description  string         `gorm:"type:text" json:"description"`                              // 描述
	PriceAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 基础价格
	Images       StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	OptionsJSON  JSON           `gorm:"type:json" json:"options"`                                  // 定制选项（选项名 -> 加价金额）
	IsAvailable  bool           `gorm:"default:true;index" json:"is_available"`                    // 是否可售
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"` // 关联餐厅
}

// TableName 指定表名
func (Dish) TableName() string {
	return "dishes"
}
