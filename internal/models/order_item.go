package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表。
// SnapshotJSON 固化下单时目录项的展示字段，目录后续变更不影响历史订单。
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID      *uint          `gorm:"index" json:"product_id"`                                  // 商品ID
	VariationID    *uint          `gorm:"index" json:"variation_id"`                                // 商品规格ID
	DishID         *uint          `gorm:"index" json:"dish_id"`                                     // 菜品ID
	SnapshotJSON   JSON           `gorm:"type:json;not null" json:"snapshot"`                       // 目录项快照
	Customizations StringArray    `gorm:"type:json" json:"customizations"`                          // 定制选项快照
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Quantity       int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
