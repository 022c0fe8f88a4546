package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项。
// (cart_id, item_key) 唯一，item_key 由目录项与规格/定制组合派生，
// 重复加购同一组合只累加数量。
type CartItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CartID         uint           `gorm:"not null;uniqueIndex:idx_cart_item_key" json:"cart_id"`     // 购物车ID
	ItemKey        string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_cart_item_key" json:"-"` // 去重键
	ProductID      *uint          `gorm:"index" json:"product_id"`                                   // 商品ID（product/grocery）
	VariationID    *uint          `gorm:"index" json:"variation_id"`                                 // 商品规格ID
	DishID         *uint          `gorm:"index" json:"dish_id"`                                      // 菜品ID（food）
	Customizations StringArray    `gorm:"type:json" json:"customizations"`                           // 选中的定制选项
	Quantity       int            `gorm:"not null" json:"quantity"`                                  // 数量
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 单价（含定制加价）
	TotalPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 小计
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Dish    *Dish    `gorm:"foreignKey:DishID" json:"dish,omitempty"`       // 关联菜品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
