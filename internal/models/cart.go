package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车聚合（每用户每类型最多一个非终态购物车）
type Cart struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID         uint           `gorm:"not null;uniqueIndex:idx_cart_user_type" json:"user_id"`       // 用户ID
	Type           string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_cart_user_type" json:"type"` // 购物车类型（product/food/grocery）
	Status         string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`      // 状态（active/empty/abandoned/converted）
	RestaurantID   *uint          `gorm:"index" json:"restaurant_id"`                                   // 餐厅绑定（仅食品购物车）
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	DeliveryFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`    // 配送费
	TaxAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`      // 税费
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应付总额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
