package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（电商与生鲜共用，按 Vertical 区分）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Vertical    string         `gorm:"type:varchar(20);not null;index" json:"vertical"`           // 业务线（product/grocery）
	Name        string         `gorm:"not null;index" json:"name"`                                // 名称
	Description string         `gorm:"type:text" json:"description"`                              // 描述
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	StockCount  int            `gorm:"not null;default:0" json:"stock_count"`                     // 库存数量
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Variations []ProductVariation `gorm:"foreignKey:ProductID" json:"variations,omitempty"` // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductVariation 商品规格表
type ProductVariation struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                          // 商品ID
	Name        string         `gorm:"not null" json:"name"`                                      // 规格名称（如颜色/尺寸）
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 规格价格（覆盖商品价格）
	IsActive    bool           `gorm:"default:true" json:"is_active"`                             // 是否可选
	CreatedAt   time.Time      `json:"created_at"`                                                // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (ProductVariation) TableName() string {
	return "product_variations"
}
