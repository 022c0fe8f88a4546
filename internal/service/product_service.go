package service

import (
	"strings"
	"time"

	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Vertical    string
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	StockCount  int
	IsActive    *bool
	SortOrder   int
}

// ProductService 商品目录服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProduct 获取商品详情
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	vertical := strings.ToLower(strings.TrimSpace(input.Vertical))
	if vertical != constants.CartTypeProduct && vertical != constants.CartTypeGrocery {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	product := &models.Product{
		Vertical:    vertical,
		Name:        name,
		Description: input.Description,
		PriceAmount: models.NewMoneyFromDecimal(input.Price),
		Images:      models.StringArray(input.Images),
		StockCount:  input.StockCount,
		IsActive:    true,
		SortOrder:   input.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if !input.Price.IsZero() || input.Price.IsNegative() {
		if input.Price.IsNegative() {
			return nil, ErrInvalidInput
		}
		product.PriceAmount = models.NewMoneyFromDecimal(input.Price)
	}
	if input.Images != nil {
		product.Images = models.StringArray(input.Images)
	}
	if input.StockCount >= 0 {
		product.StockCount = input.StockCount
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.SortOrder = input.SortOrder
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}
