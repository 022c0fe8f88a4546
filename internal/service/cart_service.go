package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/unimart/unimart/internal/config"
	"github.com/unimart/unimart/internal/constants"
	"github.com/unimart/unimart/internal/models"
	"github.com/unimart/unimart/internal/repository"

	"github.com/shopspring/decimal"
)

// AddItemInput 加购输入
type AddItemInput struct {
	UserID         uint
	CartType       string
	ProductID      uint
	VariationID    uint
	DishID         uint
	Customizations []string
	Quantity       int
}

// CartService 购物车服务
type CartService struct {
	cfg            *config.Config
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	dishRepo       repository.DishRepository
	restaurantRepo repository.RestaurantRepository
}

// NewCartService 创建购物车服务
func NewCartService(cfg *config.Config, cartRepo repository.CartRepository, productRepo repository.ProductRepository, dishRepo repository.DishRepository, restaurantRepo repository.RestaurantRepository) *CartService {
	return &CartService{
		cfg:            cfg,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		dishRepo:       dishRepo,
		restaurantRepo: restaurantRepo,
	}
}

// GetCart 获取用户购物车，不存在时返回空壳
func (s *CartService) GetCart(userID uint, cartType string) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if !isCartTypeSupported(cartType) {
		return nil, ErrCartTypeInvalid
	}
	cart, err := s.cartRepo.GetByUserAndType(userID, cartType)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &models.Cart{
			UserID: userID,
			Type:   cartType,
			Status: constants.CartStatusEmpty,
			Items:  []models.CartItem{},
		}, nil
	}
	return cart, nil
}

// AddItem 加购：同一目录项与定制组合只累加数量
func (s *CartService) AddItem(input AddItemInput) (*models.Cart, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if !isCartTypeSupported(input.CartType) {
		return nil, ErrCartTypeInvalid
	}
	if input.Quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	cart, err := s.cartRepo.GetByUserAndType(input.UserID, input.CartType)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{
			UserID:    input.UserID,
			Type:      input.CartType,
			Status:    constants.CartStatusActive,
			CreatedAt: time.Now(),
		}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}

	var (
		itemKey   string
		unitPrice models.Money
		productID *uint
		variantID *uint
		dishID    *uint
	)

	if input.CartType == constants.CartTypeFood {
		dish, err := s.dishRepo.GetByID(input.DishID)
		if err != nil {
			return nil, err
		}
		if dish == nil {
			return nil, ErrNotFound
		}
		if !dish.IsAvailable {
			return nil, ErrDishUnavailable
		}
		if dish.Restaurant != nil && !dish.Restaurant.IsOpen {
			return nil, ErrRestaurantClosed
		}
		// 单餐厅约束：购物车只允许来自同一家餐厅的菜品
		if cart.RestaurantID != nil && *cart.RestaurantID != dish.RestaurantID {
			return nil, ErrRestaurantMismatch
		}
		if cart.RestaurantID == nil {
			rid := dish.RestaurantID
			cart.RestaurantID = &rid
			// refreshCart 会重新读库，绑定必须先落库
			if err := s.cartRepo.Update(cart); err != nil {
				return nil, err
			}
		}

		unitPrice = dishUnitPrice(dish, input.Customizations)
		itemKey = buildDishItemKey(dish.ID, input.Customizations)
		id := dish.ID
		dishID = &id
	} else {
		product, err := s.productRepo.GetByID(input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrNotFound
		}
		if !product.IsActive {
			return nil, ErrProductNotAvailable
		}
		// 电商与生鲜共用商品表，按业务线隔离
		if product.Vertical != input.CartType {
			return nil, ErrProductNotAvailable
		}

		unitPrice = product.PriceAmount
		if input.VariationID > 0 {
			variation, err := s.productRepo.GetVariationByID(input.VariationID)
			if err != nil {
				return nil, err
			}
			if variation == nil || variation.ProductID != product.ID || !variation.IsActive {
				return nil, ErrProductNotAvailable
			}
			unitPrice = variation.PriceAmount
			vid := variation.ID
			variantID = &vid
		}
		itemKey = buildProductItemKey(product.ID, input.VariationID)
		pid := product.ID
		productID = &pid
	}

	existing, err := s.cartRepo.GetItem(cart.ID, itemKey)
	if err != nil {
		return nil, err
	}

	newQuantity := input.Quantity
	if existing != nil {
		newQuantity = existing.Quantity + input.Quantity
	}
	if err := s.checkQuantityLimit(input.CartType, newQuantity); err != nil {
		return nil, err
	}
	if productID != nil {
		product, err := s.productRepo.GetByID(*productID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.StockCount < newQuantity {
			return nil, ErrOutOfStock
		}
	}

	now := time.Now()
	if existing != nil {
		existing.Quantity = newQuantity
		existing.UnitPrice = unitPrice
		existing.TotalPrice = models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(newQuantity))))
		existing.UpdatedAt = now
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:         cart.ID,
			ItemKey:        itemKey,
			ProductID:      productID,
			VariationID:    variantID,
			DishID:         dishID,
			Customizations: models.StringArray(normalizeCustomizations(input.Customizations)),
			Quantity:       newQuantity,
			UnitPrice:      unitPrice,
			TotalPrice:     models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(newQuantity)))),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.refreshCart(cart.ID)
}

// UpdateQuantity 修改购物车项数量
func (s *CartService) UpdateQuantity(userID uint, cartType string, itemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}
	if err := s.checkQuantityLimit(cartType, quantity); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserAndType(userID, cartType)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if item.ProductID != nil {
		product, err := s.productRepo.GetByID(*item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.StockCount < quantity {
			return nil, ErrOutOfStock
		}
	}

	item.Quantity = quantity
	item.TotalPrice = models.NewMoneyFromDecimal(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
	item.UpdatedAt = time.Now()
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return s.refreshCart(cart.ID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID uint, cartType string, itemID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserAndType(userID, cartType)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.refreshCart(cart.ID)
}

// Clear 清空购物车：状态归位 empty，餐厅绑定解除
func (s *CartService) Clear(userID uint, cartType string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserAndType(userID, cartType)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return s.GetCart(userID, cartType)
	}
	if err := s.cartRepo.DeleteItems(cart.ID); err != nil {
		return nil, err
	}
	return s.refreshCart(cart.ID)
}

// refreshCart 重新加载并重算购物车合计
func (s *CartService) refreshCart(cartID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrNotFound
	}
	if err := s.recomputeTotals(cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Update(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// recomputeTotals 重算小计、配送费、税费与总额，任何变更后都必须执行
func (s *CartService) recomputeTotals(cart *models.Cart) error {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}

	if len(cart.Items) == 0 {
		cart.Status = constants.CartStatusEmpty
		cart.RestaurantID = nil
		cart.Subtotal = models.NewMoneyFromDecimal(decimal.Zero)
		cart.DeliveryFee = models.NewMoneyFromDecimal(decimal.Zero)
		cart.TaxAmount = models.NewMoneyFromDecimal(decimal.Zero)
		cart.DiscountAmount = models.NewMoneyFromDecimal(decimal.Zero)
		cart.TotalAmount = models.NewMoneyFromDecimal(decimal.Zero)
		cart.UpdatedAt = time.Now()
		return nil
	}

	deliveryFee := decimal.NewFromFloat(s.cfg.Cart.DeliveryFee)
	if cart.Type == constants.CartTypeFood && cart.RestaurantID != nil {
		restaurant, err := s.restaurantRepo.GetByID(*cart.RestaurantID)
		if err != nil {
			return err
		}
		if restaurant != nil {
			deliveryFee = restaurant.DeliveryFee.Decimal
		}
	}
	tax := subtotal.Mul(decimal.NewFromFloat(s.cfg.Cart.TaxRate)).Round(2)
	discount := decimal.Zero
	total := subtotal.Add(deliveryFee).Add(tax).Sub(discount)

	cart.Status = constants.CartStatusActive
	cart.Subtotal = models.NewMoneyFromDecimal(subtotal)
	cart.DeliveryFee = models.NewMoneyFromDecimal(deliveryFee)
	cart.TaxAmount = models.NewMoneyFromDecimal(tax)
	cart.DiscountAmount = models.NewMoneyFromDecimal(discount)
	cart.TotalAmount = models.NewMoneyFromDecimal(total)
	cart.UpdatedAt = time.Now()
	return nil
}

func (s *CartService) checkQuantityLimit(cartType string, quantity int) error {
	if cartType == constants.CartTypeFood {
		return nil
	}
	limit := s.cfg.Cart.MaxQuantityPerItem
	if limit <= 0 {
		limit = constants.ProductCartMaxQuantity
	}
	if quantity > limit {
		return ErrQuantityExceedsLimit
	}
	return nil
}

func isCartTypeSupported(cartType string) bool {
	switch cartType {
	case constants.CartTypeProduct, constants.CartTypeFood, constants.CartTypeGrocery:
		return true
	}
	return false
}

// dishUnitPrice 菜品单价 = 基础价 + 选中定制项加价
func dishUnitPrice(dish *models.Dish, customizations []string) models.Money {
	price := dish.PriceAmount.Decimal
	for _, name := range normalizeCustomizations(customizations) {
		raw, ok := dish.OptionsJSON[name]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			price = price.Add(decimal.NewFromFloat(v))
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				price = price.Add(d)
			}
		}
	}
	return models.NewMoneyFromDecimal(price)
}

func buildProductItemKey(productID, variationID uint) string {
	return fmt.Sprintf("p:%d:v:%d", productID, variationID)
}

func buildDishItemKey(dishID uint, customizations []string) string {
	normalized := normalizeCustomizations(customizations)
	return fmt.Sprintf("d:%d:c:%s", dishID, strings.Join(normalized, ","))
}

// normalizeCustomizations 去重排序，保证相同组合得到相同 key
func normalizeCustomizations(customizations []string) []string {
	seen := map[string]bool{}
	result := make([]string, 0, len(customizations))
	for _, c := range customizations {
		trimmed := strings.TrimSpace(c)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	sort.Strings(result)
	return result
}
