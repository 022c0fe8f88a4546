package public

import (
	"strings"

	"github.com/unimart/unimart/internal/http/response"
	"github.com/unimart/unimart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 获取购物车（按业务线，?type=product|food|grocery）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartType := strings.TrimSpace(c.DefaultQuery("type", "product"))

	cart, err := h.CartService.GetCart(uid, cartType)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	Type           string   `json:"type" binding:"required"`
	ProductID      uint     `json:"product_id"`
	VariationID    uint     `json:"variation_id"`
	DishID         uint     `json:"dish_id"`
	Customizations []string `json:"customizations"`
	Quantity       int      `json:"quantity" binding:"required"`
}

// AddCartItem 添加购物车项（同规格项自动合并数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	cart, err := h.CartService.AddItem(service.AddItemInput{
		UserID:         uid,
		CartType:       req.Type,
		ProductID:      req.ProductID,
		VariationID:    req.VariationID,
		DishID:         req.DishID,
		Customizations: req.Customizations,
		Quantity:       req.Quantity,
	})
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCartItemRequest 更新购物车项请求
type UpdateCartItemRequest struct {
	Type     string `json:"type" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	cart, err := h.CartService.UpdateQuantity(uid, req.Type, itemID, req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}
	cartType := strings.TrimSpace(c.DefaultQuery("type", "product"))

	cart, err := h.CartService.RemoveItem(uid, cartType, itemID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cartType := strings.TrimSpace(c.DefaultQuery("type", "product"))

	cart, err := h.CartService.Clear(uid, cartType)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}
