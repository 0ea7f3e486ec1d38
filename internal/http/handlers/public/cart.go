package public

import (
	"context"
	"strconv"
	"time"

	"github.com/pizzame/backend/internal/cache"
	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// cartItemRequest 购物车项请求体
type cartItemRequest struct {
	PizzaID              uint   `json:"pizza_id"`
	SizeID               uint   `json:"size_id"`
	Quantity             int    `json:"quantity"`
	ExtraIngredientIDs   []uint `json:"extra_ingredient_ids"`
	RemovedIngredientIDs []uint `json:"removed_ingredient_ids"`
	SpecialInstructions  string `json:"special_instructions"`
}

func (r cartItemRequest) toInput() service.CartItemInput {
	return service.CartItemInput{
		PizzaID:              r.PizzaID,
		SizeID:               r.SizeID,
		Quantity:             r.Quantity,
		ExtraIngredientIDs:   r.ExtraIngredientIDs,
		RemovedIngredientIDs: r.RemovedIngredientIDs,
		SpecialInstructions:  r.SpecialInstructions,
	}
}

// touchGuestSession 匿名会话续期，响应头回传会话标识
func (h *Handler) touchGuestSession(c *gin.Context, owner service.CartOwner, detail *service.CartDetail) {
	if owner.UserID != 0 || detail == nil || detail.SessionKey == "" {
		return
	}
	c.Header(shared.SessionKeyHeader, detail.SessionKey)
	ttl := time.Duration(h.Config.Order.GuestCartTTLHours) * time.Hour
	if err := cache.TouchGuestCart(context.Background(), detail.SessionKey, ttl); err != nil {
		shared.RequestLog(c).Warnw("guest_cart_touch_failed", "error", err)
	}
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	owner := shared.ResolveCartOwner(c)
	detail, err := h.CartService.Get(owner)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "get cart failed")
		return
	}
	h.touchGuestSession(c, owner, detail)
	response.Success(c, detail)
}

// AddCartItem 添加购物车项
func (h *Handler) AddCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	owner := shared.ResolveCartOwner(c)
	detail, err := h.CartService.AddItem(owner, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "add cart item failed")
		return
	}
	h.touchGuestSession(c, owner, detail)
	response.Success(c, detail)
}

// UpdateCartItem 更新购物车项
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	owner := shared.ResolveCartOwner(c)
	detail, err := h.CartService.UpdateItem(owner, uint(itemID), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "update cart item failed")
		return
	}
	h.touchGuestSession(c, owner, detail)
	response.Success(c, detail)
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	owner := shared.ResolveCartOwner(c)
	detail, err := h.CartService.RemoveItem(owner, uint(itemID))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "remove cart item failed")
		return
	}
	response.Success(c, detail)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	owner := shared.ResolveCartOwner(c)
	if err := h.CartService.Clear(owner); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "clear cart failed")
		return
	}
	response.Success(c, nil)
}
