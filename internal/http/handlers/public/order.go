package public

import (
	"strconv"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/repository"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// checkoutRequest 下单请求体
type checkoutRequest struct {
	OrderType            string `json:"order_type"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryInstructions string `json:"delivery_instructions"`
	Notes                string `json:"notes"`
	GuestEmail           string `json:"guest_email"`
	GuestPhone           string `json:"guest_phone"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	// 未传配送地址时回退到用户默认地址
	if req.DeliveryAddress == "" {
		if userID := c.GetUint("user_id"); userID > 0 {
			if addr, err := h.AddressService.Default(userID); err == nil && addr != nil {
				req.DeliveryAddress = addr.FormatLine()
			}
		}
	}
	order, err := h.OrderService.Checkout(service.CheckoutInput{
		Owner:                shared.ResolveCartOwner(c),
		OrderType:            req.OrderType,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		Notes:                req.Notes,
		GuestEmail:           req.GuestEmail,
		GuestPhone:           req.GuestPhone,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}
	response.Success(c, order)
}

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	filter := repository.OrderListFilter{
		UserID:   userID,
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}
	orders, total, err := h.OrderService.ListByUser(filter)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "list orders failed")
		return
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// GetMyOrder 当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByIDAndUser(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "get order failed")
		return
	}
	response.Success(c, order)
}

// CancelMyOrder 当前用户取消订单
func (h *Handler) CancelMyOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "cancel order failed")
		return
	}
	response.Success(c, order)
}

// TrackOrder 按订单号查询，游客需携带下单邮箱
func (h *Handler) TrackOrder(c *gin.Context) {
	orderNumber := c.Param("number")
	if orderNumber == "" {
		respondError(c, response.CodeBadRequest, "order number required", nil)
		return
	}
	order, err := h.OrderService.TrackByNumber(orderNumber, c.Query("guest_email"))
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "track order failed")
		return
	}
	response.Success(c, order)
}
