package public

import (
	"strconv"

	"github.com/pizzame/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrderDelivery 订单配送信息
func (h *Handler) GetOrderDelivery(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	if _, err := h.resolveOwnedOrder(c, uint(orderID), c.Query("guest_email")); err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, response.CodeInternal, "get delivery failed")
		return
	}
	delivery, err := h.DeliveryService.GetByOrder(uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, response.CodeInternal, "get delivery failed")
		return
	}
	response.Success(c, delivery)
}

// rateDeliveryRequest 配送评分请求体
type rateDeliveryRequest struct {
	Rating     int    `json:"rating"`
	GuestEmail string `json:"guest_email"`
}

// RateOrderDelivery 对已完成的配送评分
func (h *Handler) RateOrderDelivery(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req rateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if _, err := h.resolveOwnedOrder(c, uint(orderID), req.GuestEmail); err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, response.CodeInternal, "rate delivery failed")
		return
	}
	delivery, err := h.DeliveryService.Rate(uint(orderID), req.Rating)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, response.CodeInternal, "rate delivery failed")
		return
	}
	response.Success(c, delivery)
}
