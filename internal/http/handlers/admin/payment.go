package admin

import (
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// updatePaymentStatusRequest 支付状态流转请求体，网关回执原样落库
type updatePaymentStatusRequest struct {
	Status          string      `json:"status"`
	GatewayResponse models.JSON `json:"gateway_response"`
}

// UpdatePaymentStatus 推进支付状态
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid payment id", nil)
		return
	}
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	payment, err := h.PaymentService.UpdateStatus(paymentID, req.Status, req.GatewayResponse)
	if err != nil {
		respondWithMappedError(c, err, paymentAdminErrorRules, response.CodeInternal, "update payment status failed")
		return
	}
	response.Success(c, payment)
}

// ListOrderPayments 后台订单支付记录
func (h *Handler) ListOrderPayments(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	payments, err := h.PaymentService.ListByOrder(orderID)
	if err != nil {
		respondWithMappedError(c, err, paymentAdminErrorRules, response.CodeInternal, "list payments failed")
		return
	}
	response.Success(c, payments)
}
