package public

import (
	"strconv"
	"strings"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// resolveOwnedOrder 校验订单归属。登录用户查自己的订单，游客凭下单邮箱查询。
func (h *Handler) resolveOwnedOrder(c *gin.Context, orderID uint, guestEmail string) (*models.Order, error) {
	if owner := shared.ResolveCartOwner(c); owner.UserID != 0 {
		return h.OrderService.GetByIDAndUser(orderID, owner.UserID)
	}
	order, err := h.OrderService.GetForAdmin(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != nil {
		return nil, service.ErrOrderNotFound
	}
	if order.GuestEmail == "" || !strings.EqualFold(order.GuestEmail, strings.TrimSpace(guestEmail)) {
		return nil, service.ErrOrderNotFound
	}
	return order, nil
}

// createPaymentRequest 创建支付请求体
type createPaymentRequest struct {
	OrderID    uint   `json:"order_id"`
	Method     string `json:"method"`
	Amount     string `json:"amount"`
	GuestEmail string `json:"guest_email"`
}

// CreatePayment 为订单发起支付
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if req.OrderID == 0 {
		respondError(c, response.CodeBadRequest, "order id required", nil)
		return
	}
	if _, err := h.resolveOwnedOrder(c, req.OrderID, req.GuestEmail); err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "create payment failed")
		return
	}
	var amount models.Money
	if req.Amount != "" {
		parsed, err := models.NewMoneyFromString(req.Amount)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid amount", err)
			return
		}
		amount = parsed
	}
	payment, err := h.PaymentService.Create(service.CreatePaymentInput{
		OrderID: req.OrderID,
		Method:  req.Method,
		Amount:  amount,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "create payment failed")
		return
	}
	response.Success(c, payment)
}

// ListOrderPayments 订单支付记录
func (h *Handler) ListOrderPayments(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	if _, err := h.resolveOwnedOrder(c, uint(orderID), c.Query("guest_email")); err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "list payments failed")
		return
	}
	payments, err := h.PaymentService.ListByOrder(uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "list payments failed")
		return
	}
	response.Success(c, payments)
}
