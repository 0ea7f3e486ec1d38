package admin

import (
	"strconv"
	"time"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

const orderTimeLayout = time.RFC3339

// ListOrders 后台订单列表，支持状态、订单号、邮箱与时间范围筛选
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	filter := repository.OrderListFilter{
		Status:      c.Query("status"),
		OrderNumber: c.Query("order_number"),
		GuestEmail:  c.Query("guest_email"),
		Page:        page,
		PageSize:    pageSize,
	}
	if raw := c.Query("created_from"); raw != "" {
		parsed, err := time.Parse(orderTimeLayout, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid created_from, expect RFC3339", err)
			return
		}
		filter.CreatedFrom = &parsed
	}
	if raw := c.Query("created_to"); raw != "" {
		parsed, err := time.Parse(orderTimeLayout, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid created_to, expect RFC3339", err)
			return
		}
		filter.CreatedTo = &parsed
	}
	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "list orders failed")
		return
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// GetOrder 后台订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetForAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "get order failed")
		return
	}
	response.Success(c, order)
}

// updateOrderStatusRequest 订单状态流转请求体
type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus 推进订单状态，非法流转被拒绝
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "update order status failed")
		return
	}
	response.Success(c, order)
}

// updateItemPreparationRequest 订单项备餐状态请求体
type updateItemPreparationRequest struct {
	Status string `json:"status"`
}

// UpdateOrderItemPreparation 推进订单项备餐状态
func (h *Handler) UpdateOrderItemPreparation(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order item id", nil)
		return
	}
	var req updateItemPreparationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	item, err := h.OrderService.UpdateItemPreparation(orderID, itemID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "update preparation failed")
		return
	}
	response.Success(c, item)
}
