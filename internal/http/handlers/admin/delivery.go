package admin

import (
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// assignDriverRequest 指派骑手请求体
type assignDriverRequest struct {
	DriverName  string `json:"driver_name"`
	DriverPhone string `json:"driver_phone"`
	Notes       string `json:"notes"`
}

// AssignDriver 为外送订单指派骑手
func (h *Handler) AssignDriver(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req assignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	delivery, err := h.DeliveryService.AssignDriver(service.AssignDriverInput{
		OrderID:     orderID,
		DriverName:  req.DriverName,
		DriverPhone: req.DriverPhone,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, deliveryAdminErrorRules, response.CodeInternal, "assign driver failed")
		return
	}
	response.Success(c, delivery)
}

// updateDeliveryStatusRequest 配送状态请求体
type updateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDeliveryStatus 推进配送状态
func (h *Handler) UpdateDeliveryStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req updateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	delivery, err := h.DeliveryService.UpdateStatus(orderID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, deliveryAdminErrorRules, response.CodeInternal, "update delivery status failed")
		return
	}
	response.Success(c, delivery)
}

// updateLocationRequest 骑手位置上报请求体
type updateLocationRequest struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// UpdateDeliveryLocation 更新骑手位置，仅配送途中可上报
func (h *Handler) UpdateDeliveryLocation(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	latitude, err := decimal.NewFromString(req.Latitude)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid latitude", err)
		return
	}
	longitude, err := decimal.NewFromString(req.Longitude)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid longitude", err)
		return
	}
	delivery, err := h.DeliveryService.UpdateLocation(orderID, latitude, longitude)
	if err != nil {
		respondWithMappedError(c, err, deliveryAdminErrorRules, response.CodeInternal, "update location failed")
		return
	}
	response.Success(c, delivery)
}
