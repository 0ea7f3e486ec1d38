package admin

import (
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// pizzaSizeRequest 尺寸写入请求体
type pizzaSizeRequest struct {
	Name            string `json:"name"`
	DiameterCM      int    `json:"diameter_cm"`
	PriceMultiplier string `json:"price_multiplier"`
	IsActive        *bool  `json:"is_active"`
}

func (r pizzaSizeRequest) toInput() (service.PizzaSizeInput, error) {
	input := service.PizzaSizeInput{
		Name:       r.Name,
		DiameterCM: r.DiameterCM,
		IsActive:   r.IsActive,
	}
	if r.PriceMultiplier != "" {
		multiplier, err := decimal.NewFromString(r.PriceMultiplier)
		if err != nil {
			return input, err
		}
		input.PriceMultiplier = multiplier
	}
	return input, nil
}

// ListSizes 后台尺寸列表，含停用尺寸
func (h *Handler) ListSizes(c *gin.Context) {
	sizes, err := h.PizzaSizeService.List(false)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "list sizes failed")
		return
	}
	response.Success(c, sizes)
}

// CreateSize 创建尺寸
func (h *Handler) CreateSize(c *gin.Context) {
	var req pizzaSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price multiplier", err)
		return
	}
	size, err := h.PizzaSizeService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "create size failed")
		return
	}
	response.Success(c, size)
}

// UpdateSize 更新尺寸
func (h *Handler) UpdateSize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid size id", nil)
		return
	}
	var req pizzaSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price multiplier", err)
		return
	}
	size, err := h.PizzaSizeService.Update(id, input)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "update size failed")
		return
	}
	response.Success(c, size)
}

// DeleteSize 删除尺寸，仍被购物车引用时拒绝
func (h *Handler) DeleteSize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid size id", nil)
		return
	}
	if err := h.PizzaSizeService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "delete size failed")
		return
	}
	response.Success(c, nil)
}
