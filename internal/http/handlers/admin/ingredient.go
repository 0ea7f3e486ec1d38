package admin

import (
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ingredientRequest 配料写入请求体，金额字段用字符串避免浮点误差
type ingredientRequest struct {
	Name          string `json:"name"`
	CostPerUnit   string `json:"cost_per_unit"`
	PricePerExtra string `json:"price_per_extra"`
	StockQuantity int    `json:"stock_quantity"`
	MinimumStock  int    `json:"minimum_stock"`
	IsActive      *bool  `json:"is_active"`
	AllergenIDs   []uint `json:"allergen_ids"`
}

func (r ingredientRequest) toInput() (service.IngredientInput, error) {
	input := service.IngredientInput{
		Name:          r.Name,
		StockQuantity: r.StockQuantity,
		MinimumStock:  r.MinimumStock,
		IsActive:      r.IsActive,
		AllergenIDs:   r.AllergenIDs,
	}
	if r.CostPerUnit != "" {
		cost, err := models.NewMoneyFromString(r.CostPerUnit)
		if err != nil {
			return input, err
		}
		input.CostPerUnit = cost
	}
	if r.PricePerExtra != "" {
		price, err := models.NewMoneyFromString(r.PricePerExtra)
		if err != nil {
			return input, err
		}
		input.PricePerExtra = price
	}
	return input, nil
}

// ListIngredients 后台配料列表，含停用配料
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.IngredientService.List(false)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "list ingredients failed")
		return
	}
	response.Success(c, ingredients)
}

// ListLowStockIngredients 低库存配料列表
func (h *Handler) ListLowStockIngredients(c *gin.Context) {
	ingredients, err := h.IngredientService.ListLowStock()
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "list low stock failed")
		return
	}
	response.Success(c, ingredients)
}

// CreateIngredient 创建配料
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid money value", err)
		return
	}
	ingredient, err := h.IngredientService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "create ingredient failed")
		return
	}
	response.Success(c, ingredient)
}

// UpdateIngredient 更新配料
func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid ingredient id", nil)
		return
	}
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid money value", err)
		return
	}
	ingredient, err := h.IngredientService.Update(id, input)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "update ingredient failed")
		return
	}
	response.Success(c, ingredient)
}

// DeleteIngredient 删除配料，仍被配方或购物车引用时拒绝
func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid ingredient id", nil)
		return
	}
	if err := h.IngredientService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "delete ingredient failed")
		return
	}
	response.Success(c, nil)
}

// adjustStockRequest 库存调整请求体，delta 可正可负
type adjustStockRequest struct {
	Delta int `json:"delta"`
}

// AdjustIngredientStock 调整配料库存，结果不低于零
func (h *Handler) AdjustIngredientStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid ingredient id", nil)
		return
	}
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	ingredient, err := h.IngredientService.AdjustStock(id, req.Delta)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "adjust stock failed")
		return
	}
	response.Success(c, ingredient)
}
