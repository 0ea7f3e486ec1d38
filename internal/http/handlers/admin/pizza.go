package admin

import (
	"strconv"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// pizzaIngredientRequest 披萨配方行
type pizzaIngredientRequest struct {
	IngredientID uint   `json:"ingredient_id"`
	Quantity     string `json:"quantity"`
	IsRemovable  *bool  `json:"is_removable"`
}

// pizzaRequest 披萨写入请求体
type pizzaRequest struct {
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	CategoryID   uint                     `json:"category_id"`
	BasePrice    string                   `json:"base_price"`
	ImageURL     string                   `json:"image_url"`
	IsActive     *bool                    `json:"is_active"`
	IsFeatured   *bool                    `json:"is_featured"`
	IsVegetarian *bool                    `json:"is_vegetarian"`
	IsVegan      *bool                    `json:"is_vegan"`
	IsSpicy      *bool                    `json:"is_spicy"`
	SortOrder    int                      `json:"sort_order"`
	Ingredients  []pizzaIngredientRequest `json:"ingredients"`
}

func (r pizzaRequest) toInput() (service.PizzaInput, error) {
	input := service.PizzaInput{
		Name:         r.Name,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		ImageURL:     r.ImageURL,
		IsActive:     r.IsActive,
		IsFeatured:   r.IsFeatured,
		IsVegetarian: r.IsVegetarian,
		IsVegan:      r.IsVegan,
		IsSpicy:      r.IsSpicy,
		SortOrder:    r.SortOrder,
	}
	if r.BasePrice != "" {
		price, err := models.NewMoneyFromString(r.BasePrice)
		if err != nil {
			return input, err
		}
		input.BasePrice = price
	}
	for _, row := range r.Ingredients {
		item := service.PizzaIngredientInput{
			IngredientID: row.IngredientID,
			IsRemovable:  row.IsRemovable,
		}
		if row.Quantity != "" {
			quantity, err := decimal.NewFromString(row.Quantity)
			if err != nil {
				return input, err
			}
			item.Quantity = quantity
		}
		input.Ingredients = append(input.Ingredients, item)
	}
	return input, nil
}

// ListPizzas 后台披萨列表，含下架披萨
func (h *Handler) ListPizzas(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	filter := repository.PizzaListFilter{
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}
	if categoryID, ok := parseQueryUint(c, "category_id"); ok {
		filter.CategoryID = categoryID
	}
	pizzas, total, err := h.PizzaService.List(filter)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "list pizzas failed")
		return
	}
	response.SuccessWithPage(c, pizzas, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// CreatePizza 创建披萨
func (h *Handler) CreatePizza(c *gin.Context) {
	var req pizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid numeric value", err)
		return
	}
	pizza, err := h.PizzaService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "create pizza failed")
		return
	}
	response.Success(c, pizza)
}

// UpdatePizza 更新披萨，配方整体替换
func (h *Handler) UpdatePizza(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid pizza id", nil)
		return
	}
	var req pizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid numeric value", err)
		return
	}
	pizza, err := h.PizzaService.Update(id, input)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "update pizza failed")
		return
	}
	response.Success(c, pizza)
}

// DeletePizza 删除披萨，仍被购物车引用时拒绝
func (h *Handler) DeletePizza(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid pizza id", nil)
		return
	}
	if err := h.PizzaService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "delete pizza failed")
		return
	}
	response.Success(c, nil)
}
