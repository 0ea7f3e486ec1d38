package public

import (
	"strconv"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCategories 分类树
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 按 slug 获取分类
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "get category failed")
		return
	}
	response.Success(c, category)
}

// ListPizzas 披萨列表，支持分类、素食、关键词筛选
func (h *Handler) ListPizzas(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	filter := repository.PizzaListFilter{
		OnlyActive: true,
		Keyword:    c.Query("keyword"),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if c.Query("featured") == "true" {
		filter.OnlyFeatured = true
	}
	if raw := c.Query("vegetarian"); raw != "" {
		value := raw == "true"
		filter.Vegetarian = &value
	}
	if raw := c.Query("vegan"); raw != "" {
		value := raw == "true"
		filter.Vegan = &value
	}

	pizzas, total, err := h.PizzaService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list pizzas failed", err)
		return
	}
	response.SuccessWithPage(c, pizzas, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// GetPizza 披萨详情，附各尺寸报价
func (h *Handler) GetPizza(c *gin.Context) {
	pizza, err := h.PizzaService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "get pizza failed")
		return
	}
	options, err := h.PizzaService.PriceOptions(pizza)
	if err != nil {
		respondError(c, response.CodeInternal, "get pizza prices failed", err)
		return
	}
	response.Success(c, gin.H{
		"pizza":  pizza,
		"prices": options,
	})
}

// ListSizes 启用的尺寸列表
func (h *Handler) ListSizes(c *gin.Context) {
	sizes, err := h.PizzaSizeService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "list sizes failed", err)
		return
	}
	response.Success(c, sizes)
}

// ListIngredients 启用的配料列表（加料报价用）
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.IngredientService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "list ingredients failed", err)
		return
	}
	response.Success(c, ingredients)
}

// ListAllergens 过敏原列表
func (h *Handler) ListAllergens(c *gin.Context) {
	allergens, err := h.AllergenService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "list allergens failed", err)
		return
	}
	response.Success(c, allergens)
}
