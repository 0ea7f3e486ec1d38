package admin

import (
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// allergenRequest 过敏原写入请求体
type allergenRequest struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// CreateAllergen 创建过敏原
func (h *Handler) CreateAllergen(c *gin.Context) {
	var req allergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	allergen, err := h.AllergenService.Create(service.AllergenInput{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "create allergen failed")
		return
	}
	response.Success(c, allergen)
}

// UpdateAllergen 更新过敏原
func (h *Handler) UpdateAllergen(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid allergen id", nil)
		return
	}
	var req allergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	allergen, err := h.AllergenService.Update(id, service.AllergenInput{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "update allergen failed")
		return
	}
	response.Success(c, allergen)
}

// DeleteAllergen 删除过敏原
func (h *Handler) DeleteAllergen(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid allergen id", nil)
		return
	}
	if err := h.AllergenService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "delete allergen failed")
		return
	}
	response.Success(c, nil)
}
