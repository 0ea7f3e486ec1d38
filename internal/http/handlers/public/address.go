package public

import (
	"strconv"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// addressRequest 地址请求体
type addressRequest struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Floor      string `json:"floor"`
	Notes      string `json:"notes"`
	IsDefault  bool   `json:"is_default"`
}

func (r addressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Label:      r.Label,
		Street:     r.Street,
		City:       r.City,
		PostalCode: r.PostalCode,
		Floor:      r.Floor,
		Notes:      r.Notes,
		IsDefault:  r.IsDefault,
	}
}

// ListAddresses 当前用户地址列表，默认地址排最前
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	addresses, err := h.AddressService.List(userID)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "list addresses failed")
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 创建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	address, err := h.AddressService.Create(userID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "create address failed")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	address, err := h.AddressService.Update(userID, uint(addressID), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "update address failed")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	if err := h.AddressService.Delete(userID, uint(addressID)); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "delete address failed")
		return
	}
	response.Success(c, nil)
}
