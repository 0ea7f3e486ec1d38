package admin

import (
	"errors"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var catalogAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrSlugConflict, code: response.CodeConflict, msg: "slug conflict, rename and retry"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "category not found"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, msg: "category still referenced"},
	{target: service.ErrAllergenNotFound, code: response.CodeNotFound, msg: "allergen not found"},
	{target: service.ErrIngredientNotFound, code: response.CodeNotFound, msg: "ingredient not found"},
	{target: service.ErrIngredientInUse, code: response.CodeConflict, msg: "ingredient still referenced"},
	{target: service.ErrSizeNotFound, code: response.CodeNotFound, msg: "size not found"},
	{target: service.ErrSizeInUse, code: response.CodeConflict, msg: "size still referenced"},
	{target: service.ErrPizzaNotFound, code: response.CodeNotFound, msg: "pizza not found"},
	{target: service.ErrPizzaNotAvailable, code: response.CodeConflict, msg: "pizza still referenced"},
	{target: service.ErrPizzaInUse, code: response.CodeConflict, msg: "pizza still referenced"},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderItemNotFound, code: response.CodeNotFound, msg: "order item not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict, msg: "illegal status transition"},
	{target: service.ErrPrepStatusInvalid, code: response.CodeConflict, msg: "illegal preparation status transition"},
	{target: service.ErrOrderUpdateFailed, code: response.CodeInternal, msg: "order update failed"},
}

var paymentAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeConflict, msg: "illegal payment status transition"},
}

var deliveryAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict, msg: "order not ready for delivery"},
	{target: service.ErrDeliveryNotFound, code: response.CodeNotFound, msg: "delivery info not found"},
	{target: service.ErrDeliveryExists, code: response.CodeConflict, msg: "driver already assigned"},
	{target: service.ErrDeliveryStatusInvalid, code: response.CodeConflict, msg: "illegal delivery status transition"},
}
