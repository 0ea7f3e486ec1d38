package public

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

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "category not found"},
	{target: service.ErrPizzaNotFound, code: response.CodeNotFound, msg: "pizza not found"},
	{target: service.ErrIngredientNotFound, code: response.CodeNotFound, msg: "ingredient not found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid cart input"},
	{target: service.ErrPizzaNotAvailable, code: response.CodeBadRequest, msg: "pizza not available"},
	{target: service.ErrSizeNotAvailable, code: response.CodeBadRequest, msg: "size not available"},
	{target: service.ErrIngredientNotFound, code: response.CodeBadRequest, msg: "ingredient not available"},
	{target: service.ErrIngredientOverlap, code: response.CodeBadRequest, msg: "ingredient cannot be both added and removed"},
	{target: service.ErrIngredientNotRemovable, code: response.CodeBadRequest, msg: "ingredient not removable"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "cart not found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrCartConflict, code: response.CodeConflict, msg: "cart already exists"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid checkout input"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrOrderNumberExhausted, code: response.CodeConflict, msg: "order number generation failed, retry later"},
	{target: service.ErrOrderCreateFailed, code: response.CodeInternal, msg: "order create failed"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderFetchFailed, code: response.CodeInternal, msg: "order fetch failed"},
	{target: service.ErrOrderUpdateFailed, code: response.CodeInternal, msg: "order update failed"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict, msg: "illegal status transition"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid payment input"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict, msg: "order not payable"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeConflict, msg: "illegal payment status transition"},
	{target: service.ErrPaymentAmountInvalid, code: response.CodeBadRequest, msg: "payment amount invalid"},
}

var deliveryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrDeliveryNotFound, code: response.CodeNotFound, msg: "delivery info not found"},
	{target: service.ErrDeliveryStatusInvalid, code: response.CodeConflict, msg: "illegal delivery status transition"},
	{target: service.ErrRatingOutOfRange, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password too weak"},
	{target: service.ErrEmailTaken, code: response.CodeConflict, msg: "email already registered"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid credentials"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account disabled"},
	{target: service.ErrTooManyAttempts, code: response.CodeTooManyRequests, msg: "too many attempts, try later"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "user not found"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid address input"},
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
	{target: service.ErrAddressLabelTaken, code: response.CodeConflict, msg: "address label already used"},
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, msg: "unauthorized"},
}
