package service

import "errors"

// 服务层统一错误，处理器按 errors.Is 映射到响应码
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category has pizzas or children")
	ErrAllergenNotFound   = errors.New("allergen not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientInUse    = errors.New("ingredient referenced by recipes or carts")
	ErrPizzaNotFound      = errors.New("pizza not found")
	ErrPizzaNotAvailable  = errors.New("pizza not available")
	ErrSizeNotFound       = errors.New("size not found")
	ErrSizeNotAvailable   = errors.New("size not available")
	ErrPizzaInUse         = errors.New("pizza referenced by orders")
	ErrSizeInUse          = errors.New("size referenced by carts or orders")
	ErrSlugConflict       = errors.New("slug conflict")

	ErrCartNotFound           = errors.New("cart not found")
	ErrCartItemNotFound       = errors.New("cart item not found")
	ErrCartEmpty              = errors.New("cart is empty")
	ErrCartConflict           = errors.New("cart already exists for user")
	ErrIngredientOverlap      = errors.New("ingredient both added and removed")
	ErrIngredientNotRemovable = errors.New("ingredient not removable for pizza")

	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderFetchFailed     = errors.New("order fetch failed")
	ErrOrderUpdateFailed    = errors.New("order update failed")
	ErrOrderStatusInvalid   = errors.New("illegal order status transition")
	ErrOrderNumberExhausted = errors.New("order number generation exhausted")
	ErrOrderItemNotFound    = errors.New("order item not found")
	ErrPrepStatusInvalid    = errors.New("illegal preparation status transition")

	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentStatusInvalid = errors.New("illegal payment status transition")
	ErrPaymentAmountInvalid = errors.New("payment amount invalid")

	ErrDeliveryNotFound      = errors.New("delivery info not found")
	ErrDeliveryExists        = errors.New("delivery info already exists")
	ErrDeliveryStatusInvalid = errors.New("illegal delivery status transition")
	ErrRatingOutOfRange      = errors.New("rating out of range")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password too weak")
	ErrAddressNotFound    = errors.New("address not found")
	ErrAddressLabelTaken  = errors.New("address label already used")
	ErrTooManyAttempts    = errors.New("too many attempts")
)
