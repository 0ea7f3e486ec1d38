package response

// AppError 携带业务码的错误包装，handler 层据此写统一响应。
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// WrapError 用业务码与提示语包装底层错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewError 无底层错误的业务错误
func NewError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
