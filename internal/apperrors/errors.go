package apperrors

// =============================================================================
// Error Codes
// =============================================================================

type ErrorCode string

const (
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
	ErrorCodeValidationError ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeConflict        ErrorCode = "CONFLICT"
	ErrorCodeWorkflowBusy    ErrorCode = "WORKFLOW_BUSY"
	ErrorCodeActuatorFault   ErrorCode = "ACTUATOR_FAULT"
	ErrorCodeDeviceNotFound  ErrorCode = "DEVICE_NOT_FOUND"
	ErrorCodeNoRunsYet       ErrorCode = "NO_RUNS_YET"
)

// ErrorType categorizes errors following Stripe API conventions.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates invalid parameters, missing required fields, etc.
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	// ErrorTypeAPIError indicates an internal API error.
	ErrorTypeAPIError ErrorType = "api_error"
)

// ErrorBody is the serialized error payload.
// Format: {"type": "invalid_request_error", "code": "NOT_FOUND", "message": "..."}
type ErrorBody struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// AppError is the base error type for HTTP responses.
type AppError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    map[string]any
}

func (err *AppError) Error() string {
	return err.Message
}

// ErrorBody returns the error in wire format.
func (err *AppError) ErrorBody() ErrorBody {
	errType := ErrorTypeAPIError
	if err.StatusCode >= 400 && err.StatusCode < 500 {
		errType = ErrorTypeInvalidRequest
	}

	return ErrorBody{
		Type:    errType,
		Code:    string(err.Code),
		Message: err.Message,
	}
}

func NewAppError(code ErrorCode, message string, statusCode int, details map[string]any) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

func NewValidationError(message string, details map[string]any) *AppError {
	return NewAppError(ErrorCodeValidationError, message, 400, details)
}

func NewNotFoundError(message string, details map[string]any) *AppError {
	return NewAppError(ErrorCodeNotFound, message, 404, details)
}

func NewConflictError(message string, details map[string]any) *AppError {
	return NewAppError(ErrorCodeConflict, message, 409, details)
}

// NewWorkflowBusyError reports that an activation is already in flight.
func NewWorkflowBusyError() *AppError {
	return NewAppError(ErrorCodeWorkflowBusy, "Activation already in progress", 409, nil)
}

func NewInternalError(message string) *AppError {
	return NewAppError(ErrorCodeInternalError, message, 500, nil)
}

// EnsureAppError converts an arbitrary error into an AppError.
func EnsureAppError(err error) *AppError {
	if err == nil {
		return NewInternalError("Unknown error")
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError("Internal server error")
}
