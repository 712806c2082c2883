package httperr

import "errors"

// Caller-facing error codes understood by the HTTP layer.
const (
	CodeValidation         = "validation_error"
	CodeLeadTimeViolation  = "lead_time_violation"
	CodeDateBlocked        = "date_blocked"
	CodeServiceUnavailable = "service_unavailable"
	CodeInvalidTransition  = "invalid_transition"
	CodeNotInProgress      = "appointment_not_in_progress"
	CodeInsufficientStock  = "insufficient_stock"
	CodeNotFound           = "not_found"
	CodeInvalidQuantity    = "invalid_quantity"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func ErrBusinessDetails(code, message string, details map[string]any) error {
	return BusinessError{Code: code, Message: message, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
