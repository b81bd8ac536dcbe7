package rental

import "fmt"

// Error codes surfaced by the rental session service.
const (
	ErrCodeUnavailable     = "unavailable"
	ErrCodeTimeout         = "timeout"
	ErrCodeBackend         = "backendError"
	ErrCodeValidation      = "validation"
	ErrCodeSessionNotFound = "sessionNotFound"
	ErrCodeVehicleNotFound = "vehicleNotFound"
)

// RentalError is a recoverable domain failure with a stable code.
type RentalError struct {
	Code    string
	Message string
}

func (e *RentalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRentalError builds a RentalError with the given code.
func NewRentalError(code, msg string) error {
	return &RentalError{Code: code, Message: msg}
}

// ErrorCode extracts the rental error code from err, or "" if err is not a
// RentalError.
func ErrorCode(err error) string {
	if re, ok := err.(*RentalError); ok {
		return re.Code
	}
	return ""
}
