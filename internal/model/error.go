package model

// Standard error codes for API responses
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeProcessor   = "PROCESSOR_ERROR"
	ErrCodePersistence = "PERSISTENCE_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DomainError carries a machine-readable code alongside a human-readable
// message. Every error surfaced by the checkout flow is one of these or
// wraps one.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WrapDomainError creates a domain error wrapping an underlying cause.
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Common domain errors
var (
	ErrNoOrderItems          = NewDomainError(ErrCodeValidation, "No order items")
	ErrInvalidShippingAddr   = NewDomainError(ErrCodeValidation, "Invalid shipping address")
	ErrPaymentMethodRequired = NewDomainError(ErrCodeValidation, "Payment method is required")
	ErrInvalidQuantity       = NewDomainError(ErrCodeValidation, "Quantity must be a positive integer")
	ErrPhoneNotFound         = NewDomainError(ErrCodeNotFound, "One or more phones not found")
)
