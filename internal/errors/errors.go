package errors

import "fmt"

// Validation detail codes.
const (
	CodeRequired = "REQUIRED"
	CodeInvalid  = "INVALID"
)

// Business rule violation codes.
const (
	CodeProductNotFound   = "PRODUCT_NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// RuleViolation is one per-item business failure (missing product,
// insufficient stock). A BusinessRuleError carries every violation found
// so a caller can fix all of them in one retry.
type RuleViolation struct {
	ProductID int    `json:"product_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type BusinessRuleError struct {
	Message    string
	Violations []RuleViolation
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func NewBusinessRuleError(message string, violations ...RuleViolation) *BusinessRuleError {
	return &BusinessRuleError{
		Message:    message,
		Violations: violations,
	}
}

func IsBusinessRuleError(err error) (*BusinessRuleError, bool) {
	if bre, ok := err.(*BusinessRuleError); ok {
		return bre, true
	}
	return nil, false
}

type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	if de, ok := err.(*DeadlockError); ok {
		return de, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	if ie, ok := err.(*InternalError); ok {
		return ie, true
	}
	return nil, false
}
