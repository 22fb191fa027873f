package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Keystore Errors (KEY_*)
	ErrorCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// Resource Bundle Errors (RESOURCE_*)
	ErrorCodeResourceRead ErrorCode = "RESOURCE_READ_FAILED"
	ErrorCodeInvalidAlias ErrorCode = "RESOURCE_INVALID_ALIAS"

	// Crypto Errors (CRYPTO_*)
	ErrorCodeInvalidKeySize   ErrorCode = "CRYPTO_INVALID_KEY_SIZE"
	ErrorCodeDecryptionFailed ErrorCode = "CRYPTO_DECRYPTION_FAILED"

	// Validation Errors (VALIDATION_*)
	ErrorCodeInvalidURL   ErrorCode = "VALIDATION_INVALID_URL"
	ErrorCodeMissingField ErrorCode = "VALIDATION_MISSING_FIELD"

	// Request Lifecycle Errors (REQUEST_*)
	ErrorCodePreconditionFailed ErrorCode = "REQUEST_PRECONDITION_FAILED"

	// Gateway Errors (GATEWAY_*)
	ErrorCodeInvalidGatewayResponse ErrorCode = "GATEWAY_INVALID_RESPONSE"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsCryptoError checks if an error came out of a symmetric cipher operation
func IsCryptoError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeInvalidKeySize ||
		code == ErrorCodeDecryptionFailed
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeInvalidURL ||
		code == ErrorCodeMissingField
}
