package bridgetoken

import (
	"errors"
	"fmt"
)

// ErrorCode represents an issuance or decoding error code
type ErrorCode string

const (
	ErrSigning         ErrorCode = "SIGNING_ERROR"
	ErrInvalidExpiry   ErrorCode = "INVALID_EXPIRY"
	ErrMissingClientID ErrorCode = "MISSING_CLIENT_ID"
	ErrInvalidClientID ErrorCode = "INVALID_CLIENT_ID"
	ErrInvalidFormat   ErrorCode = "INVALID_FORMAT"
	ErrConfigError     ErrorCode = "CONFIG_ERROR"

	// Decoding errors, returned by Parse
	ErrExpired              ErrorCode = "EXPIRED"
	ErrInvalidSignature     ErrorCode = "INVALID_SIGNATURE"
	ErrMalformed            ErrorCode = "MALFORMED"
	ErrUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"
	ErrClaimMismatch        ErrorCode = "CLAIM_MISMATCH"
)

// Error is a coded error returned by every operation of this package
type Error struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *Error) Unwrap() error {
	return e.Internal
}

// NewError creates a new coded error
func NewError(code ErrorCode, message string, internal error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "UNKNOWN"
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "UNKNOWN"
}
