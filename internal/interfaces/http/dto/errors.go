package dto

import (
	"net/http"
	"strings"
)

// Stable error codes exposed on the API, ERR_<CATEGORY>_<DETAIL>.
// Domain-level codes are translated into these via NormalizeErrorCode
// before they reach a response.
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	ErrCodeValidationRange    = "ERR_VALIDATION_RANGE"
	ErrCodeValidationLength   = "ERR_VALIDATION_LENGTH"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeBusinessRule        = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock   = "ERR_INSUFFICIENT_STOCK"
	ErrCodeInsufficientBalance = "ERR_INSUFFICIENT_BALANCE"

	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"

	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps every API error code to its HTTP status.
// Validation and input problems are 400, business rule violations 422.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidJSON:        http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:   http.StatusUnprocessableEntity,
	ErrCodeInsufficientBalance: http.StatusUnprocessableEntity,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus resolves the HTTP status for an error code, defaulting
// to 500 for codes the map does not know.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"INSUFFICIENT_BALANCE": ErrCodeInsufficientBalance,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Not found
	"USER_NOT_FOUND":     ErrCodeNotFound,
	"CATEGORY_NOT_FOUND": ErrCodeNotFound,
	"PARENT_NOT_FOUND":   ErrCodeNotFound,
	"PRODUCT_NOT_FOUND":  ErrCodeNotFound,
	"VARIANT_NOT_FOUND":  ErrCodeNotFound,
	"IMAGE_NOT_FOUND":    ErrCodeNotFound,
	"REVIEW_NOT_FOUND":   ErrCodeNotFound,
	"CART_NOT_FOUND":     ErrCodeNotFound,
	"ITEM_NOT_FOUND":     ErrCodeNotFound,
	"ORDER_NOT_FOUND":    ErrCodeNotFound,

	// Conflicts
	"USERNAME_TAKEN":    ErrCodeAlreadyExists,
	"EMAIL_TAKEN":       ErrCodeAlreadyExists,
	"SKU_TAKEN":         ErrCodeAlreadyExists,
	"SLUG_TAKEN":        ErrCodeAlreadyExists,
	"VARIANT_EXISTS":    ErrCodeAlreadyExists,
	"ALREADY_REVIEWED":  ErrCodeAlreadyExists,
	"DUPLICATE_REQUEST": ErrCodeConflict,

	// Authentication
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_REVOKED":       ErrCodeTokenInvalid,
	"TOKEN_ERROR":         ErrCodeTokenInvalid,
	"INVALID_RESET_TOKEN": ErrCodeTokenInvalid,
	"ACCOUNT_LOCKED":      ErrCodeForbidden,
	"ACCOUNT_DEACTIVATED": ErrCodeForbidden,
	"ACCOUNT_INACTIVE":    ErrCodeForbidden,

	// Business rules
	"EMPTY_CART":             ErrCodeBusinessRule,
	"PRODUCT_UNAVAILABLE":    ErrCodeBusinessRule,
	"VARIANT_UNAVAILABLE":    ErrCodeBusinessRule,
	"CATEGORY_HAS_CHILDREN":  ErrCodeBusinessRule,
	"CATEGORY_HAS_PRODUCTS":  ErrCodeBusinessRule,
	"UPLOAD_INCOMPLETE":      ErrCodeBusinessRule,
	"UNSUPPORTED_MEDIA_TYPE": ErrCodeInvalidInput,
	"CANNOT_CANCEL":          ErrCodeInvalidState,
	"CANNOT_UPDATE":          ErrCodeInvalidState,
	"CANNOT_REFUND":          ErrCodeInvalidState,
	"ALREADY_PAID":           ErrCodeInvalidState,
	"ALREADY_APPROVED":       ErrCodeInvalidState,
	"INVALID_STATUS":         ErrCodeInvalidInput,
	"PDF_DISABLED":           ErrCodeBusinessRule,
	"RENDER_FAILED":          ErrCodeInternal,
	"STORAGE_ERROR":          ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	// Domain aggregates report field problems as INVALID_<FIELD>
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeInvalidInput
	}
	return code
}
