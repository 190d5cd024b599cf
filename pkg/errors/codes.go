package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes follow the "<MODULE>_<NNN>" convention; the module prefix is used as a
// metric label and the numeric suffix is stable across releases.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_003"
	ErrCodeTimeout         ErrorCode = "COMMON_004"
	ErrCodeValidation      ErrorCode = "COMMON_005"
	ErrCodeSerialization   ErrorCode = "COMMON_006"
	ErrCodeConfig          ErrorCode = "COMMON_007"
	ErrCodeTooManyRequests ErrorCode = "COMMON_008"
)

// Pipeline Error Codes. Input, schema, registry and write failures abort a
// run; parse and descriptor failures are recovered per row or per cell.
const (
	ErrCodeInputNotFound     ErrorCode = "PIPE_001"
	ErrCodeSchemaError       ErrorCode = "PIPE_002"
	ErrCodeRegistryEmpty     ErrorCode = "PIPE_003"
	ErrCodeParseFailure      ErrorCode = "PIPE_004"
	ErrCodeDescriptorFailure ErrorCode = "PIPE_005"
	ErrCodeWriteError        ErrorCode = "PIPE_006"
)

// Infrastructure Error Codes
const (
	ErrCodeCacheError     ErrorCode = "INFRA_001"
	ErrCodeDatabaseError  ErrorCode = "INFRA_002"
	ErrCodeStorageError   ErrorCode = "INFRA_003"
	ErrCodeMessagingError ErrorCode = "INFRA_004"
)

// Short aliases used at call sites.
const (
	CodeOK                = ErrorCode("OK")
	CodeUnknown           = ErrorCode("UNKNOWN")
	CodeInternal          = ErrCodeInternal
	CodeInvalidParam      = ErrCodeBadRequest
	CodeNotFound          = ErrCodeNotFound
	CodeInputNotFound     = ErrCodeInputNotFound
	CodeSchemaError       = ErrCodeSchemaError
	CodeRegistryEmpty     = ErrCodeRegistryEmpty
	CodeParseFailure      = ErrCodeParseFailure
	CodeDescriptorFailure = ErrCodeDescriptorFailure
	CodeWriteError        = ErrCodeWriteError
)

var httpStatusByCode = map[ErrorCode]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
	ErrCodeValidation:        http.StatusUnprocessableEntity,
	ErrCodeSerialization:     http.StatusBadRequest,
	ErrCodeConfig:            http.StatusInternalServerError,
	ErrCodeTooManyRequests:   http.StatusTooManyRequests,
	ErrCodeInputNotFound:     http.StatusNotFound,
	ErrCodeSchemaError:       http.StatusBadRequest,
	ErrCodeRegistryEmpty:     http.StatusInternalServerError,
	ErrCodeParseFailure:      http.StatusUnprocessableEntity,
	ErrCodeDescriptorFailure: http.StatusUnprocessableEntity,
	ErrCodeWriteError:        http.StatusInternalServerError,
	ErrCodeCacheError:        http.StatusServiceUnavailable,
	ErrCodeDatabaseError:     http.StatusServiceUnavailable,
	ErrCodeStorageError:      http.StatusServiceUnavailable,
	ErrCodeMessagingError:    http.StatusServiceUnavailable,
}

var defaultMessages = map[ErrorCode]string{
	ErrCodeInternal:          "internal error",
	ErrCodeBadRequest:        "invalid parameter",
	ErrCodeNotFound:          "resource not found",
	ErrCodeTimeout:           "operation timed out",
	ErrCodeValidation:        "validation failed",
	ErrCodeSerialization:     "serialization failed",
	ErrCodeConfig:            "invalid configuration",
	ErrCodeTooManyRequests:   "too many requests",
	ErrCodeInputNotFound:     "input file not found",
	ErrCodeSchemaError:       "input schema error",
	ErrCodeRegistryEmpty:     "descriptor registry is empty",
	ErrCodeParseFailure:      "structure could not be parsed",
	ErrCodeDescriptorFailure: "descriptor evaluation failed",
	ErrCodeWriteError:        "output could not be written",
	ErrCodeCacheError:        "cache unavailable",
	ErrCodeDatabaseError:     "database unavailable",
	ErrCodeStorageError:      "object storage unavailable",
	ErrCodeMessagingError:    "message broker unavailable",
}

// Process exit statuses for fatal pipeline errors. Anything else exits with 1.
var exitCodes = map[ErrorCode]int{
	ErrCodeInputNotFound: 2,
	ErrCodeSchemaError:   3,
	ErrCodeRegistryEmpty: 4,
	ErrCodeWriteError:    5,
}

// HTTPStatusForCode maps an error code to an HTTP status. Unknown codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if s, ok := httpStatusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the canned message for a code.
func DefaultMessageForCode(code ErrorCode) string {
	if m, ok := defaultMessages[code]; ok {
		return m
	}
	return "unknown error"
}

// ExitCodeForCode returns the process exit status associated with code.
func ExitCodeForCode(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return 1
}

// IsFatal reports whether code aborts a whole pipeline run.
func IsFatal(code ErrorCode) bool {
	switch code {
	case ErrCodeParseFailure, ErrCodeDescriptorFailure:
		return false
	}
	return true
}

// ModuleForCode returns the module prefix of a code, or "UNKNOWN".
func ModuleForCode(code ErrorCode) string {
	s := string(code)
	idx := strings.LastIndex(s, "_")
	if idx <= 0 {
		return "UNKNOWN"
	}
	return s[:idx]
}

//Personal.AI order the ending
