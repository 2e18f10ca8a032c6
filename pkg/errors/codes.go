package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_012"
	ErrCodeExternalService    ErrorCode = "COMMON_013"
	ErrCodeNotImplemented     ErrorCode = "COMMON_014"
)

// Aliases kept for call-site readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeUnauthorized = ErrCodeUnauthorized
	CodeForbidden    = ErrCodeForbidden
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// Analysis Engine Error Codes
const (
	ErrCodeAnalysisFailed       ErrorCode = "ANL_001"
	ErrCodeLanguageUnsupported  ErrorCode = "ANL_002"
	ErrCodeCategoryUnknown      ErrorCode = "ANL_003"
	ErrCodeNoiseCeilingExceeded ErrorCode = "ANL_004"
	ErrCodeResolutionInvariant  ErrorCode = "ANL_005"
)

// Lexicon / Pattern Data Error Codes
const (
	ErrCodeLexiconSourceMissing ErrorCode = "LEX_001"
	ErrCodeLexiconParseFailed   ErrorCode = "LEX_002"
	ErrCodePatternInvalid       ErrorCode = "LEX_003"
	ErrCodeLexiconEmpty         ErrorCode = "LEX_004"
)

// Morphology Backend Error Codes
const (
	ErrCodeBackendUnavailable   ErrorCode = "MOR_001"
	ErrCodeBackendInitFailed    ErrorCode = "MOR_002"
	ErrCodeBackendAnalyzeFailed ErrorCode = "MOR_003"
	ErrCodeDictionaryInvalid    ErrorCode = "MOR_004"
)

// Classifier Gateway Error Codes
const (
	ErrCodeClassifierUnavailable ErrorCode = "CLS_001"
	ErrCodeClassifierTimeout     ErrorCode = "CLS_002"
	ErrCodeClassifierBadResponse ErrorCode = "CLS_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeAnalysisFailed:       http.StatusInternalServerError,
	ErrCodeLanguageUnsupported:  http.StatusOK, // unsupported language is an empty result, not a failure
	ErrCodeCategoryUnknown:      http.StatusNotFound,
	ErrCodeNoiseCeilingExceeded: http.StatusOK,
	ErrCodeResolutionInvariant:  http.StatusInternalServerError,

	ErrCodeLexiconSourceMissing: http.StatusInternalServerError,
	ErrCodeLexiconParseFailed:   http.StatusInternalServerError,
	ErrCodePatternInvalid:       http.StatusInternalServerError,
	ErrCodeLexiconEmpty:         http.StatusInternalServerError,

	ErrCodeBackendUnavailable:   http.StatusServiceUnavailable,
	ErrCodeBackendInitFailed:    http.StatusServiceUnavailable,
	ErrCodeBackendAnalyzeFailed: http.StatusInternalServerError,
	ErrCodeDictionaryInvalid:    http.StatusInternalServerError,

	ErrCodeClassifierUnavailable: http.StatusServiceUnavailable,
	ErrCodeClassifierTimeout:     http.StatusGatewayTimeout,
	ErrCodeClassifierBadResponse: http.StatusBadGateway,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeAnalysisFailed:       "bias analysis failed",
	ErrCodeLanguageUnsupported:  "language not supported for this category",
	ErrCodeCategoryUnknown:      "unknown bias category",
	ErrCodeNoiseCeilingExceeded: "detected spans exceed noise ceiling",
	ErrCodeResolutionInvariant:  "overlap resolution invariant violated",

	ErrCodeLexiconSourceMissing: "pattern data source missing",
	ErrCodeLexiconParseFailed:   "failed to parse pattern data",
	ErrCodePatternInvalid:       "pattern failed to compile",
	ErrCodeLexiconEmpty:         "pattern data source contains no patterns",

	ErrCodeBackendUnavailable:   "morphological backend unavailable",
	ErrCodeBackendInitFailed:    "morphological backend failed to initialize",
	ErrCodeBackendAnalyzeFailed: "morphological analysis failed",
	ErrCodeDictionaryInvalid:    "lemma dictionary invalid",

	ErrCodeClassifierUnavailable: "classifier service unavailable",
	ErrCodeClassifierTimeout:     "classifier service timeout",
	ErrCodeClassifierBadResponse: "classifier returned malformed response",
}

// HTTPStatusForCode returns the HTTP status code mapped to the given ErrorCode,
// defaulting to 500 for unmapped codes.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default human-readable message for a code.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError reports whether the code maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the code maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	return HTTPStatusForCode(code) >= 500
}

// ModuleForCode extracts the module prefix from a code, e.g. "ANL" from
// "ANL_002".  Codes without an underscore return the whole code string.
func ModuleForCode(code ErrorCode) string {
	s := code.String()
	if i := strings.Index(s, "_"); i > 0 {
		return s[:i]
	}
	return s
}
