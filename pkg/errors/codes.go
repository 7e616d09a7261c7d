package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	CodeUnknown            ErrorCode = "COMMON_000"
	CodeInternal           ErrorCode = "COMMON_001"
	CodeInvalidParam       ErrorCode = "COMMON_002"
	CodeUnauthorized       ErrorCode = "COMMON_003"
	CodeForbidden          ErrorCode = "COMMON_004"
	CodeNotFound           ErrorCode = "COMMON_005"
	CodeConflict           ErrorCode = "COMMON_006"
	CodeTooManyRequests    ErrorCode = "COMMON_007"
	CodeServiceUnavailable ErrorCode = "COMMON_008"
	CodeTimeout            ErrorCode = "COMMON_009"
	CodeValidation         ErrorCode = "COMMON_010"
	CodeSerialization      ErrorCode = "COMMON_011"
	CodeDatabaseError      ErrorCode = "COMMON_012"
	CodeCacheError         ErrorCode = "COMMON_013"
	CodeExternalService    ErrorCode = "COMMON_014"
)

// Vocabulary module error codes.
const (
	// CodeVocabularyMissing marks a missing *required* vocabulary resource
	// (the canonical ADR list).  This is a fatal startup condition: without
	// the list no reaction can ever normalize, so there is no degraded mode.
	CodeVocabularyMissing ErrorCode = "VOCAB_001"
	CodeVocabularyParse   ErrorCode = "VOCAB_002"
)

// Normalization / intelligence error codes.
const (
	CodeNERBackendFailed ErrorCode = "NORM_001"
	CodeNERNotConfigured ErrorCode = "NORM_002"
	CodeBackfillFailed   ErrorCode = "NORM_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes for the handler
// layer.  Codes absent from the map fall back to 500.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	CodeInternal:           http.StatusInternalServerError,
	CodeInvalidParam:       http.StatusBadRequest,
	CodeValidation:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeTooManyRequests:    http.StatusTooManyRequests,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeTimeout:            http.StatusGatewayTimeout,
	CodeDatabaseError:      http.StatusInternalServerError,
	CodeCacheError:         http.StatusInternalServerError,
	CodeExternalService:    http.StatusBadGateway,
	CodeVocabularyMissing:  http.StatusInternalServerError,
	CodeVocabularyParse:    http.StatusInternalServerError,
	CodeNERBackendFailed:   http.StatusBadGateway,
	CodeNERNotConfigured:   http.StatusServiceUnavailable,
	CodeBackfillFailed:     http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for the code, defaulting to 500.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := ErrorCodeHTTPStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
