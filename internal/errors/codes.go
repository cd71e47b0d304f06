// Package errors provides structured error handling for the mock API.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Alert errors
	CodeAlertInvalidAction    Code = "ALERT_INVALID_ACTION"
	CodeAlertInvalidSortField Code = "ALERT_INVALID_SORT_FIELD"
	CodeAlertInvalidSortOrder Code = "ALERT_INVALID_SORT_ORDER"
	CodeAlertInvalidRiskRange Code = "ALERT_INVALID_RISK_RANGE"
	CodeAlertInvalidLimit     Code = "ALERT_INVALID_LIMIT"

	// Case errors
	CodeCaseTitleEmpty Code = "CASE_TITLE_EMPTY"

	// Lookup errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeAlertInvalidAction,
		CodeAlertInvalidSortField,
		CodeAlertInvalidSortOrder,
		CodeAlertInvalidRiskRange,
		CodeAlertInvalidLimit,
		CodeCaseTitleEmpty:
		return http.StatusBadRequest

	// Not found - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
