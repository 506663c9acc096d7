// Package errors provides structured error handling for the contacts API.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// User errors
	CodeUserEmptyUsername   Code = "USER_EMPTY_USERNAME"
	CodeUserInvalidUsername Code = "USER_INVALID_USERNAME"
	CodeUserInvalidEmail    Code = "USER_INVALID_EMAIL"
	CodeUserWeakPassword    Code = "USER_WEAK_PASSWORD"

	// Contact errors
	CodeContactMissingField     Code = "CONTACT_MISSING_FIELD"
	CodeContactInvalidEmail     Code = "CONTACT_INVALID_EMAIL"
	CodeContactInvalidBirthday  Code = "CONTACT_INVALID_BIRTHDAY"
	CodeContactInvalidPageRange Code = "CONTACT_INVALID_PAGE_RANGE"

	// Auth errors
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodeTokenInvalidScope    Code = "TOKEN_INVALID_SCOPE"
	CodeEmailTokenInvalid    Code = "EMAIL_TOKEN_INVALID"
	CodeEmailNotVerified     Code = "EMAIL_NOT_VERIFIED"
	CodeVerificationMismatch Code = "VERIFICATION_MISMATCH"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Transport errors
	CodeRateLimited    Code = "RATE_LIMITED"
	CodeUnavailable    Code = "UNAVAILABLE"
	CodeNotImplemented Code = "NOT_IMPLEMENTED"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// UnprocessableEntity - validation failures, bad input
	case CodeInvalidArgument,
		CodeUserEmptyUsername,
		CodeUserInvalidUsername,
		CodeUserInvalidEmail,
		CodeUserWeakPassword,
		CodeContactMissingField,
		CodeContactInvalidEmail,
		CodeContactInvalidBirthday,
		CodeContactInvalidPageRange,
		CodeEmailTokenInvalid:
		return http.StatusUnprocessableEntity

	case CodeVerificationMismatch:
		return http.StatusBadRequest

	case CodeUnauthenticated,
		CodeTokenInvalidScope,
		CodeEmailNotVerified:
		return http.StatusUnauthorized

	case CodeNotFound:
		return http.StatusNotFound

	case CodeAlreadyExists:
		return http.StatusConflict

	case CodeRateLimited:
		return http.StatusTooManyRequests

	case CodeUnavailable:
		return http.StatusServiceUnavailable

	case CodeNotImplemented:
		return http.StatusNotImplemented

	default:
		return http.StatusInternalServerError
	}
}
