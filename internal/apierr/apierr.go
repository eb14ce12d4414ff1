// Package apierr defines the wire error contract: every API failure maps
// to a stable numeric code plus an HTTP status. Clients switch on the
// code; the status only carries the broad class.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Wire codes. These are stable across releases.
const (
	CodeOK = 0

	// 11xxx — user domain
	CodeUserNotFound      = 11001
	CodeUserAlreadyExists = 11002
	CodeInvalidPassword   = 11003

	// 12xxx — auth token
	CodeInvalidToken = 12001
	CodeTokenExpired = 12002
	CodeMissingToken = 12003

	// 13xxx — database
	CodeSomethingWentWrong        = 13001
	CodeUniqueConstraintViolation = 13002

	// 20xxx — request handling
	CodeValidation    = 20001
	CodeJSONRejection = 20002
	CodeSignature     = 20003
	CodeCommonRequest = 20004
)

// Error is an API failure carrying its wire code, HTTP status, and the
// client-facing message. The wrapped cause never reaches the wire.
type Error struct {
	Code   int
	Status int
	Msg    string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.cause }

// SomethingWentWrong wraps any storage-layer failure. The cause's text is
// surfaced as the message, matching the generic database-failure contract.
func SomethingWentWrong(cause error) *Error {
	msg := "something went wrong"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Code: CodeSomethingWentWrong, Status: http.StatusInternalServerError, Msg: msg, cause: cause}
}

// DuplicateEntry reports a unique-constraint violation on insert.
func DuplicateEntry(cause error) *Error {
	return &Error{Code: CodeUniqueConstraintViolation, Status: http.StatusConflict, Msg: "Duplicate entry exists", cause: cause}
}

// SignatureInvalid rejects a request whose body signature is missing,
// unresolvable, or wrong.
func SignatureInvalid() *Error {
	return &Error{Code: CodeSignature, Status: http.StatusBadRequest, Msg: "signature error"}
}

// CommonRequest reports a request-shape problem that is neither a JSON
// decode failure nor a field validation failure.
func CommonRequest(msg string) *Error {
	return &Error{Code: CodeCommonRequest, Status: http.StatusBadRequest, Msg: "common request error:" + msg}
}

// Validation reports field-level validation failures.
func Validation(cause error) *Error {
	msg := strings.ReplaceAll(cause.Error(), "\n", ", ")
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Msg: msg, cause: cause}
}

// JSONRejection reports an unparseable or mistyped request body.
func JSONRejection(cause error) *Error {
	return &Error{Code: CodeJSONRejection, Status: http.StatusBadRequest, Msg: cause.Error(), cause: cause}
}

// MissingToken rejects a request with no bearer token.
func MissingToken() *Error {
	return &Error{Code: CodeMissingToken, Status: http.StatusUnauthorized, Msg: "Missing Bearer token"}
}

// InvalidToken rejects a request whose bearer token does not match.
func InvalidToken() *Error {
	return &Error{Code: CodeInvalidToken, Status: http.StatusUnauthorized, Msg: "Invalid token"}
}

// FromBinding classifies a request-binding failure: field validation maps
// to CodeValidation, anything else (malformed JSON, wrong types, read
// errors) to CodeJSONRejection.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return Validation(verrs)
	}
	return JSONRejection(err)
}

// Resolve extracts the *Error from err's chain, or wraps err as a generic
// database failure when it carries no wire code.
func Resolve(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return SomethingWentWrong(err)
}
