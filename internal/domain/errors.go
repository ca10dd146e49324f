package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation ErrKind = "validation" // 400
	KindAuth       ErrKind = "auth"       // 401
	KindConflict   ErrKind = "conflict"   // 409
	KindStore      ErrKind = "store"      // 400, opaque "DB Error" to clients
	KindInternal   ErrKind = "internal"   // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for the audit log only
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingFields() *Error {
	return New(KindValidation, "missing_fields", "Enter all required information")
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidEmail() *Error {
	return New(KindValidation, "invalid_email", "Invalid email address")
}

func ErrInvalidPlatform(p string) *Error {
	return WithMeta(New(KindValidation, "invalid_platform", "invalid music platform"), map[string]string{
		"platform": p,
	})
}

func ErrAlreadyLoggedIn() *Error {
	return New(KindValidation, "already_logged_in", "User already logged in")
}

func ErrAlreadyVerified() *Error {
	return New(KindValidation, "already_verified", "Email already verified")
}

// Verification-token specific; the token itself is the credential, so this
// is a 400 rather than a 401.
func ErrInvalidOrExpiredToken() *Error {
	return New(KindValidation, "invalid_or_expired_token", "Invalid or expired token")
}

func ErrDeliveryFailed(cause error) *Error {
	return Wrap(KindValidation, "delivery_failed", "Error sending verification email", cause)
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: use this for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "Invalid username or password")
}

// Covers absent, malformed, expired and badly-signed session tokens alike;
// callers must not be able to tell which.
func ErrUnauthorized() *Error {
	return New(KindAuth, "unauthorized", "Unauthorized access")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrEmailExists() *Error {
	return New(KindConflict, "email_exists", "Email id already exists")
}

// ErrUserNotFound reports a record missing for an identity a session
// token vouched for. Should not happen in normal operation, but must be
// handled, not crash.
func ErrUserNotFound() *Error {
	return New(KindValidation, "user_not_found", "Email id does not exist in db")
}

// ----------------------
// Store / internal
// ----------------------

func ErrStore(cause error) *Error {
	return Wrap(KindStore, "store_error", "DB Error", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
