package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrNoCredential      = errors.New("no session credential found")
	ErrCredentialExpired = errors.New("session credential expired")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict: resource already exists")
	ErrInternal          = errors.New("internal server error")
)

// AuthError is returned when a call cannot be made because there is no
// usable session credential. It never reaches the network.
type AuthError struct {
	Reason error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %v", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Reason }

// NetworkError wraps a transport-level failure (DNS, connect, TLS, EOF).
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// ServerError carries a non-2xx response from the hosted backend,
// including the decoded {error, message} body when present.
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server: status %d", e.Status)
}

// ValidationError reports a client-side required-field failure before a
// request is submitted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// SchemaError reports a backend response that did not match the expected
// entity shape at the parse boundary.
type SchemaError struct {
	Entity string
	Field  string
	Cause  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s.%s: %v", e.Entity, e.Field, e.Cause)
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// ServiceError is the uniform failure an entity service hands to its
// callers; Op is the service operation ("list", "create", ...).
type ServiceError struct {
	Entity string
	Op     string
	Err    error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
