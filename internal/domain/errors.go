package domain

import "fmt"

// AppError is the base domain error type. Message is what clients see in
// the failure envelope; Cause stays server-side.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized() *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: "Unauthorized", Status: 401}
}

// ErrInternal carries the cause's message to the client when there is one,
// falling back to msg otherwise.
func ErrInternal(msg string, cause error) *AppError {
	if cause != nil && cause.Error() != "" {
		return &AppError{Code: "INTERNAL_ERROR", Message: cause.Error(), Status: 500, Cause: cause}
	}
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
