package api

import (
	"errors"
	"net/http"

	"recipebox/internal/recipes"
)

// ErrorKind values visible to callers.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindInternal   = "internal"
)

const internalMessage = "internal error"

// Error is the caller-visible failure shape.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind + ": " + e.Message
}

// ErrorKind implements the store's error classifier interface.
func (e *Error) ErrorKind() string {
	if e == nil {
		return ""
	}
	return e.Kind
}

func validationf(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// StatusCode maps an error onto an HTTP-style status for transports.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// translate converts a store error into the caller-visible shape. Storage
// detail is dropped; callers only learn that the request failed.
func translate(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var storeErr *recipes.Error
	if errors.As(err, &storeErr) {
		message := storeErr.Message
		if message == "" {
			message = string(storeErr.Kind)
		}
		switch storeErr.Kind {
		case recipes.KindValidation:
			return &Error{Kind: KindValidation, Message: message}
		case recipes.KindNotFound:
			return &Error{Kind: KindNotFound, Message: message}
		}
	}
	return &Error{Kind: KindInternal, Message: internalMessage}
}
