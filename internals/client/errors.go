// Package client is the Go consumer of the API: a thin HTTP gateway, an
// in-memory store mirroring the server's resources, and the session logic
// that decides what a logged-in user can see and do.
package client

import (
	"fmt"
	"net/http"
)

// ValidationError is a 400: the request was understood but rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError is a 409: the record collides with an existing one.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError is a 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ServerError is any 5xx.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// NetworkError wraps a transport failure: the request never got an answer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("تعذر الاتصال بالخادم: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// classifyStatus turns a non-2xx response into the matching typed error.
func classifyStatus(status int, message string) error {
	if message == "" {
		message = "حدث خطأ في الخادم."
	}
	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Message: message}
	case status == http.StatusConflict:
		return &ConflictError{Message: message}
	case status >= 400 && status < 500:
		return &ValidationError{Message: message}
	default:
		return &ServerError{Status: status, Message: message}
	}
}
