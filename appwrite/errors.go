package appwrite

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is the structured error body the remote service returns for any
// rejected request.
type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("remote service error (code %d)", e.Code)
}

// Service error types, as reported in the "type" field.
const (
	TypeUserAlreadyExists   = "user_already_exists"
	TypeUserInvalidCreds    = "user_invalid_credentials"
	TypeGeneralUnauthorized = "general_unauthorized_scope"
	TypeUserSessionNotFound = "user_session_not_found"
	TypeDocumentNotFound    = "document_not_found"
)

// IsCode reports whether err is a service error with the given HTTP status.
func IsCode(err error, code int) bool {
	var serviceErr *Error
	if !errors.As(err, &serviceErr) {
		return false
	}
	return serviceErr.Code == code
}

// IsType reports whether err is a service error of the given type string.
func IsType(err error, errType string) bool {
	var serviceErr *Error
	if !errors.As(err, &serviceErr) {
		return false
	}
	return serviceErr.Type == errType
}

// IsUnauthorized reports whether err means the request lacked a valid
// session. This is an expected outcome for "who am I" style calls.
func IsUnauthorized(err error) bool {
	return IsCode(err, http.StatusUnauthorized)
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return &Error{Code: resp.StatusCode, Message: resp.Status}
	}

	serviceErr := &Error{}
	if err := json.Unmarshal(body, serviceErr); err != nil || serviceErr.Message == "" {
		serviceErr.Message = resp.Status
	}
	if serviceErr.Code == 0 {
		serviceErr.Code = resp.StatusCode
	}
	return serviceErr
}
