package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"

	ErrCodeInvalidCredentials      ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken            ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired            ErrorCode = "TOKEN_EXPIRED"
	ErrCodeUserInactive            ErrorCode = "USER_INACTIVE"
	ErrCodeUserNotFound            ErrorCode = "USER_NOT_FOUND"
	ErrCodePolicyViolation         ErrorCode = "POLICY_VIOLATION"
	ErrCodeDefaultPasswordRejected ErrorCode = "DEFAULT_PASSWORD_REJECTED"
	ErrCodePasswordChangeRequired  ErrorCode = "PASSWORD_CHANGE_REQUIRED"
	ErrCodeForbiddenRoleHierarchy  ErrorCode = "FORBIDDEN_ROLE_HIERARCHY"
	ErrCodeForbiddenOwnership      ErrorCode = "FORBIDDEN_OWNERSHIP"
	ErrCodeEmailAlreadyExists      ErrorCode = "EMAIL_ALREADY_EXISTS"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	// ErrInvalidCredentials deliberately covers wrong email, wrong password and
	// wrong role so a caller cannot tell which part of the triple failed.
	ErrInvalidCredentials = NewUnauthorizedError("Invalid email, password, or role", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid or expired token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrUserInactive       = NewUnauthorizedError("User not found or account is inactive", ErrCodeUserInactive)
	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)

	ErrDefaultPasswordRejected = NewValidationError("New password cannot be the default password", ErrCodeDefaultPasswordRejected)
	ErrPasswordChangeRequired  = NewForbiddenError("Please change your password before accessing this resource", ErrCodePasswordChangeRequired)
	ErrForbiddenRoleHierarchy  = NewForbiddenError("You cannot create users with this role", ErrCodeForbiddenRoleHierarchy)
	ErrForbiddenOwnership      = NewForbiddenError("You can only manage users in your institution", ErrCodeForbiddenOwnership)
	ErrEmailAlreadyExists      = NewConflictError("A user with this email already exists", ErrCodeEmailAlreadyExists)
)

// NewPolicyViolationError carries the ordered password-rule violation list so
// the caller can render deterministic messages.
func NewPolicyViolationError(violations []string) *AppError {
	errs := make([]ValidationError, len(violations))
	for i, v := range violations {
		errs[i] = ValidationError{Field: "new_password", Message: v, Code: string(ErrCodePolicyViolation)}
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodePolicyViolation,
		Message:    "Password validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    ValidationErrors{Errors: errs},
	}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
