package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v55/github"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeNotFound     ErrCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrCode = "UNAUTHORIZED"
	ErrCodeRateLimited  ErrCode = "RATE_LIMITED"
	ErrCodeInternal     ErrCode = "INTERNAL_ERROR"
	ErrCodeBadRequest   ErrCode = "BAD_REQUEST"
	ErrCodeForbidden    ErrCode = "FORBIDDEN"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// FromGitHub classifies an error returned by the GitHub client.
// Errors that are already an AppError are returned unchanged.
func FromGitHub(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &AppError{Code: ErrCodeRateLimited, Message: "GitHub rate limit exceeded", Err: err}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &AppError{Code: ErrCodeRateLimited, Message: "GitHub secondary rate limit exceeded", Err: err}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return &AppError{Code: ErrCodeNotFound, Message: "GitHub resource not found", Err: err}
		case http.StatusUnauthorized:
			return &AppError{Code: ErrCodeUnauthorized, Message: "GitHub token rejected", Err: err}
		case http.StatusForbidden:
			return &AppError{Code: ErrCodeForbidden, Message: "GitHub access forbidden", Err: err}
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			return &AppError{Code: ErrCodeBadRequest, Message: "GitHub rejected the request", Err: err}
		}
	}

	return NewInternalError("GitHub request failed", err)
}

// CodeOf returns the code of err, or ErrCodeInternal when err is not an AppError
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsRateLimited checks if the error is a rate limited error
func IsRateLimited(err error) bool {
	return CodeOf(err) == ErrCodeRateLimited
}
