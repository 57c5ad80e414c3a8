package domain

import (
	"errors"
	"fmt"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token is invalid"
)

// Error kinds. Every error the services return wraps exactly one of these so
// the HTTP layer can pick a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
)

var (
	ErrParseUUID     = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrTokenNotFound = fmt.Errorf("%w: token not found", ErrUnauthenticated)
	ErrTokenExpired  = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrTokenInvalid  = fmt.Errorf("%w: token invalid", ErrUnauthenticated)
)

// Validationf builds a validation error with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

type (
	PageRequest struct {
		Page  int
		Limit int
	}

	// Page is the list envelope shared by every paginated endpoint.
	Page[T any] struct {
		Count       int64 `json:"count"`
		Next        *int  `json:"next"`
		Previous    *int  `json:"previous"`
		CurrentPage int   `json:"current_page"`
		TotalPages  int   `json:"total_pages"`
		Results     []T   `json:"results"`
	}
)

// Normalize clamps page and limit into their accepted ranges.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPage[T any](results []T, count int64, req PageRequest) Page[T] {
	if results == nil {
		results = []T{}
	}
	totalPages := int((count + int64(req.Limit) - 1) / int64(req.Limit))
	page := Page[T]{
		Count:       count,
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		Results:     results,
	}
	if req.Page < totalPages {
		next := req.Page + 1
		page.Next = &next
	}
	if req.Page > 1 {
		prev := req.Page - 1
		page.Previous = &prev
	}
	return page
}
