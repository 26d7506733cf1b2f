// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrNotFound covers console resources other than campaigns.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) error {
	return &ErrNotFound{Resource: resource, ID: id}
}

// ErrValidation is a request the console refuses before calling the backend.
type ErrValidation struct {
	Msg string
}

func (e *ErrValidation) Error() string {
	return e.Msg
}

func NewValidation(format string, args ...any) error {
	return &ErrValidation{Msg: fmt.Sprintf(format, args...)}
}

// APIError is a non-2xx answer from the Hudey backend. Error() is the
// backend's detail string, shown to the user as-is.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// NewAPIError uses detail when the backend sent one, otherwise
// "Failed to <action> (<status>)".
func NewAPIError(status int, detail, action string) error {
	if detail == "" {
		detail = fmt.Sprintf("Failed to %s (%d)", action, status)
	}
	return &APIError{Status: status, Detail: detail}
}

// StatusOf returns the upstream status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var notFound *ErrCampaignNotFound
	if errors.As(err, &notFound) {
		return 404
	}
	var missing *ErrNotFound
	if errors.As(err, &missing) {
		return 404
	}
	var invalid *ErrValidation
	if errors.As(err, &invalid) {
		return 400
	}
	return 0
}
