package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrOffline  = errors.New("offline")
)

// APIError represents an error from the remote task API
type APIError struct {
	Op      string // Operation: "list", "create", "update", "delete"
	TaskID  string // Optional: specific task ID
	Status  int    // Optional: HTTP status code
	Message string // Human-readable context
	Err     error  // Underlying error
}

func (e *APIError) Error() string {
	if e.TaskID != "" && e.Message != "" {
		return fmt.Sprintf("api %s [%s]: %s", e.Op, e.TaskID, e.Message)
	}
	if e.TaskID != "" {
		return fmt.Sprintf("api %s [%s]: %v", e.Op, e.TaskID, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("api %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("api %s failed", e.Op)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
