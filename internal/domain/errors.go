package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
	ErrIO         = errors.New("i/o failure")
	ErrParse      = errors.New("parse failure")
)

// NotFoundError indicates a referenced id has no backing directory
type NotFoundError struct {
	ResourceType string // project, book, document, commit
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.ResourceType, e.ResourceID)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IOError indicates a directory or file operation failed at the OS level
type IOError struct {
	Op   string // e.g. "write project config"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s (%s): %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error   { return e.Err }
func (e *IOError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrIO
func (e *IOError) Is(target error) bool { return target == ErrIO }

// ParseError indicates a required JSON file exists but does not decode
// into its expected shape
type ParseError struct {
	What string // e.g. "project config"
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s (%s): %v", e.What, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error   { return e.Err }
func (e *ParseError) StatusCode() int { return http.StatusUnprocessableEntity }

// Is allows errors.Is() to match against ErrParse
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NewNotFound builds a NotFoundError for the given resource
func NewNotFound(resourceType, id string) error {
	return &NotFoundError{ResourceType: resourceType, ResourceID: id}
}
