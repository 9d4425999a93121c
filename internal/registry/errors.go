package registry

import (
	"errors"
	"fmt"
)

// AccessError reports a file or directory that could not be read.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("accessing %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ParseError reports a description file that is not valid JSON or violates
// the description schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a well-formed description whose content does not
// describe a loadable type.
type ValidationError struct {
	Path     string
	TypeName string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid type name %q in %s: %s", e.TypeName, e.Path, e.Reason)
}

// ConflictError reports a type whose full name is already loaded with a
// different hash.
type ConflictError struct {
	FullName     string
	ExistingPath string
	NewPath      string
	ExistingHash string
	NewHash      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting hash for %s loaded from %s: see %s (%s != %s)",
		e.FullName, e.ExistingPath, e.NewPath, e.ExistingHash, e.NewHash)
}

// errorKind returns a short label for err's category, used in logs and
// metrics.
func errorKind(err error) string {
	var (
		accessErr     *AccessError
		parseErr      *ParseError
		validationErr *ValidationError
		conflictErr   *ConflictError
	)
	switch {
	case errors.As(err, &conflictErr):
		return "conflict"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &accessErr):
		return "access"
	default:
		return "other"
	}
}
