package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedTokenInvalid = "failed to token invalid"
	MessageSuccessPing        = "pong"

	ErrUnauthenticated = errors.New("unauthenticated: please log in again")
	ErrUserNotFound    = errors.New("user not found")
	ErrTokenNotFound   = errors.New("failed to token not found")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrParseID         = errors.New("failed to parse id")

	// ErrPersistenceFailure matches every PersistenceError through errors.Is.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// PersistenceError wraps a failure reported by the row store or the blob store.
// The underlying message is kept verbatim.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *PersistenceError
	if errors.As(err, &existing) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistenceFailure
}

// ValidationError carries every business-rule violation found in one request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Add(format string, args ...any) {
	e.Messages = append(e.Messages, fmt.Sprintf(format, args...))
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Messages) > 0
}

// Err returns nil when no violation was collected.
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
