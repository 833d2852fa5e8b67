package definition

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when a unique collection already holds the key
	// or its guardian rejects the value.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrOverrideMismatch is returned when a member cannot override another.
	ErrOverrideMismatch = errors.New("override mismatch")
	// ErrDuplicateAggregation is returned when an aggregator expands to the same
	// required type twice for one depender.
	ErrDuplicateAggregation = errors.New("duplicate aggregation")
	// ErrUnknownType is returned when a composition names a type missing from
	// the type graph.
	ErrUnknownType = errors.New("unknown type")
	// ErrFrozen is returned when a collection is modified after the build.
	ErrFrozen = errors.New("collection is frozen")
)

// AuthoringError is a non-recoverable error in the composition itself. It
// aborts the build.
type AuthoringError struct {
	// Op is the build step that failed, e.g. "add override".
	Op string
	// Subject names the node or type involved.
	Subject string
	Err     error
}

func (e *AuthoringError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Subject, e.Err)
}

func (e *AuthoringError) Unwrap() error {
	return e.Err
}

func authoring(op, subject string, err error) error {
	var ae *AuthoringError
	if errors.As(err, &ae) {
		return err
	}

	return &AuthoringError{Op: op, Subject: subject, Err: err}
}
