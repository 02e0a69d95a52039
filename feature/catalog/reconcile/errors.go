package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrEntityCreation indicates that a create pipeline produced no usable entity.
	ErrEntityCreation = errors.New("entity creation failed")

	// ErrPersistence indicates an underlying store failure.
	ErrPersistence = errors.New("persistence failure")
)

// EntityCreationError represents a failed create.
type EntityCreationError struct {
	Entity string
	Key    string
	Err    error
}

// Error implements the error interface
func (e *EntityCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to create %s %s: %v", e.Entity, e.Key, e.Err)
	}
	return fmt.Sprintf("failed to create %s %s", e.Entity, e.Key)
}

// Unwrap returns the underlying error
func (e *EntityCreationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *EntityCreationError) Is(target error) bool {
	return target == ErrEntityCreation
}

// PersistenceError wraps a store failure with the operation that caused it.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// persistErr wraps err in a PersistenceError unless it already carries a typed error.
func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) || errors.Is(err, ErrEntityCreation) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

var (
	errNoTaxCategory = errors.New("no tax category available")
	errNoParentFacet = errors.New("no parent facet given")
)
