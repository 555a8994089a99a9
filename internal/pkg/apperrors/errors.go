package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Assignment errors
	ErrNoGradeLevel = errors.New("student has no aspired grade level")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCredentialInactive = errors.New("credential is inactive")
)

// ValidationError reports a malformed or missing input field. It is
// recoverable: the caller presents it to the user and no state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for an entity
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidStateError reports an illegal state transition, e.g. approving
// a student that is already approved.
type InvalidStateError struct {
	Current   string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: current state is %s", e.Attempted, e.Current)
}

// NewInvalidStateError creates an InvalidStateError
func NewInvalidStateError(current, attempted string) *InvalidStateError {
	return &InvalidStateError{Current: current, Attempted: attempted}
}

// CapacityExceededError reports that a bounded collection is full.
type CapacityExceededError struct {
	Entity string
	Limit  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s capacity of %d exceeded", e.Entity, e.Limit)
}

// NewCapacityExceededError creates a CapacityExceededError
func NewCapacityExceededError(entity string, limit int) *CapacityExceededError {
	return &CapacityExceededError{Entity: entity, Limit: limit}
}

// MissingRelationError reports that a required owning relation is absent,
// e.g. a student whose preinscription record no longer exists.
type MissingRelationError struct {
	Entity   string
	Relation string
}

func (e *MissingRelationError) Error() string {
	return fmt.Sprintf("%s has no %s", e.Entity, e.Relation)
}

// NewMissingRelationError creates a MissingRelationError
func NewMissingRelationError(entity, relation string) *MissingRelationError {
	return &MissingRelationError{Entity: entity, Relation: relation}
}

// IsDomainError reports whether err is one of the typed domain errors
// that are surfaced to the user instead of being logged as failures.
func IsDomainError(err error) bool {
	var ve *ValidationError
	var nf *NotFoundError
	var is *InvalidStateError
	var ce *CapacityExceededError
	var mr *MissingRelationError
	return errors.As(err, &ve) || errors.As(err, &nf) ||
		errors.As(err, &is) || errors.As(err, &ce) || errors.As(err, &mr)
}
