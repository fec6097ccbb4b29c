package addressbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Entity names used in NotFoundError messages.
const (
	EntityContact      = "Contact"
	EntityContactGroup = "ContactGroup"
)

// NonFieldErrors is the key of validation messages not tied to a single field.
const NonFieldErrors = "non_field_errors"

// ErrNotFound is returned when the requested entity does not exist for the user.
var ErrNotFound = errors.New("not found")

// NotFoundError names the entity that could not be resolved for the user.
// It matches ErrNotFound.
type NotFoundError struct {
	Entity string
	UUID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with UUID '%s' does not exist for your user.", e.Entity, e.UUID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError maps field names to the reasons the input was rejected.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends msg to the messages of field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no message was added.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e as error, or nil when it holds no messages.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}

	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], " "))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
