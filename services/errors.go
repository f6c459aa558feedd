package services

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindNotFound                 ErrorKind = "not_found"
	KindInvalidTransitionPayload ErrorKind = "invalid_transition_payload"
	KindInvalidStateTransition   ErrorKind = "invalid_state_transition"
	KindCapacityExceeded         ErrorKind = "capacity_exceeded"
	KindValidationFailed         ErrorKind = "validation_failed"
	KindConflict                 ErrorKind = "conflict"
)

// FieldError names one rejected input and why.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// BusinessError is an expected outcome a caller must branch on. It matches
// the sentinel of the same kind under errors.Is.
type BusinessError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *BusinessError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound                 = &BusinessError{Kind: KindNotFound, Message: "not found"}
	ErrInvalidTransitionPayload = &BusinessError{Kind: KindInvalidTransitionPayload, Message: "invalid transition payload"}
	ErrInvalidStateTransition   = &BusinessError{Kind: KindInvalidStateTransition, Message: "invalid state transition"}
	ErrCapacityExceeded         = &BusinessError{Kind: KindCapacityExceeded, Message: "capacity exceeded"}
	ErrValidationFailed         = &BusinessError{Kind: KindValidationFailed, Message: "validation failed"}
	ErrConflict                 = &BusinessError{Kind: KindConflict, Message: "modified concurrently"}
)

func errTableNotFound(id string) error {
	return &BusinessError{Kind: KindNotFound, Message: fmt.Sprintf("table %s not found", id)}
}

func errReservationNotFound(id string) error {
	return &BusinessError{Kind: KindNotFound, Message: fmt.Sprintf("reservation %s not found", id)}
}

func errCapacity(capacity int) error {
	return &BusinessError{
		Kind:    KindCapacityExceeded,
		Message: fmt.Sprintf("table only has capacity for %d guests", capacity),
	}
}

func errPayload(field, reason string) error {
	return &BusinessError{
		Kind:    KindInvalidTransitionPayload,
		Message: "invalid transition payload",
		Fields:  []FieldError{{Field: field, Reason: reason}},
	}
}

func errIllegalTransition(from, to string) error {
	return &BusinessError{
		Kind:    KindInvalidStateTransition,
		Message: fmt.Sprintf("reservation cannot move from %s to %s", from, to),
	}
}

func errValidation(fields []FieldError) error {
	return &BusinessError{Kind: KindValidationFailed, Message: "validation failed", Fields: fields}
}

func errAlreadyOccupied() error {
	return &BusinessError{
		Kind:    KindConflict,
		Message: "table is already occupied, send expected_version to re-seat it",
	}
}

func errConflict(entity string) error {
	return &BusinessError{
		Kind:    KindConflict,
		Message: entity + " was modified by another operation, reload and retry",
	}
}
