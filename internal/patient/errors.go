package patient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("patient not found")
	ErrStatusConflict   = errors.New("patient status conflict")
	ErrConcurrentUpdate = errors.New("patient modified concurrently")
	ErrValidation       = errors.New("validation failed")
)

// MsgConcurrentUpdate is returned to callers that lost an optimistic lock.
const MsgConcurrentUpdate = "The patient record was modified concurrently. Please retry."

// Error pairs a sentinel with the message shown to API callers.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(patientID string) error {
	return &Error{Kind: ErrNotFound, Message: "Patient not found: " + patientID}
}

func statusConflict(patientID, state string) error {
	return &Error{Kind: ErrStatusConflict, Message: fmt.Sprintf("Patient %s is already %s", patientID, state)}
}

// ValidationError maps request fields to their first failing rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
