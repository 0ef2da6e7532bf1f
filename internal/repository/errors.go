// Package repository contains the data access layer, separated from HTTP
// handlers. This file defines the error values shared across repositories so
// handlers can translate each failure into the right HTTP status: ErrNotFound
// -> 404, ErrConflict -> 409, ErrForbidden -> 403, ErrValidation -> 422.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a row with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an operation cannot proceed due to existing
// state, such as a duplicate unique name or a delete blocked by dependent
// rows.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they may not modify.
var ErrForbidden = errors.New("forbidden")

// ErrValidation is returned when input fails a data-layer check, e.g. a
// disability type that does not belong to the stated category.
var ErrValidation = errors.New("validation failed")

// InUseError is a Conflict raised by the pre-delete usage guard. It names
// the dependent table that blocked the deletion so the API can report it.
type InUseError struct {
	Table string
	Count int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("still referenced by %d row(s) in %s", e.Count, e.Table)
}

// Is makes errors.Is(err, ErrConflict) match InUseError values.
func (e *InUseError) Is(target error) bool { return target == ErrConflict }

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
