package service

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names an entity in error messages and metrics labels.
type Kind string

const (
	KindPerson      Kind = "Person"
	KindCategory    Kind = "Category"
	KindTransaction Kind = "Transaction"
)

func (k Kind) lower() string {
	return strings.ToLower(string(k))
}

var (
	ErrNotFound          = errors.New("not found")
	ErrReferenceNotFound = errors.New("referenced entity not found")
	ErrReferenceInUse    = errors.New("entity is still referenced")
	ErrPolicyViolation   = errors.New("policy violation")
)

// NotFoundError is returned when the entity addressed by an operation does
// not exist. Name is set instead of ID for lookups by name.
type NotFoundError struct {
	Kind Kind
	ID   uint
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s named %q not found", e.Kind.lower(), e.Name)
	}
	return fmt.Sprintf("%s %d not found", e.Kind.lower(), e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReferenceNotFoundError is returned when a person or category id supplied
// to a transaction operation, or used as a query scope, does not resolve.
type ReferenceNotFoundError struct {
	Kind Kind
	ID   uint
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind.lower(), e.ID)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// ReferenceInUseError is returned by deletes under the restrict policy.
type ReferenceInUseError struct {
	Kind  Kind
	ID    uint
	Count int64
}

func (e *ReferenceInUseError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d transaction(s)", e.Kind.lower(), e.ID, e.Count)
}

func (e *ReferenceInUseError) Is(target error) bool {
	return target == ErrReferenceInUse
}

type PolicyViolationError struct {
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return e.Reason
}

func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}
