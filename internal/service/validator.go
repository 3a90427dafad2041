package service

import (
	"context"
	"fmt"

	"homebudget/internal/store"
)

// ReferenceValidator answers whether a person or category id resolves in
// the current store state. It has no side effects.
type ReferenceValidator struct {
	store store.Store
}

func NewReferenceValidator(s store.Store) ReferenceValidator {
	return ReferenceValidator{store: s}
}

func (v ReferenceValidator) Exists(ctx context.Context, kind Kind, id uint) (bool, error) {
	var (
		ok  bool
		err error
	)
	switch kind {
	case KindPerson:
		ok, err = v.store.Persons().Exists(ctx, id)
	case KindCategory:
		ok, err = v.store.Categories().Exists(ctx, id)
	default:
		return false, fmt.Errorf("no reference lookup for %s", kind)
	}
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", kind.lower(), id, err)
	}
	return ok, nil
}

// Require is Exists turned into a ReferenceNotFoundError.
func (v ReferenceValidator) Require(ctx context.Context, kind Kind, id uint) error {
	ok, err := v.Exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceNotFoundError{Kind: kind, ID: id}
	}
	return nil
}
