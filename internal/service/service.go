// Package service holds the ledger rules: referential checks on
// transaction mutations, partial-update merging, delete policies and
// totals aggregation. It talks to persistence only through store.Store.
package service

import (
	"context"
	"errors"
	"fmt"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/store"
)

// ReferencePolicy is re-exported so callers configuring Options need only
// this package.
type ReferencePolicy = models.ReferencePolicy

const (
	ReferenceOrphan   = models.ReferenceOrphan
	ReferenceRestrict = models.ReferenceRestrict
	ReferenceCascade  = models.ReferenceCascade
)

func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	return models.ParseReferencePolicy(s)
}

// Observer is told about every committed mutation.
type Observer interface {
	Mutation(kind Kind, op string)
}

type nopObserver struct{}

func (nopObserver) Mutation(Kind, string) {}

type Options struct {
	Logger          *logger.Logger
	Observer        Observer
	ReferencePolicy ReferencePolicy
	Eligibility     *Eligibility // nil disables eligibility checks
}

// Services bundles the per-entity services sharing one store.
type Services struct {
	Persons      *PersonService
	Categories   *CategoryService
	Transactions *TransactionService

	store store.Store
	opts  Options
}

func New(s store.Store, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.ReferencePolicy == "" {
		opts.ReferencePolicy = ReferenceOrphan
	}
	return &Services{
		Persons:      &PersonService{store: s, log: opts.Logger.With("service", "person"), obs: opts.Observer, policy: opts.ReferencePolicy},
		Categories:   &CategoryService{store: s, log: opts.Logger.With("service", "category"), obs: opts.Observer, policy: opts.ReferencePolicy},
		Transactions: &TransactionService{store: s, log: opts.Logger.With("service", "transaction"), obs: opts.Observer, eligibility: opts.Eligibility},
		store:        s,
		opts:         opts,
	}
}

// Atomic runs fn against services bound to a single store transaction, so
// reads inside fn see one consistent state and writes commit together.
// Observers are notified as each mutation returns, before the outer commit.
func (s *Services) Atomic(ctx context.Context, fn func(tx *Services) error) error {
	return s.store.Atomic(ctx, func(tx store.Store) error {
		return fn(New(tx, s.opts))
	})
}

// notFound converts store.ErrRecordNotFound into a typed NotFoundError.
func notFound(err error, kind Kind, id uint) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return fmt.Errorf("load %s %d: %w", kind.lower(), id, err)
}

// releaseReferences applies policy to the transactions matching f before
// the referenced person or category is deleted.
func releaseReferences(ctx context.Context, tx store.Store, policy ReferencePolicy, kind Kind, id uint, f store.TransactionFilter) (int64, error) {
	switch policy {
	case ReferenceRestrict:
		n, err := tx.Transactions().Count(ctx, f)
		if err != nil {
			return 0, fmt.Errorf("count transactions of %s %d: %w", kind.lower(), id, err)
		}
		if n > 0 {
			return 0, &ReferenceInUseError{Kind: kind, ID: id, Count: n}
		}
	case ReferenceCascade:
		n, err := tx.Transactions().DeleteWhere(ctx, f)
		if err != nil {
			return 0, fmt.Errorf("delete transactions of %s %d: %w", kind.lower(), id, err)
		}
		return n, nil
	}
	return 0, nil
}
