package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/store"

	"github.com/shopspring/decimal"
)

type CreateTransactionInput struct {
	Description string
	Value       decimal.Decimal
	Type        models.TransactionType
	CategoryID  uint
	PersonID    uint
}

// UpdateTransactionInput carries a partial update; nil fields are left as
// they are. A blank Description is treated as absent.
type UpdateTransactionInput struct {
	Description *string
	Value       *decimal.Decimal
	Type        *models.TransactionType
	CategoryID  *uint
	PersonID    *uint
}

type TransactionService struct {
	store       store.Store
	log         *logger.Logger
	obs         Observer
	eligibility *Eligibility
}

// Create validates the category, then the person, and stores the record.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	var out *models.Transaction
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		refs := NewReferenceValidator(tx)
		if err := refs.Require(ctx, KindCategory, in.CategoryID); err != nil {
			return err
		}
		if err := refs.Require(ctx, KindPerson, in.PersonID); err != nil {
			return err
		}
		if err := s.checkEligibility(ctx, tx, in.PersonID, in.CategoryID, in.Type); err != nil {
			return err
		}

		t := &models.Transaction{
			Description: in.Description,
			Value:       in.Value,
			Type:        in.Type,
			CategoryID:  in.CategoryID,
			PersonID:    in.PersonID,
		}
		if err := tx.Transactions().Create(ctx, t); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		created, err := tx.Transactions().Get(ctx, t.ID)
		if err != nil {
			return notFound(err, KindTransaction, t.ID)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.obs.Mutation(KindTransaction, "create")
	s.log.Info("transaction created",
		"id", out.ID, "type", out.Type.String(), "value", out.Value.String(),
		"person_id", out.PersonID, "category_id", out.CategoryID)
	return out, nil
}

// Update merges in over the stored record. Changed references are
// validated before anything is written; on any failure the record is
// untouched.
func (s *TransactionService) Update(ctx context.Context, id uint, in UpdateTransactionInput) (*models.Transaction, error) {
	var out *models.Transaction
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		cur, err := tx.Transactions().Get(ctx, id)
		if err != nil {
			return notFound(err, KindTransaction, id)
		}

		next := *cur
		refs := NewReferenceValidator(tx)
		recheck := false

		if in.CategoryID != nil && *in.CategoryID != cur.CategoryID {
			if err := refs.Require(ctx, KindCategory, *in.CategoryID); err != nil {
				return err
			}
			next.CategoryID = *in.CategoryID
			recheck = true
		}
		if in.PersonID != nil && *in.PersonID != cur.PersonID {
			if err := refs.Require(ctx, KindPerson, *in.PersonID); err != nil {
				return err
			}
			next.PersonID = *in.PersonID
			recheck = true
		}
		if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
			next.Description = *in.Description
		}
		if in.Value != nil {
			next.Value = *in.Value
		}
		if in.Type != nil {
			recheck = recheck || *in.Type != cur.Type
			next.Type = *in.Type
		}

		if recheck {
			if err := s.checkEligibility(ctx, tx, next.PersonID, next.CategoryID, next.Type); err != nil {
				return err
			}
		}

		if err := tx.Transactions().Update(ctx, &next); err != nil {
			return fmt.Errorf("update transaction %d: %w", id, err)
		}
		updated, err := tx.Transactions().Get(ctx, id)
		if err != nil {
			return notFound(err, KindTransaction, id)
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.obs.Mutation(KindTransaction, "update")
	s.log.Info("transaction updated", "id", id)
	return out, nil
}

func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		if err := tx.Transactions().Delete(ctx, id); err != nil {
			return notFound(err, KindTransaction, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.obs.Mutation(KindTransaction, "delete")
	s.log.Info("transaction deleted", "id", id)
	return nil
}

func (s *TransactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	t, err := s.store.Transactions().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, KindTransaction, id)
	}
	return t, nil
}

func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	return s.list(ctx, store.TransactionFilter{})
}

// ListByPerson fails with ReferenceNotFound when the person does not exist,
// even though the answer would otherwise be an empty list.
func (s *TransactionService) ListByPerson(ctx context.Context, personID uint) ([]models.Transaction, error) {
	if err := NewReferenceValidator(s.store).Require(ctx, KindPerson, personID); err != nil {
		return nil, err
	}
	return s.list(ctx, store.TransactionFilter{PersonID: personID})
}

func (s *TransactionService) ListByCategory(ctx context.Context, categoryID uint) ([]models.Transaction, error) {
	if err := NewReferenceValidator(s.store).Require(ctx, KindCategory, categoryID); err != nil {
		return nil, err
	}
	return s.list(ctx, store.TransactionFilter{CategoryID: categoryID})
}

func (s *TransactionService) Totals(ctx context.Context) (Totals, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(txs), nil
}

func (s *TransactionService) TotalsByPerson(ctx context.Context, personID uint) (Totals, error) {
	txs, err := s.ListByPerson(ctx, personID)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(txs), nil
}

func (s *TransactionService) TotalsByCategory(ctx context.Context, categoryID uint) (Totals, error) {
	txs, err := s.ListByCategory(ctx, categoryID)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(txs), nil
}

func (s *TransactionService) list(ctx context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	txs, err := s.store.Transactions().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *TransactionService) checkEligibility(ctx context.Context, tx store.Store, personID, categoryID uint, t models.TransactionType) error {
	if s.eligibility == nil {
		return nil
	}
	p, err := tx.Persons().Get(ctx, personID)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("load person %d: %w", personID, err)
	}
	c, err := tx.Categories().Get(ctx, categoryID)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("load category %d: %w", categoryID, err)
	}
	return s.eligibility.Check(p, c, t)
}
