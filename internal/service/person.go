package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/store"
)

// UpdatePersonInput: nil fields and a blank Name keep the stored value.
type UpdatePersonInput struct {
	Name *string
	Age  *int
}

type PersonService struct {
	store  store.Store
	log    *logger.Logger
	obs    Observer
	policy ReferencePolicy
}

func (s *PersonService) Create(ctx context.Context, name string, age int) (*models.Person, error) {
	p := &models.Person{Name: name, Age: age}
	if err := s.store.Persons().Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	s.obs.Mutation(KindPerson, "create")
	s.log.Info("person created", "id", p.ID)
	return p, nil
}

func (s *PersonService) Get(ctx context.Context, id uint) (*models.Person, error) {
	p, err := s.store.Persons().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, KindPerson, id)
	}
	return p, nil
}

func (s *PersonService) List(ctx context.Context) ([]models.Person, error) {
	out, err := s.store.Persons().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return out, nil
}

// SearchByName returns the first person whose name matches exactly.
func (s *PersonService) SearchByName(ctx context.Context, name string) (*models.Person, error) {
	p, err := s.store.Persons().FindByName(ctx, name)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, &NotFoundError{Kind: KindPerson, Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("find person by name: %w", err)
	}
	return p, nil
}

func (s *PersonService) Update(ctx context.Context, id uint, in UpdatePersonInput) (*models.Person, error) {
	var out *models.Person
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		cur, err := tx.Persons().Get(ctx, id)
		if err != nil {
			return notFound(err, KindPerson, id)
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
			cur.Name = *in.Name
		}
		if in.Age != nil {
			cur.Age = *in.Age
		}
		if err := tx.Persons().Update(ctx, cur); err != nil {
			return fmt.Errorf("update person %d: %w", id, err)
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.obs.Mutation(KindPerson, "update")
	s.log.Info("person updated", "id", id)
	return out, nil
}

// Delete removes the person and applies the reference policy to their
// transactions in the same unit of work.
func (s *PersonService) Delete(ctx context.Context, id uint) error {
	var released int64
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		ok, err := tx.Persons().Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check person %d: %w", id, err)
		}
		if !ok {
			return &NotFoundError{Kind: KindPerson, ID: id}
		}
		released, err = releaseReferences(ctx, tx, s.policy, KindPerson, id, store.TransactionFilter{PersonID: id})
		if err != nil {
			return err
		}
		if err := tx.Persons().Delete(ctx, id); err != nil {
			return notFound(err, KindPerson, id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.obs.Mutation(KindPerson, "delete")
	s.log.Info("person deleted", "id", id, "policy", string(s.policy), "transactions_removed", released)
	return nil
}
