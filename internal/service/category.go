package service

import (
	"context"
	"fmt"
	"strings"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/store"
)

type UpdateCategoryInput struct {
	Description *string
	Purpose     *models.Purpose
}

type CategoryService struct {
	store  store.Store
	log    *logger.Logger
	obs    Observer
	policy ReferencePolicy
}

func (s *CategoryService) Create(ctx context.Context, description string, purpose models.Purpose) (*models.Category, error) {
	c := &models.Category{Description: description, Purpose: purpose}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.obs.Mutation(KindCategory, "create")
	s.log.Info("category created", "id", c.ID, "purpose", c.Purpose.String())
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.store.Categories().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, KindCategory, id)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	out, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in UpdateCategoryInput) (*models.Category, error) {
	var out *models.Category
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		cur, err := tx.Categories().Get(ctx, id)
		if err != nil {
			return notFound(err, KindCategory, id)
		}
		if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
			cur.Description = *in.Description
		}
		if in.Purpose != nil {
			cur.Purpose = *in.Purpose
		}
		if err := tx.Categories().Update(ctx, cur); err != nil {
			return fmt.Errorf("update category %d: %w", id, err)
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.obs.Mutation(KindCategory, "update")
	s.log.Info("category updated", "id", id)
	return out, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	var released int64
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		ok, err := tx.Categories().Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check category %d: %w", id, err)
		}
		if !ok {
			return &NotFoundError{Kind: KindCategory, ID: id}
		}
		released, err = releaseReferences(ctx, tx, s.policy, KindCategory, id, store.TransactionFilter{CategoryID: id})
		if err != nil {
			return err
		}
		if err := tx.Categories().Delete(ctx, id); err != nil {
			return notFound(err, KindCategory, id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.obs.Mutation(KindCategory, "delete")
	s.log.Info("category deleted", "id", id, "policy", string(s.policy), "transactions_removed", released)
	return nil
}
