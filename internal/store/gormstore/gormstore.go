// Package gormstore implements store.Store on top of gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"homebudget/internal/store"

	"gorm.io/gorm"
)

// Store wraps a *gorm.DB. Inside Atomic the wrapped handle is the open
// transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Persons() store.PersonRepo {
	return &personRepo{db: s.db}
}

func (s *Store) Categories() store.CategoryRepo {
	return &categoryRepo{db: s.db}
}

func (s *Store) Transactions() store.TransactionRepo {
	return &transactionRepo{db: s.db}
}

// Atomic runs fn inside a database transaction.
func (s *Store) Atomic(ctx context.Context, fn func(store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

// translate maps gorm's not-found error onto the store sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrRecordNotFound
	}
	return err
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// deleteByID removes one row and reports ErrRecordNotFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}
