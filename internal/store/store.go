// Package store defines the persistence boundary for persons, categories
// and transactions. Services depend on these interfaces only; gormstore and
// memory provide the implementations.
package store

import (
	"context"
	"errors"

	"homebudget/internal/models"
)

// ErrRecordNotFound is returned by Get/Update/Delete when no row has the id.
var ErrRecordNotFound = errors.New("record not found")

// TransactionFilter narrows a transaction query. Zero fields are ignored.
type TransactionFilter struct {
	PersonID   uint
	CategoryID uint
}

type PersonRepo interface {
	Create(ctx context.Context, p *models.Person) error
	Get(ctx context.Context, id uint) (*models.Person, error)
	List(ctx context.Context) ([]models.Person, error)
	FindByName(ctx context.Context, name string) (*models.Person, error)
	Update(ctx context.Context, p *models.Person) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	Get(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// TransactionRepo reads return records with Person and Category attached
// when the referenced rows still exist.
type TransactionRepo interface {
	Create(ctx context.Context, t *models.Transaction) error
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error)
	Count(ctx context.Context, f TransactionFilter) (int64, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	DeleteWhere(ctx context.Context, f TransactionFilter) (int64, error)
}

// Store groups the repositories. Atomic runs fn against a Store whose
// writes commit together or not at all.
type Store interface {
	Persons() PersonRepo
	Categories() CategoryRepo
	Transactions() TransactionRepo
	Atomic(ctx context.Context, fn func(Store) error) error
	Close() error
}
