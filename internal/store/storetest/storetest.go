// Package storetest holds a behaviour suite every store.Store
// implementation must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"homebudget/internal/models"
	"homebudget/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a store implementation. newStore must return an empty store
// on every call.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("PersonCRUD", func(t *testing.T) { testPersonCRUD(t, newStore(t)) })
	t.Run("CategoryCRUD", func(t *testing.T) { testCategoryCRUD(t, newStore(t)) })
	t.Run("TransactionHydration", func(t *testing.T) { testTransactionHydration(t, newStore(t)) })
	t.Run("TransactionFilter", func(t *testing.T) { testTransactionFilter(t, newStore(t)) })
	t.Run("AtomicRollback", func(t *testing.T) { testAtomicRollback(t, newStore(t)) })
	t.Run("AtomicCommit", func(t *testing.T) { testAtomicCommit(t, newStore(t)) })
}

func testPersonCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	repo := s.Persons()

	alice := &models.Person{Name: "Alice", Age: 34}
	require.NoError(t, repo.Create(ctx, alice))
	require.NotZero(t, alice.ID)
	bob := &models.Person{Name: "Bob", Age: 16}
	require.NoError(t, repo.Create(ctx, bob))
	assert.Greater(t, bob.ID, alice.ID)

	got, err := repo.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 34, got.Age)

	byName, err := repo.FindByName(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, byName.ID)

	_, err = repo.FindByName(ctx, "Carol")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	alice.Age = 35
	require.NoError(t, repo.Update(ctx, alice))
	got, err = repo.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, got.Age)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alice.ID, list[0].ID)

	require.NoError(t, repo.Delete(ctx, bob.ID))
	ok, err := repo.Exists(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, repo.Delete(ctx, bob.ID), store.ErrRecordNotFound)
	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func testCategoryCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	repo := s.Categories()

	c := &models.Category{Description: "Groceries", Purpose: models.PurposeExpense}
	require.NoError(t, repo.Create(ctx, c))

	c.Purpose = models.PurposeNone
	require.NoError(t, repo.Update(ctx, c))
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurposeNone, got.Purpose)

	ok, err := repo.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), store.ErrRecordNotFound)
}

func testTransactionHydration(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := &models.Person{Name: "Alice", Age: 30}
	c := &models.Category{Description: "Salary", Purpose: models.PurposeIncome}
	require.NoError(t, s.Persons().Create(ctx, p))
	require.NoError(t, s.Categories().Create(ctx, c))

	tx := &models.Transaction{
		Description: "October pay",
		Value:       decimal.RequireFromString("2500.75"),
		Type:        models.TypeIncome,
		CategoryID:  c.ID,
		PersonID:    p.ID,
	}
	require.NoError(t, s.Transactions().Create(ctx, tx))

	got, err := s.Transactions().Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.Value.Equal(decimal.RequireFromString("2500.75")), "value %s", got.Value)
	require.NotNil(t, got.Person)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Alice", got.Person.Name)
	assert.Equal(t, "Salary", got.Category.Description)

	// orphaned references stay readable
	require.NoError(t, s.Persons().Delete(ctx, p.ID))
	got, err = s.Transactions().Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Person)
	assert.Equal(t, p.ID, got.PersonID)
}

func testTransactionFilter(t *testing.T, s store.Store) {
	ctx := context.Background()
	for _, row := range []struct{ person, category uint }{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {2, 2}} {
		require.NoError(t, s.Transactions().Create(ctx, &models.Transaction{
			Description: "row",
			Value:       decimal.NewFromInt(10),
			Type:        models.TypeExpense,
			PersonID:    row.person,
			CategoryID:  row.category,
		}))
	}

	all, err := s.Transactions().List(ctx, store.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	byPerson, err := s.Transactions().List(ctx, store.TransactionFilter{PersonID: 2})
	require.NoError(t, err)
	assert.Len(t, byPerson, 3)

	n, err := s.Transactions().Count(ctx, store.TransactionFilter{CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	removed, err := s.Transactions().DeleteWhere(ctx, store.TransactionFilter{PersonID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = s.Transactions().DeleteWhere(ctx, store.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, removed)

	n, err = s.Transactions().Count(ctx, store.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func testAtomicRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(tx store.Store) error {
		if err := tx.Persons().Create(ctx, &models.Person{Name: "Ghost", Age: 40}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.Persons().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testAtomicCommit(t *testing.T, s store.Store) {
	ctx := context.Background()
	err := s.Atomic(ctx, func(tx store.Store) error {
		p := &models.Person{Name: "Alice", Age: 30}
		if err := tx.Persons().Create(ctx, p); err != nil {
			return err
		}
		ok, err := tx.Persons().Exists(ctx, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("created person not visible inside unit of work")
		}
		return nil
	})
	require.NoError(t, err)

	list, err := s.Persons().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
