package service

import (
	"context"
	"path/filepath"
	"testing"

	"homebudget/internal/config"
	"homebudget/internal/database"
	"homebudget/internal/models"
	"homebudget/internal/store"
	"homebudget/internal/store/gormstore"
	"homebudget/internal/store/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// backends lists every store implementation the service tests run against.
var backends = []struct {
	name string
	open func(t *testing.T) store.Store
}{
	{"memory", func(t *testing.T) store.Store { return memory.New() }},
	{"sqlite", func(t *testing.T) store.Store {
		db, err := database.Init(config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "ledger.db"),
		})
		require.NoError(t, err)
		require.NoError(t, database.AutoMigrate(db))
		s := gormstore.New(db)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s store.Store)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

type fixture struct {
	svc      *Services
	person   *models.Person
	category *models.Category
}

func newFixture(t *testing.T, s store.Store, opts Options) fixture {
	t.Helper()
	ctx := context.Background()
	svc := New(s, opts)
	p, err := svc.Persons.Create(ctx, "Alice", 34)
	require.NoError(t, err)
	c, err := svc.Categories.Create(ctx, "Household", models.PurposeBoth)
	require.NoError(t, err)
	return fixture{svc: svc, person: p, category: c}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

type countingObserver struct {
	calls map[string]int
}

func (o *countingObserver) Mutation(kind Kind, op string) {
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	o.calls[string(kind)+"."+op]++
}
