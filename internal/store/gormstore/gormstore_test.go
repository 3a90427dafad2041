package gormstore

import (
	"path/filepath"
	"testing"

	"homebudget/internal/config"
	"homebudget/internal/database"
	"homebudget/internal/store"
	"homebudget/internal/store/storetest"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	s := New(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGormStore(t *testing.T) {
	storetest.Run(t, newTestStore)
}
