package export

import (
	"context"
	"time"

	"homebudget/internal/service"
)

// BuildSnapshot reads the three entity lists inside one store transaction,
// so every transaction in the snapshot refers to the person and category
// state it was read with.
func BuildSnapshot(ctx context.Context, svc *service.Services) (Snapshot, error) {
	snap := Snapshot{Created: time.Now().UTC()}
	err := svc.Atomic(ctx, func(tx *service.Services) error {
		var err error
		if snap.Persons, err = tx.Persons.List(ctx); err != nil {
			return err
		}
		if snap.Categories, err = tx.Categories.List(ctx); err != nil {
			return err
		}
		snap.Transactions, err = tx.Transactions.List(ctx)
		return err
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
