package service

import (
	"context"
	"encoding/json"
	"testing"

	"homebudget/internal/models"
	"homebudget/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(v string, typ models.TransactionType) models.Transaction {
	return models.Transaction{Value: dec(v), Type: typ}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name                     string
		txs                      []models.Transaction
		income, expense, balance string
	}{
		{"empty", nil, "0", "0", "0"},
		{"income only", []models.Transaction{tx("100.10", models.TypeIncome), tx("0.20", models.TypeIncome)}, "100.30", "0", "100.30"},
		{"mixed", []models.Transaction{
			tx("100", models.TypeIncome),
			tx("50", models.TypeIncome),
			tx("30", models.TypeExpense),
		}, "150", "30", "120"},
		{"negative balance", []models.Transaction{tx("10", models.TypeIncome), tx("25.55", models.TypeExpense)}, "10", "25.55", "-15.55"},
		{"unknown type not counted", []models.Transaction{tx("5", models.TransactionType(9))}, "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.txs)
			assert.True(t, got.TotalIncome.Equal(dec(tt.income)), "income %s", got.TotalIncome)
			assert.True(t, got.TotalExpense.Equal(dec(tt.expense)), "expense %s", got.TotalExpense)
			assert.True(t, got.Balance().Equal(dec(tt.balance)), "balance %s", got.Balance())
			assert.Len(t, got.Transactions, len(tt.txs))
		})
	}
}

func TestSummarizeIsAdditive(t *testing.T) {
	a := []models.Transaction{tx("0.10", models.TypeIncome), tx("0.20", models.TypeExpense)}
	b := []models.Transaction{tx("0.30", models.TypeIncome), tx("7", models.TypeExpense), tx("1.01", models.TypeIncome)}

	whole := Summarize(append(append([]models.Transaction{}, a...), b...))
	parts := Summarize(a).Add(Summarize(b))

	assert.True(t, whole.TotalIncome.Equal(parts.TotalIncome))
	assert.True(t, whole.TotalExpense.Equal(parts.TotalExpense))
	assert.True(t, whole.Balance().Equal(parts.Balance()))
	assert.Len(t, parts.Transactions, 5)
	// exact decimal arithmetic, no float drift
	assert.Equal(t, "1.41", parts.TotalIncome.String())
}

func TestTotalsJSON(t *testing.T) {
	b, err := json.Marshal(Summarize(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions":[],"totalIncome":0,"totalExpense":0,"balance":0}`, string(b))
}

func TestTotalsByCategory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		f := newFixture(t, s, Options{})
		other, err := f.svc.Categories.Create(ctx, "Other", models.PurposeBoth)
		require.NoError(t, err)

		rows := []struct {
			value    string
			typ      models.TransactionType
			category uint
		}{
			{"100", models.TypeIncome, f.category.ID},
			{"50", models.TypeIncome, f.category.ID},
			{"30", models.TypeExpense, f.category.ID},
			{"999", models.TypeExpense, other.ID},
		}
		for _, r := range rows {
			_, err := f.svc.Transactions.Create(ctx, CreateTransactionInput{
				Description: "row", Value: dec(r.value), Type: r.typ,
				CategoryID: r.category, PersonID: f.person.ID,
			})
			require.NoError(t, err)
		}

		got, err := f.svc.Transactions.TotalsByCategory(ctx, f.category.ID)
		require.NoError(t, err)
		assert.True(t, got.TotalIncome.Equal(dec("150")))
		assert.True(t, got.TotalExpense.Equal(dec("30")))
		assert.True(t, got.Balance().Equal(dec("120")))
		assert.Len(t, got.Transactions, 3)

		all, err := f.svc.Transactions.Totals(ctx)
		require.NoError(t, err)
		assert.True(t, all.TotalExpense.Equal(dec("1029")))
		assert.Len(t, all.Transactions, 4)
	})
}
