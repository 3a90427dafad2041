package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurposeAllows(t *testing.T) {
	tests := []struct {
		p               Purpose
		income, expense bool
	}{
		{PurposeNone, false, false},
		{PurposeIncome, true, false},
		{PurposeExpense, false, true},
		{PurposeBoth, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			assert.Equal(t, tt.income, tt.p.Allows(TypeIncome))
			assert.Equal(t, tt.expense, tt.p.Allows(TypeExpense))
			assert.False(t, tt.p.Allows(TransactionType(0)))
			assert.True(t, tt.p.Valid())
		})
	}
	assert.False(t, Purpose(4).Valid())
	assert.Equal(t, "income|expense", PurposeBoth.String())
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.True(t, TypeExpense.Valid())
	assert.False(t, TransactionType(0).Valid())
	assert.False(t, TransactionType(3).Valid())
}

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{
		ID:          7,
		Description: "Rent",
		Value:       decimal.RequireFromString("100.50"),
		Type:        TypeExpense,
		CategoryID:  2,
		PersonID:    3,
	}
	b, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"description":"Rent","value":100.5,"type":2,"categoryId":2,"personId":3,"category":null,"person":null}`, string(b))
}

func TestPersonIsMinor(t *testing.T) {
	assert.True(t, (&Person{Age: 17}).IsMinor(18))
	assert.False(t, (&Person{Age: 18}).IsMinor(18))
}
