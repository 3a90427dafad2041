package service

import (
	"encoding/json"

	"homebudget/internal/models"

	"github.com/shopspring/decimal"
)

// Totals is the aggregate of a set of transactions. Balance is derived.
type Totals struct {
	Transactions []models.Transaction
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

func (t Totals) Balance() decimal.Decimal {
	return t.TotalIncome.Sub(t.TotalExpense)
}

// Add combines two summaries of disjoint transaction sets.
func (t Totals) Add(o Totals) Totals {
	txs := make([]models.Transaction, 0, len(t.Transactions)+len(o.Transactions))
	txs = append(txs, t.Transactions...)
	txs = append(txs, o.Transactions...)
	return Totals{
		Transactions: txs,
		TotalIncome:  t.TotalIncome.Add(o.TotalIncome),
		TotalExpense: t.TotalExpense.Add(o.TotalExpense),
	}
}

func (t Totals) MarshalJSON() ([]byte, error) {
	txs := t.Transactions
	if txs == nil {
		txs = []models.Transaction{}
	}
	return json.Marshal(struct {
		Transactions []models.Transaction `json:"transactions"`
		TotalIncome  decimal.Decimal      `json:"totalIncome"`
		TotalExpense decimal.Decimal      `json:"totalExpense"`
		Balance      decimal.Decimal      `json:"balance"`
	}{txs, t.TotalIncome, t.TotalExpense, t.Balance()})
}

// Summarize sums income and expense values of txs. Records with an unknown
// type are listed but counted on neither side.
func Summarize(txs []models.Transaction) Totals {
	out := Totals{
		Transactions: txs,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			out.TotalIncome = out.TotalIncome.Add(t.Value)
		case models.TypeExpense:
			out.TotalExpense = out.TotalExpense.Add(t.Value)
		}
	}
	return out
}
