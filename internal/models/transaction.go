package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// values go over the wire as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType is the direction of money flow.
type TransactionType uint8

const (
	TypeIncome  TransactionType = 1
	TypeExpense TransactionType = 2
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t TransactionType) String() string {
	switch t {
	case TypeIncome:
		return "income"
	case TypeExpense:
		return "expense"
	}
	return "unknown"
}

// Transaction is a single income or expense record.
// CategoryID and PersonID are checked when the record is created or
// re-pointed; they are not constrained at the database level, so a
// later delete of the referenced row may leave them dangling.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:400;not null" json:"description"`
	Value       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"value"`
	Type        TransactionType `gorm:"index;not null" json:"type"`
	CategoryID  uint            `gorm:"index;not null" json:"categoryId"`
	PersonID    uint            `gorm:"index;not null" json:"personId"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`

	// populated on reads, nil when the referenced row no longer exists
	Category *Category `gorm:"foreignKey:CategoryID" json:"category"`
	Person   *Person   `gorm:"foreignKey:PersonID" json:"person"`
}
