package models

import (
	"strings"
	"time"
)

// Purpose is a bitset telling which transaction types a category accepts.
type Purpose uint8

const (
	PurposeNone    Purpose = 0
	PurposeIncome  Purpose = 1
	PurposeExpense Purpose = 2
	PurposeBoth            = PurposeIncome | PurposeExpense
)

// Valid reports whether p only carries known bits.
func (p Purpose) Valid() bool {
	return p&^PurposeBoth == 0
}

// Allows reports whether a transaction of type t may be filed under p.
func (p Purpose) Allows(t TransactionType) bool {
	switch t {
	case TypeIncome:
		return p&PurposeIncome != 0
	case TypeExpense:
		return p&PurposeExpense != 0
	}
	return false
}

func (p Purpose) String() string {
	if p == PurposeNone {
		return "none"
	}
	var parts []string
	if p&PurposeIncome != 0 {
		parts = append(parts, "income")
	}
	if p&PurposeExpense != 0 {
		parts = append(parts, "expense")
	}
	return strings.Join(parts, "|")
}

// Category groups transactions, e.g. "Groceries" or "Salary".
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:400;not null" json:"description"`
	Purpose     Purpose   `gorm:"not null;default:0" json:"purpose"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
