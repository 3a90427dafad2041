package service

import (
	"fmt"

	"homebudget/internal/models"
)

// Eligibility restricts which transactions a person may record in a
// category. A nil *Eligibility disables the checks.
type Eligibility struct {
	AdultAge int
}

// Check applies the rules to whichever of p and c is known; a nil argument
// skips the rule that needs it.
func (e *Eligibility) Check(p *models.Person, c *models.Category, t models.TransactionType) error {
	if e == nil {
		return nil
	}
	if p != nil && p.IsMinor(e.AdultAge) && t != models.TypeExpense {
		return &PolicyViolationError{
			Reason: fmt.Sprintf("person %d is under %d and may only record expenses", p.ID, e.AdultAge),
		}
	}
	if c != nil && !c.Purpose.Allows(t) {
		return &PolicyViolationError{
			Reason: fmt.Sprintf("category %d (%s) does not accept %s transactions", c.ID, c.Purpose, t),
		}
	}
	return nil
}
