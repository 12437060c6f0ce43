package validation

import (
	"time"

	"dashen/internal/models"
)

// Establishment-date bounds: the business must have existed for at least
// one month and at most 100 years.
const (
	minBusinessAgeMonths = 1
	maxBusinessAgeYears  = 100
)

// LoanAmountValid reports whether amount is within the lending bounds.
func LoanAmountValid(amount float64) bool {
	return amount >= models.MinLoanAmount && amount <= models.MaxLoanAmount
}

// EstablishmentDateValid reports whether a business establishment date is
// acceptable relative to now. Exactly one month ago is valid; less than one
// month is too young, more than 100 years is implausible.
func EstablishmentDateValid(date, now time.Time) bool {
	if date.After(now.AddDate(0, -minBusinessAgeMonths, 0)) {
		return false
	}
	if date.Before(now.AddDate(-maxBusinessAgeYears, 0, 0)) {
		return false
	}
	return true
}

// Application validates a customer application ahead of persistence.
func (v *Validator) Application(c *models.Customer) {
	v.Required("firstName", c.FirstName)
	v.Required("lastName", c.LastName)
	v.Required("phone", c.Phone)
	v.Email("email", c.Email)
	v.Required("loanType", c.LoanType)
	v.Check(LoanAmountValid(c.LoanAmount), "loanAmount",
		"must be between 100,000 and 10,000,000")
	v.Check(c.LoanPeriod > 0, "loanPeriod", "must be greater than zero")
	v.Required("loanPurpose", c.LoanPurpose)
	if c.DateOfEstablishment != nil {
		v.Check(EstablishmentDateValid(*c.DateOfEstablishment, time.Now()),
			"dateOfEstablishment",
			"must be at least one month and at most 100 years in the past")
	}
}

// DecisionInput validates a committee-level decision before any write. A
// rejection or reversal must always carry a reason.
func (v *Validator) DecisionInput(decision, reason string) {
	v.Check(models.ValidDecision(decision), "decision",
		"must be APPROVED, REJECTED or COMMITTE_REVERSED")
	if decision == models.DecisionRejected || decision == models.DecisionCommitteReversed {
		v.Required("decisionReason", reason)
	}
}
