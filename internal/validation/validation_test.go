package validation

import (
	"testing"
	"time"

	"dashen/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatorFirstErrorWins(t *testing.T) {
	v := New()
	v.AddError("email", "first")
	v.AddError("email", "second")
	assert.Equal(t, "first", v.Errors["email"])
	assert.False(t, v.Valid())
	assert.Equal(t, "first", v.First())
}

func TestValidatorChecks(t *testing.T) {
	v := New()
	v.Required("name", "  ")
	v.Email("email", "not-an-email")
	v.Phone("phone", "12ab")
	v.Positive("amount", 0)
	assert.Len(t, v.Errors, 4)

	v = New()
	v.Required("name", "Abebe")
	v.Email("email", "abebe@example.com")
	v.Phone("phone", "+251911223344")
	v.Positive("amount", 10)
	assert.True(t, v.Valid())
}

func TestLoanAmountValid(t *testing.T) {
	tests := []struct {
		amount float64
		want   bool
	}{
		{50000, false},
		{99999.99, false},
		{100000, true},
		{5000000, true},
		{10000000, true},
		{10000001, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LoanAmountValid(tt.amount), "amount %v", tt.amount)
	}
}

func TestEstablishmentDateValid(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"exactly one month old", now.AddDate(0, -1, 0), true},
		{"two weeks old", now.AddDate(0, 0, -14), false},
		{"tomorrow", now.AddDate(0, 0, 1), false},
		{"ten years old", now.AddDate(-10, 0, 0), true},
		{"exactly one hundred years old", now.AddDate(-100, 0, 0), true},
		{"older than one hundred years", now.AddDate(-100, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstablishmentDateValid(tt.date, now))
		})
	}
}

func validCustomer() *models.Customer {
	return &models.Customer{
		FirstName:   "Abebe",
		LastName:    "Kebede",
		Email:       "abebe@example.com",
		Phone:       "+251911223344",
		LoanType:    "TERM_LOAN",
		LoanAmount:  500000,
		LoanPeriod:  24,
		LoanPurpose: "Working capital",
	}
}

func TestApplication(t *testing.T) {
	t.Run("valid application", func(t *testing.T) {
		v := New()
		v.Application(validCustomer())
		assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
	})

	t.Run("loan amount below minimum", func(t *testing.T) {
		c := validCustomer()
		c.LoanAmount = 50000
		v := New()
		v.Application(c)
		assert.Contains(t, v.Errors, "loanAmount")
	})

	t.Run("missing required fields", func(t *testing.T) {
		v := New()
		v.Application(&models.Customer{})
		for _, field := range []string{"firstName", "lastName", "phone", "email", "loanType", "loanPurpose"} {
			assert.Contains(t, v.Errors, field)
		}
	})

	t.Run("zero loan period", func(t *testing.T) {
		c := validCustomer()
		c.LoanPeriod = 0
		v := New()
		v.Application(c)
		assert.Contains(t, v.Errors, "loanPeriod")
	})

	t.Run("business too young", func(t *testing.T) {
		c := validCustomer()
		d := time.Now().AddDate(0, 0, -7)
		c.DateOfEstablishment = &d
		v := New()
		v.Application(c)
		assert.Contains(t, v.Errors, "dateOfEstablishment")
	})

	t.Run("establishment date optional", func(t *testing.T) {
		c := validCustomer()
		c.DateOfEstablishment = nil
		v := New()
		v.Application(c)
		assert.True(t, v.Valid())
	})
}

func TestDecisionInput(t *testing.T) {
	t.Run("approval needs no reason", func(t *testing.T) {
		v := New()
		v.DecisionInput(models.DecisionApproved, "")
		assert.True(t, v.Valid())
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		v := New()
		v.DecisionInput(models.DecisionRejected, "")
		assert.Contains(t, v.Errors, "decisionReason")
	})

	t.Run("reversal requires a reason", func(t *testing.T) {
		v := New()
		v.DecisionInput(models.DecisionCommitteReversed, " ")
		assert.Contains(t, v.Errors, "decisionReason")
	})

	t.Run("unknown decision", func(t *testing.T) {
		v := New()
		v.DecisionInput("MAYBE", "because")
		assert.Contains(t, v.Errors, "decision")
	})
}
