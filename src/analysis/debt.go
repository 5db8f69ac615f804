package analysis

import (
	"math"
	"strings"

	"budgee-insights/src/models"
)

const (
	creditMinimumRate  = 0.025
	creditMinimumFloor = 25.0
	otherLoanRate      = 0.015
)

type loanKind int

const (
	loanOther loanKind = iota
	loanStudent
	loanAuto
	loanMortgage
	loanPersonal
)

func classifyLoan(subtype string) loanKind {
	s := strings.ToLower(subtype)
	switch {
	case strings.Contains(s, "student"):
		return loanStudent
	case strings.Contains(s, "auto"):
		return loanAuto
	case strings.Contains(s, "mortgage"), strings.Contains(s, "home equity"):
		return loanMortgage
	case strings.Contains(s, "personal"), strings.Contains(s, "consumer"):
		return loanPersonal
	default:
		return loanOther
	}
}

// EstimateMinimumPayment estimates a monthly minimum payment for a debt
// account when the provider does not supply one.
func EstimateMinimumPayment(balance float64, accountType models.AccountType, subtype string) float64 {
	if balance <= 0 {
		return 0
	}
	if accountType == models.AccountTypeCredit {
		return math.Max(balance*creditMinimumRate, creditMinimumFloor)
	}
	switch classifyLoan(subtype) {
	case loanStudent:
		return balance / 120
	case loanAuto:
		return balance / 60
	case loanMortgage:
		return (balance / 360) * 1.5
	case loanPersonal:
		return balance / 36
	default:
		return balance * otherLoanRate
	}
}

// DefaultAPR is the assumed annual rate, in percent, for a debt account
// whose APR the provider omitted.
func DefaultAPR(accountType models.AccountType, subtype string) float64 {
	if accountType == models.AccountTypeCredit {
		return 22.99
	}
	switch classifyLoan(subtype) {
	case loanStudent:
		return 5.5
	case loanAuto:
		return 7.5
	case loanMortgage:
		return 6.5
	case loanPersonal:
		return 11.0
	default:
		return 9.0
	}
}

// MinimumPayment returns the provider minimum when present and positive,
// otherwise the estimate. The bool reports whether the value was estimated.
func MinimumPayment(a models.Account) (float64, bool) {
	if a.MinimumPayment != nil && *a.MinimumPayment > 0 {
		return *a.MinimumPayment, false
	}
	return EstimateMinimumPayment(debtBalance(a), a.Type, a.Subtype), true
}

// debtBalance is the amount owed; some institutions report it negative.
func debtBalance(a models.Account) float64 {
	return math.Abs(a.Current())
}

func debtRecord(a models.Account) models.DebtRecord {
	minimum, estimated := MinimumPayment(a)
	apr := DefaultAPR(a.Type, a.Subtype)
	if a.APR != nil && *a.APR > 0 {
		apr = *a.APR
	} else {
		estimated = true
	}
	return models.DebtRecord{
		AccountID:      a.ID,
		Name:           a.Name,
		Type:           a.Type,
		Subtype:        a.Subtype,
		Balance:        debtBalance(a),
		APR:            apr,
		MinimumPayment: minimum,
		Estimated:      estimated,
	}
}
