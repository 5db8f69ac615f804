package models

import "strings"

type AccountType string

const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// ParseAccountType folds provider type strings onto the four classification groups.
func ParseAccountType(s string) AccountType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "depository":
		return AccountTypeDepository
	case "credit":
		return AccountTypeCredit
	case "loan":
		return AccountTypeLoan
	case "investment", "brokerage":
		return AccountTypeInvestment
	default:
		return AccountTypeOther
	}
}

// Account purpose tags managed by the user.
const (
	TagEmergencyFund = "emergency_fund"
	TagDiscretionary = "discretionary"
	TagSavings       = "savings"
)

type Account struct {
	ID               string      `json:"id"`
	ItemID           string      `json:"item_id"`
	AccountID        string      `json:"account_id"`
	Name             string      `json:"name"`
	OfficialName     string      `json:"official_name"`
	Mask             string      `json:"mask"`
	Type             AccountType `json:"type"`
	Subtype          string      `json:"subtype"`
	CurrentBalance   *float64    `json:"current_balance"`
	AvailableBalance *float64    `json:"available_balance"`
	CreditLimit      *float64    `json:"credit_limit"`
	MinimumPayment   *float64    `json:"minimum_payment"`
	APR              *float64    `json:"apr"`
	Tags             []string    `json:"tags"`
	CreatedAt        string      `json:"created_at"`
}

func (a Account) IsDebt() bool {
	return a.Type == AccountTypeCredit || a.Type == AccountTypeLoan
}

func (a Account) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Current returns the current balance, or zero when the provider omitted it.
func (a Account) Current() float64 {
	if a.CurrentBalance == nil {
		return 0
	}
	return *a.CurrentBalance
}

// Spendable prefers the available balance and falls back to current.
func (a Account) Spendable() float64 {
	if a.AvailableBalance != nil {
		return *a.AvailableBalance
	}
	return a.Current()
}
