package plaid

import (
	"fmt"
	"strings"
	"time"

	"budgee-insights/src/models"

	"github.com/plaid/plaid-go/v41/plaid"
)

const dateLayout = "2006-01-02"

// ToTransaction converts a Plaid transaction, keeping both the structured
// personal finance category and the legacy category list.
func ToTransaction(t plaid.Transaction) (models.Transaction, error) {
	date, err := time.Parse(dateLayout, t.GetDate())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: parse date %q: %w", t.GetTransactionId(), t.GetDate(), err)
	}

	tx := models.Transaction{
		ID:         t.GetTransactionId(),
		AccountID:  t.GetAccountId(),
		Amount:     t.GetAmount(),
		Date:       date,
		Name:       t.GetName(),
		Categories: t.GetCategory(),
		Pending:    t.GetPending(),
	}
	if m := t.GetMerchantName(); m != "" {
		tx.MerchantName = &m
	}
	if pfc, ok := t.GetPersonalFinanceCategoryOk(); ok && pfc != nil && pfc.GetPrimary() != "" {
		tx.Structured = &models.StructuredCategory{
			Primary:    models.ParsePrimaryCategory(pfc.GetPrimary()),
			Detailed:   strings.ToUpper(pfc.GetDetailed()),
			Confidence: models.ParseConfidenceLevel(pfc.GetConfidenceLevel()),
		}
	}
	return tx, nil
}

func ToAccount(a plaid.AccountBase) models.Account {
	balances := a.GetBalances()
	acc := models.Account{
		AccountID:    a.GetAccountId(),
		Name:         a.GetName(),
		OfficialName: a.GetOfficialName(),
		Mask:         a.GetMask(),
		Type:         models.ParseAccountType(string(a.GetType())),
		Subtype:      string(a.GetSubtype()),
	}
	if v, ok := balances.GetCurrentOk(); ok && v != nil {
		acc.CurrentBalance = floatPtr(*v)
	}
	if v, ok := balances.GetAvailableOk(); ok && v != nil {
		acc.AvailableBalance = floatPtr(*v)
	}
	if v, ok := balances.GetLimitOk(); ok && v != nil {
		acc.CreditLimit = floatPtr(*v)
	}
	return acc
}

// MergeLiabilities copies APR and minimum payment onto matching accounts.
func MergeLiabilities(accounts []models.Account, l plaid.LiabilitiesObject) {
	byID := make(map[string]*models.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].AccountID] = &accounts[i]
	}
	set := func(accountID string, apr, minimum float64) {
		acc, ok := byID[accountID]
		if !ok {
			return
		}
		if apr > 0 {
			acc.APR = floatPtr(apr)
		}
		if minimum > 0 {
			acc.MinimumPayment = floatPtr(minimum)
		}
	}

	for _, c := range l.GetCredit() {
		set(c.GetAccountId(), purchaseAPR(c.GetAprs()), c.GetMinimumPaymentAmount())
	}
	for _, s := range l.GetStudent() {
		set(s.GetAccountId(), s.GetInterestRatePercentage(), s.GetMinimumPaymentAmount())
	}
	for _, m := range l.GetMortgage() {
		rate := m.GetInterestRate()
		set(m.GetAccountId(), rate.GetPercentage(), m.GetNextMonthlyPayment())
	}
}

// purchaseAPR prefers the purchase APR and falls back to the first one listed.
func purchaseAPR(aprs []plaid.APR) float64 {
	for _, a := range aprs {
		if a.GetAprType() == "purchase_apr" {
			return a.GetAprPercentage()
		}
	}
	if len(aprs) > 0 {
		return aprs[0].GetAprPercentage()
	}
	return 0
}

func floatPtr(f float64) *float64 {
	return &f
}
