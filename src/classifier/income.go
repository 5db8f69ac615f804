package classifier

import (
	"math"

	"budgee-insights/src/models"
)

type verdict int

const (
	abstain verdict = iota
	accept
	reject
)

// incomeRule is one rung of the income ladder. A rule either decides or
// abstains and lets the next, less trustworthy rule look at the transaction.
type incomeRule struct {
	Name   string
	Decide func(tx models.Transaction) verdict
}

// Rule names that decide income.
const (
	RuleStructuredIncome = "structured_income"
	RuleLegacyIncome     = "legacy_income"
	RuleNameIncome       = "name_income"
	RuleInterestIncome   = "interest_income"
	RuleAmountFallback   = "amount_fallback"
)

// fallbackIncomeThreshold accepts large uncategorized inflows as income.
// Sandbox data frequently arrives without any category at all.
const fallbackIncomeThreshold = 500.0

var incomeRules = []incomeRule{
	{Name: RuleStructuredIncome, Decide: structuredIncome},
	{Name: RuleLegacyIncome, Decide: legacyIncome},
	{Name: RuleNameIncome, Decide: nameIncome},
	{Name: RuleInterestIncome, Decide: interestIncome},
	{Name: RuleAmountFallback, Decide: amountFallbackIncome},
}

// IsActualIncome reports whether an inflow is real income rather than a
// refund, self-transfer or investment movement.
func IsActualIncome(tx models.Transaction) bool {
	ok, _ := incomeVerdict(tx)
	return ok
}

// incomeVerdict returns the income decision and the name of the rule that made it.
func incomeVerdict(tx models.Transaction) (bool, string) {
	if tx.Amount >= 0 {
		return false, ""
	}
	for _, r := range incomeRules {
		switch r.Decide(tx) {
		case accept:
			return true, r.Name
		case reject:
			return false, r.Name
		}
	}
	return false, ""
}

// structuredIncome trusts a known structured category over everything else,
// whatever its confidence tier.
func structuredIncome(tx models.Transaction) verdict {
	s := tx.Structured
	if !s.Known() {
		return abstain
	}
	switch s.Primary {
	case models.PrimaryIncome:
		return accept
	case models.PrimaryTransferIn:
		if s.DetailedHas("ACCOUNT_TRANSFER", "INVESTMENT", "RETIREMENT", "SAVINGS") {
			return reject
		}
		return accept
	default:
		return reject
	}
}

func legacyIncome(tx models.Transaction) verdict {
	if labelsMatch(tx.Categories, incomeLabels) && !labelsContain(tx.Categories, "TRANSFER") {
		return accept
	}
	return abstain
}

func nameIncome(tx models.Transaction) verdict {
	text := searchText(tx)
	if containsAny(text, refundTerms) {
		return reject
	}
	if containsAny(text, incomeNameTerms) {
		return accept
	}
	if containsAny(text, genericIncomeNameTerms) && !containsAny(text, genericDisqualifiers) {
		return accept
	}
	return abstain
}

func interestIncome(tx models.Transaction) verdict {
	if containsAny(searchText(tx), []string{"interest", "dividend"}) {
		return accept
	}
	return abstain
}

// amountFallbackIncome only applies to transactions with no category data at all.
func amountFallbackIncome(tx models.Transaction) verdict {
	if tx.Structured != nil || hasLegacy(tx) {
		return abstain
	}
	text := searchText(tx)
	if containsAny(text, nonIncomeFallbackTerms) || containsAny(text, internalTransferNames) {
		return reject
	}
	if math.Abs(tx.Amount) > fallbackIncomeThreshold {
		return accept
	}
	return reject
}
