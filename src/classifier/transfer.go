package classifier

import "budgee-insights/src/models"

// IsInvestmentContribution reports money moving into investment, retirement
// or savings vehicles. Every other classification path excludes these so a
// contribution is never counted as income or spending.
func IsInvestmentContribution(tx models.Transaction) bool {
	s := tx.Structured
	if s.Known() && s.Primary == models.PrimaryTransferOut &&
		s.DetailedHas("INVESTMENT", "RETIREMENT", "SAVINGS") {
		return true
	}
	if labelsMatch(tx.Categories, investmentLabels) {
		return true
	}
	text := searchText(tx)
	if brokeragePattern.MatchString(text) && (containsAny(text, contributionTerms) || tx.Amount > 0) {
		return true
	}
	return containsAny(text, contributionPhrases)
}

// IsInternalTransfer reports self-transfers and debt servicing such as credit
// card payments. These move money between the user's own accounts and are
// neither income nor spending.
func IsInternalTransfer(tx models.Transaction) bool {
	if tx.Structured.DetailedHas("ACCOUNT_TRANSFER", "SAME_INSTITUTION", "CREDIT_CARD_PAYMENT") {
		return true
	}
	if labelsMatch(tx.Categories, internalTransferLabels) {
		return true
	}
	return containsAny(searchText(tx), internalTransferNames)
}

// isDebtServicing narrows an internal transfer to a payment against a debt.
func isDebtServicing(tx models.Transaction) bool {
	if tx.Structured.DetailedHas("CREDIT_CARD_PAYMENT") {
		return true
	}
	if labelsMatch(tx.Categories, labelSet("CREDIT_CARD", "CREDIT_CARD_PAYMENT")) {
		return true
	}
	return containsAny(searchText(tx), debtServicingNames)
}
