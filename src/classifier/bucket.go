package classifier

import "budgee-insights/src/models"

// Rule is one named step of the bucket dispatcher. Rules are evaluated in
// order and the first one that applies decides the bucket.
type Rule struct {
	Name  string
	Apply func(tx models.Transaction) (models.Bucket, bool)
}

const (
	RuleUserOverride     = "user_override"
	RuleUserRule         = "user_rule"
	RuleInvestment       = "investment_contribution"
	RuleIncome           = "actual_income"
	RuleInternalTransfer = "internal_transfer"
	RuleStructuredTable  = "structured_category"
	RuleLegacyKeywords   = "legacy_keywords"
	RuleAmountSign       = "amount_sign"
)

var bucketRules = []Rule{
	{Name: RuleUserOverride, Apply: userOverrideBucket},
	{Name: RuleInvestment, Apply: investmentBucket},
	{Name: RuleIncome, Apply: incomeBucket},
	{Name: RuleInternalTransfer, Apply: internalTransferBucket},
	{Name: RuleStructuredTable, Apply: structuredBucket},
	{Name: RuleLegacyKeywords, Apply: legacyBucket},
	{Name: RuleAmountSign, Apply: amountSignBucket},
}

// Rules returns the dispatcher chain in priority order.
func Rules() []Rule {
	out := make([]Rule, len(bucketRules))
	copy(out, bucketRules)
	return out
}

// Classification is the derived, display-ready view of one transaction.
type Classification struct {
	TransactionID   string        `json:"transaction_id"`
	Bucket          models.Bucket `json:"bucket_category"`
	Rule            string        `json:"rule"`
	Essential       bool          `json:"essential"`
	Discretionary   bool          `json:"discretionary"`
	NeedsValidation bool          `json:"needs_validation"`
}

// CategorizeToBucket assigns exactly one bucket to a transaction.
func CategorizeToBucket(tx models.Transaction) models.Bucket {
	return Classify(tx).Bucket
}

// Classify runs the dispatcher. User rules, when given, sit directly below an
// explicit user override and above every heuristic.
func Classify(tx models.Transaction, userRules ...UserRule) Classification {
	c := Classification{
		TransactionID: tx.ID,
		Essential:     IsEssentialSpending(tx),
		Discretionary: IsDiscretionarySpending(tx),
	}

	chain := bucketRules
	if len(userRules) > 0 {
		chain = make([]Rule, 0, len(bucketRules)+len(userRules))
		chain = append(chain, bucketRules[0])
		for _, ur := range userRules {
			chain = append(chain, ur.asRule())
		}
		chain = append(chain, bucketRules[1:]...)
	}

	for _, r := range chain {
		if b, ok := r.Apply(tx); ok {
			c.Bucket = b
			c.Rule = r.Name
			break
		}
	}

	c.NeedsValidation = transactionNeedsValidation(tx, c.Rule)
	return c
}

// ClassifyAll classifies a batch, preserving input order.
func ClassifyAll(txs []models.Transaction, userRules ...UserRule) []Classification {
	out := make([]Classification, len(txs))
	for i, tx := range txs {
		out[i] = Classify(tx, userRules...)
	}
	return out
}

// TransactionNeedsValidation reports whether the heuristic result for tx
// should be confirmed by the user.
func TransactionNeedsValidation(tx models.Transaction) bool {
	return Classify(tx).NeedsValidation
}

func transactionNeedsValidation(tx models.Transaction, rule string) bool {
	if tx.UserValidated || tx.HasUserDecision() || rule == RuleUserRule {
		return false
	}
	if rule == RuleIncome {
		if _, by := incomeVerdict(tx); by == RuleAmountFallback {
			return true
		}
	}
	if tx.Structured == nil {
		return NeedsValidation(models.ConfidenceUnknown)
	}
	return NeedsValidation(tx.Structured.Confidence)
}

func userOverrideBucket(tx models.Transaction) (models.Bucket, bool) {
	if tx.OverrideBucket == nil {
		return "", false
	}
	return *tx.OverrideBucket, true
}

func investmentBucket(tx models.Transaction) (models.Bucket, bool) {
	return models.BucketInvested, IsInvestmentContribution(tx)
}

func incomeBucket(tx models.Transaction) (models.Bucket, bool) {
	return models.BucketIncome, IsActualIncome(tx)
}

func internalTransferBucket(tx models.Transaction) (models.Bucket, bool) {
	if !IsInternalTransfer(tx) {
		return "", false
	}
	if tx.Amount > 0 && isDebtServicing(tx) {
		return models.BucketDebt, true
	}
	return models.BucketExcluded, true
}

// structuredBuckets maps primaries whose bucket does not depend on the
// detailed subclass. Transfers are resolved in structuredBucket.
var structuredBuckets = map[models.PrimaryCategory]models.Bucket{
	models.PrimaryIncome:                 models.BucketIncome,
	models.PrimaryLoanPayments:           models.BucketDebt,
	models.PrimaryLoanDisbursements:      models.BucketCash,
	models.PrimaryBankFees:               models.BucketExpenses,
	models.PrimaryFoodAndDrink:           models.BucketExpenses,
	models.PrimaryGeneralMerchandise:     models.BucketExpenses,
	models.PrimaryHomeImprovement:        models.BucketExpenses,
	models.PrimaryMedical:                models.BucketExpenses,
	models.PrimaryPersonalCare:           models.BucketExpenses,
	models.PrimaryGeneralServices:        models.BucketExpenses,
	models.PrimaryGovernmentAndNonProfit: models.BucketExpenses,
	models.PrimaryTransportation:         models.BucketExpenses,
	models.PrimaryRentAndUtilities:       models.BucketExpenses,
	models.PrimaryEntertainment:          models.BucketDisposable,
	models.PrimaryTravel:                 models.BucketDisposable,
}

func structuredBucket(tx models.Transaction) (models.Bucket, bool) {
	s := tx.Structured
	if !s.Known() {
		return "", false
	}
	switch s.Primary {
	case models.PrimaryTransferIn:
		if s.DetailedHas("INVESTMENT", "RETIREMENT") {
			return models.BucketInvested, true
		}
		return models.BucketCash, true
	case models.PrimaryTransferOut:
		if s.DetailedHas("INVESTMENT", "RETIREMENT", "SAVINGS") {
			return models.BucketInvested, true
		}
		if s.DetailedHas("DEBT", "LOAN", "CREDIT_CARD") {
			return models.BucketDebt, true
		}
		return models.BucketExpenses, true
	}
	b, ok := structuredBuckets[s.Primary]
	return b, ok
}

// legacyBuckets is checked in order against normalized legacy labels.
var legacyBuckets = []struct {
	fragments []string
	bucket    models.Bucket
}{
	{[]string{"PAYROLL", "INTEREST", "DIVIDEND", "TAX_REFUND"}, models.BucketIncome},
	{[]string{"INVESTMENT", "RETIREMENT", "BROKERAGE", "401K"}, models.BucketInvested},
	{[]string{"LOAN", "CREDIT_CARD", "MORTGAGE"}, models.BucketDebt},
	{[]string{"SAVINGS", "WITHDRAWAL", "CASH", "DEPOSIT"}, models.BucketCash},
	{[]string{"TRANSFER"}, models.BucketExcluded},
	{[]string{"TRAVEL", "RECREATION", "ENTERTAINMENT", "ARTS"}, models.BucketDisposable},
	{[]string{
		"FOOD", "RESTAURANT", "SHOPS", "SERVICE", "HEALTHCARE", "MEDICAL", "RENT", "UTILITIES",
		"TRANSPORTATION", "PAYMENT", "BANK_FEES", "TAX", "COMMUNITY",
	}, models.BucketExpenses},
}

func legacyBucket(tx models.Transaction) (models.Bucket, bool) {
	if !hasLegacy(tx) {
		return "", false
	}
	for _, lb := range legacyBuckets {
		for _, f := range lb.fragments {
			if labelsContain(tx.Categories, f) {
				return lb.bucket, true
			}
		}
	}
	return "", false
}

func amountSignBucket(tx models.Transaction) (models.Bucket, bool) {
	if tx.Amount < 0 {
		return models.BucketIncome, true
	}
	return models.BucketExpenses, true
}

// BucketTotals sums absolute amounts per bucket.
func BucketTotals(classified []Classification, txs []models.Transaction) map[models.Bucket]float64 {
	totals := make(map[models.Bucket]float64, len(models.AllBuckets))
	for i, c := range classified {
		amt := txs[i].Amount
		if amt < 0 {
			amt = -amt
		}
		totals[c.Bucket] += amt
	}
	return totals
}
