package classifier

import (
	"regexp"
	"strings"

	"budgee-insights/src/models"
)

// Legacy category labels, normalized to UPPER_SNAKE.
var (
	incomeLabels = labelSet(
		"PAYROLL", "DIRECT_DEPOSIT", "INTEREST", "INTEREST_EARNED", "DIVIDEND", "DIVIDENDS",
		"TAX_REFUND", "UNEMPLOYMENT", "SOCIAL_SECURITY", "PENSION", "WAGES", "SALARY",
		"RETIREMENT_INCOME", "BENEFITS",
	)
	investmentLabels = labelSet(
		"INVESTMENT", "INVESTMENTS", "RETIREMENT", "BROKERAGE", "401K", "IRA", "ROTH_IRA",
		"RETIREMENT_CONTRIBUTION", "INVESTMENT_AND_RETIREMENT_FUNDS", "MUTUAL_FUNDS",
	)
	internalTransferLabels = labelSet(
		"INTERNAL_ACCOUNT_TRANSFER", "ACCOUNT_TRANSFER", "CREDIT_CARD", "CREDIT_CARD_PAYMENT",
		"KEEP_THE_CHANGE_SAVINGS_PROGRAM", "SAVINGS_TRANSFER",
	)
)

// Transaction-name phrasings, matched case-insensitively as substrings.
var (
	incomeNameTerms = []string{
		"payroll", "direct dep", "dir dep", "salary", "paycheck", "wages", "adp ", "gusto",
		"paychex", "pension", "unemployment", "social security", "ssa treas", "irs treas",
	}
	genericIncomeNameTerms = []string{"credit", "deposit"}
	refundTerms            = []string{"refund", "return", "reversal", "adjustment", "cashback", "cash back"}
	genericDisqualifiers   = []string{"transfer", "payment to"}
	nonIncomeFallbackTerms = []string{
		"transfer", "xfer", "funding", "savings", "contribution", "investment", "retirement",
	}

	contributionTerms = []string{
		"contribution", "contrib", "deposit", "transfer", "invest", "purchase", "buy", "401k", "ira", "roth",
	}
	contributionPhrases = []string{"employee contribution", "employer match", "monthly contribution"}

	internalTransferNames = []string{
		"transfer to", "transfer from", "online transfer", "internal transfer", "account transfer",
		"autopay", "auto pay", "auto-pay", "credit card payment", "card payment", "crd pmt",
		"payment thank you", "payment - thank you", "payment received", "online payment",
		"mobile payment", "epayment", "recurring transfer", "to savings", "from savings",
	}
	debtServicingNames = []string{
		"credit card", "card payment", "crd pmt", "payment thank you", "payment - thank you",
		"payment received", "loan", "mortgage",
	}
)

// Brokerage and retirement providers, matched as whole words. Short or
// common-word brands are only matched with their product suffix.
var brokeragePattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join([]string{
	`vanguard`, `fidelity`, `schwab`, `e\*?-?trade`, `robinhood`, `betterment`, `wealthfront`,
	`acorns`, `stash invest\w*`, `m1 finance`, `ameritrade`, `merrill`, `tiaa`,
	`empower retirement`, `voya financial`, `401\(?k\)?`, `roth ira`, `traditional ira`,
	`rollover ira`,
}, "|") + `)(?:\b|$|\s)`)

// Essential-looking names for transactions the provider did not categorize.
var essentialNamePattern = regexp.MustCompile(`(?i)\b(` + strings.Join([]string{
	`rent`, `mortgage`, `landlord`, `property mgmt`, `hoa`, `utilit\w*`, `electric\w*`, `power`,
	`water`, `sewer`, `trash`, `internet`, `comcast`, `xfinity`, `verizon`, `at&t`, `t-mobile`,
	`wireless`, `grocer\w*`, `supermarket`, `safeway`, `kroger`, `costco`, `aldi`, `whole foods`,
	`trader joe\w*`, `pharmacy`, `cvs`, `walgreens`, `rite aid`, `insurance`, `geico`,
	`state farm`, `progressive`, `gas station`, `shell`, `chevron`, `exxon`, `fuel`, `transit`,
	`metro`, `toll`, `parking`, `daycare`, `childcare`, `tuition`, `medical`, `doctor`,
	`hospital`, `clinic`, `dental`, `vet`,
}, "|") + `)\b`)

func labelSet(labels ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		out[l] = struct{}{}
	}
	return out
}

var labelReplacer = strings.NewReplacer(" ", "_", "-", "_", "&", "AND", "/", "_", ",", "")

func normalizeLabel(s string) string {
	return labelReplacer.Replace(strings.ToUpper(strings.TrimSpace(s)))
}

// labelsMatch reports whether any legacy label is in set.
func labelsMatch(labels []string, set map[string]struct{}) bool {
	for _, l := range labels {
		if _, ok := set[normalizeLabel(l)]; ok {
			return true
		}
	}
	return false
}

func labelsContain(labels []string, fragment string) bool {
	for _, l := range labels {
		if strings.Contains(normalizeLabel(l), fragment) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// searchText is the lower-cased name and merchant used for keyword rules.
func searchText(tx models.Transaction) string {
	text := " " + strings.ToLower(tx.Name)
	if m := tx.Merchant(); m != "" {
		text += " " + strings.ToLower(m)
	}
	return text
}

func hasLegacy(tx models.Transaction) bool {
	for _, l := range tx.Categories {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
