package classifier

import (
	"testing"

	"budgee-insights/src/models"

	"github.com/stretchr/testify/assert"
)

func TestIncomeRulesIndependently(t *testing.T) {
	refund := models.Transaction{Amount: -60, Name: "Target return"}
	assert.Equal(t, abstain, structuredIncome(refund))
	assert.Equal(t, abstain, legacyIncome(refund))
	assert.Equal(t, reject, nameIncome(refund))
	assert.Equal(t, abstain, interestIncome(refund))
	assert.Equal(t, reject, amountFallbackIncome(refund))

	_, by := incomeVerdict(refund)
	assert.Equal(t, RuleNameIncome, by)
}

func TestIncomeRuleOrder(t *testing.T) {
	names := make([]string, len(incomeRules))
	for i, r := range incomeRules {
		names[i] = r.Name
	}
	assert.Equal(t, []string{
		RuleStructuredIncome, RuleLegacyIncome, RuleNameIncome, RuleInterestIncome, RuleAmountFallback,
	}, names)
}

func TestBucketRuleOrder(t *testing.T) {
	var names []string
	for _, r := range Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		RuleUserOverride, RuleInvestment, RuleIncome, RuleInternalTransfer,
		RuleStructuredTable, RuleLegacyKeywords, RuleAmountSign,
	}, names)
}

func TestStructuredBucketTransfers(t *testing.T) {
	out := func(detailed string) models.Transaction {
		return models.Transaction{Amount: 100, Structured: &models.StructuredCategory{
			Primary: models.PrimaryTransferOut, Detailed: detailed, Confidence: models.ConfidenceHigh,
		}}
	}
	b, ok := structuredBucket(out("TRANSFER_OUT_INVESTMENT_AND_RETIREMENT_FUNDS"))
	assert.True(t, ok)
	assert.Equal(t, models.BucketInvested, b)

	b, _ = structuredBucket(out("TRANSFER_OUT_DEBT_PAYMENT"))
	assert.Equal(t, models.BucketDebt, b)

	b, _ = structuredBucket(out("TRANSFER_OUT_WITHDRAWAL"))
	assert.Equal(t, models.BucketExpenses, b)

	_, ok = structuredBucket(models.Transaction{Amount: 5, Structured: &models.StructuredCategory{Primary: models.PrimaryOther}})
	assert.False(t, ok)
}

func TestLegacyBucketNeedsLabels(t *testing.T) {
	_, ok := legacyBucket(models.Transaction{Amount: 10, Categories: []string{"  "}})
	assert.False(t, ok)

	b, ok := legacyBucket(models.Transaction{Amount: 10, Categories: []string{"Transfer", "Withdrawal", "ATM"}})
	assert.True(t, ok)
	assert.Equal(t, models.BucketCash, b)
}

func TestUserRulesSitBelowOverride(t *testing.T) {
	rules := CompileBucketRules([]models.BucketRule{
		{Name: "coffee is fun money", Conditions: []byte(`{"field":"name","op":"contains","value":"coffee"}`), Bucket: models.BucketDisposable},
		{Name: "broken", Conditions: []byte(`{not json`), Bucket: models.BucketCash},
		{Name: "bad bucket", Conditions: []byte(`{"field":"name","op":"contains","value":"x"}`), Bucket: "nope"},
	})
	assert.Len(t, rules, 1)

	tx := models.Transaction{Amount: 4.5, Name: "Blue Bottle Coffee"}
	c := Classify(tx, rules...)
	assert.Equal(t, models.BucketDisposable, c.Bucket)
	assert.Equal(t, RuleUserRule, c.Rule)
	assert.False(t, c.NeedsValidation)

	override := models.BucketExpenses
	tx.OverrideBucket = &override
	assert.Equal(t, models.BucketExpenses, Classify(tx, rules...).Bucket)
}

func TestCompileBucketRuleErrors(t *testing.T) {
	_, err := CompileBucketRule(models.BucketRule{Name: "empty", Conditions: []byte(`{}`), Bucket: models.BucketCash})
	assert.ErrorContains(t, err, "no conditions")

	_, err = CompileBucketRule(models.BucketRule{Name: "broken", Conditions: []byte(`[`), Bucket: models.BucketCash})
	assert.Error(t, err)

	rule, err := CompileBucketRule(models.BucketRule{Name: "rent", Conditions: []byte(`{"field":"name","op":"contains","value":"rent"}`), Bucket: models.BucketExpenses})
	assert.NoError(t, err)
	assert.True(t, rule.Matches(models.Transaction{Name: "June Rent"}))
}

func TestEvaluateCondition(t *testing.T) {
	tx := models.Transaction{Amount: 120, Name: "Whole Foods", AccountID: "acc-1", Categories: []string{"Food and Drink", "Groceries"}}
	cond := models.Condition{And: []models.Condition{
		{Field: "amount", Op: "gte", Value: 100.0},
		{Or: []models.Condition{
			{Field: "name", Op: "equals", Value: "whole foods"},
			{Field: "account", Op: "in", Value: []interface{}{"acc-9"}},
		}},
		{Field: "category", Op: "contains", Value: "groceries"},
	}}
	assert.True(t, evaluateCondition(cond, tx))
	assert.False(t, evaluateCondition(models.Condition{Field: "amount", Op: "lt", Value: 100.0}, tx))
	assert.False(t, evaluateCondition(models.Condition{Field: "unknown", Op: "equals", Value: "x"}, tx))
	assert.False(t, evaluateCondition(models.Condition{Field: "primary_category", Op: "equals", Value: "FOOD_AND_DRINK"}, tx))
}
