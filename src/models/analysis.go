package models

import "time"

// MonthlyFlow holds averaged monthly figures over the analysis window.
type MonthlyFlow struct {
	Income            float64 `json:"income"`
	EssentialExpenses float64 `json:"essential_expenses"`
	DebtMinimums      float64 `json:"debt_minimums"`
}

// DiscretionaryIncome is what remains after essentials and debt minimums.
// Negative values signal a monthly deficit.
func (f MonthlyFlow) DiscretionaryIncome() float64 {
	return f.Income - f.EssentialExpenses - f.DebtMinimums
}

type DebtRecord struct {
	AccountID      string      `json:"account_id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	Subtype        string      `json:"subtype"`
	Balance        float64     `json:"balance"`
	APR            float64     `json:"apr"`
	MinimumPayment float64     `json:"minimum_payment"`
	// Estimated is set when APR or minimum payment were not supplied by the provider.
	Estimated bool `json:"estimated"`
}

type FinancialPosition struct {
	Cash                  float64      `json:"cash"`
	EmergencyFund         float64      `json:"emergency_fund"`
	Debts                 []DebtRecord `json:"debts"`
	Investments           float64      `json:"investments"`
	MonthlyInvestmentRate float64      `json:"monthly_investment_contribution"`
}

func (p FinancialPosition) TotalDebt() float64 {
	total := 0.0
	for _, d := range p.Debts {
		total += d.Balance
	}
	return total
}

func (p FinancialPosition) NetWorth() float64 {
	return p.Cash + p.Investments - p.TotalDebt()
}

// ExpenseBreakdown holds monthly averages per expense sub-category.
type ExpenseBreakdown struct {
	Housing        float64 `json:"housing"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Utilities      float64 `json:"utilities"`
	Insurance      float64 `json:"insurance"`
	Subscriptions  float64 `json:"subscriptions"`
	Healthcare     float64 `json:"healthcare"`
	Other          float64 `json:"other"`
	// Confidence is the share of contributing transactions categorized with
	// high or very-high provider confidence.
	Confidence       float64 `json:"confidence"`
	TransactionCount int     `json:"transaction_count"`
}

func (b ExpenseBreakdown) Total() float64 {
	return b.Housing + b.Food + b.Transportation + b.Utilities + b.Insurance + b.Subscriptions + b.Healthcare + b.Other
}

type AnalysisMetadata struct {
	ItemCount            int       `json:"item_count"`
	TransactionsAnalyzed int       `json:"transactions_analyzed"`
	NeedsValidation      int       `json:"needs_validation"`
	MonthsAnalyzed       int       `json:"months_analyzed"`
	Start                time.Time `json:"start"`
	End                  time.Time `json:"end"`
	OverallConfidence    float64   `json:"overall_confidence"`
}

// Analysis is an immutable snapshot of the derived financial picture.
type Analysis struct {
	Flow      MonthlyFlow       `json:"flow"`
	Position  FinancialPosition `json:"position"`
	Breakdown ExpenseBreakdown  `json:"breakdown"`
	// Buckets totals absolute amounts per classification bucket.
	Buckets  map[Bucket]float64 `json:"buckets"`
	Metadata AnalysisMetadata   `json:"metadata"`
}
