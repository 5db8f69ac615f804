package analysis

import (
	"strings"

	"budgee-insights/src/models"
)

// ExpenseCategory is one of the eight expense sub-buckets.
type ExpenseCategory string

const (
	ExpenseHousing        ExpenseCategory = "housing"
	ExpenseFood           ExpenseCategory = "food"
	ExpenseTransportation ExpenseCategory = "transportation"
	ExpenseUtilities      ExpenseCategory = "utilities"
	ExpenseInsurance      ExpenseCategory = "insurance"
	ExpenseSubscriptions  ExpenseCategory = "subscriptions"
	ExpenseHealthcare     ExpenseCategory = "healthcare"
	ExpenseOther          ExpenseCategory = "other"
)

// unknownConfidence is reported when nothing contributed to the breakdown.
const unknownConfidence = 0.5

var subscriptionFragments = []string{"SUBSCRIPTION", "STREAMING", "MEMBERSHIP", "GYM", "TV_AND_MOVIES", "MUSIC_AND_AUDIO"}

// keywordCategories is the fallback used when no structured category is
// present, checked in order against legacy labels and the transaction name.
var keywordCategories = []struct {
	terms    []string
	category ExpenseCategory
}{
	{[]string{"insurance", "geico", "state farm", "allstate", "progressive"}, ExpenseInsurance},
	{[]string{" rent", "mortgage", "hoa", "landlord", "property"}, ExpenseHousing},
	{[]string{"utilit", "electric", "water", "sewer", "internet", "comcast", "xfinity", "phone", "wireless", "verizon", "at&t"}, ExpenseUtilities},
	{[]string{"netflix", "spotify", "hulu", "disney+", "subscription", "membership", "gym", "streaming", "patreon"}, ExpenseSubscriptions},
	{[]string{"pharmacy", "medical", "doctor", "dental", "hospital", "clinic", "health", "cvs", "walgreens"}, ExpenseHealthcare},
	{[]string{"grocer", "supermarket", "restaurant", "food", "coffee", "dining", "safeway", "kroger", "whole foods"}, ExpenseFood},
	{[]string{"gas station", "fuel", "shell", "chevron", "exxon", "uber", "lyft", "transit", "parking", "toll", "auto"}, ExpenseTransportation},
}

// CategorizeExpense maps one expense transaction to its sub-bucket.
func CategorizeExpense(tx models.Transaction) ExpenseCategory {
	if s := tx.Structured; s.Known() {
		return structuredExpenseCategory(s)
	}
	text := " " + strings.ToLower(tx.Name+" "+tx.Merchant()+" "+strings.Join(tx.Categories, " "))
	for _, kc := range keywordCategories {
		for _, term := range kc.terms {
			if strings.Contains(text, term) {
				return kc.category
			}
		}
	}
	return ExpenseOther
}

func structuredExpenseCategory(s *models.StructuredCategory) ExpenseCategory {
	if s.DetailedHas("INSURANCE") {
		return ExpenseInsurance
	}
	switch s.Primary {
	case models.PrimaryRentAndUtilities:
		if s.DetailedHas("RENT", "MORTGAGE") {
			return ExpenseHousing
		}
		return ExpenseUtilities
	case models.PrimaryHomeImprovement:
		return ExpenseHousing
	case models.PrimaryLoanPayments:
		switch {
		case s.DetailedHas("MORTGAGE"):
			return ExpenseHousing
		case s.DetailedHas("CAR_PAYMENT", "AUTO"):
			return ExpenseTransportation
		default:
			return ExpenseOther
		}
	case models.PrimaryFoodAndDrink:
		return ExpenseFood
	case models.PrimaryTransportation:
		return ExpenseTransportation
	case models.PrimaryMedical:
		return ExpenseHealthcare
	case models.PrimaryGeneralMerchandise:
		if s.DetailedHas("PHARMAC") {
			return ExpenseHealthcare
		}
		return ExpenseOther
	case models.PrimaryEntertainment, models.PrimaryGeneralServices, models.PrimaryPersonalCare:
		if s.DetailedHas(subscriptionFragments...) {
			return ExpenseSubscriptions
		}
		return ExpenseOther
	default:
		return ExpenseOther
	}
}

// CategorizeEssentialExpenses buckets expense transactions into monthly
// averages per sub-category over a window of the given number of months.
func CategorizeEssentialExpenses(txs []models.Transaction, months int) models.ExpenseBreakdown {
	var b models.ExpenseBreakdown
	if months <= 0 {
		return b
	}

	totals := make(map[ExpenseCategory]float64, 8)
	highConfidence := 0
	for _, tx := range txs {
		totals[CategorizeExpense(tx)] += tx.Amount
		if tx.Structured.IsHighConfidence() {
			highConfidence++
		}
	}

	m := float64(months)
	b.Housing = totals[ExpenseHousing] / m
	b.Food = totals[ExpenseFood] / m
	b.Transportation = totals[ExpenseTransportation] / m
	b.Utilities = totals[ExpenseUtilities] / m
	b.Insurance = totals[ExpenseInsurance] / m
	b.Subscriptions = totals[ExpenseSubscriptions] / m
	b.Healthcare = totals[ExpenseHealthcare] / m
	b.Other = totals[ExpenseOther] / m
	b.TransactionCount = len(txs)
	b.Confidence = unknownConfidence
	if len(txs) > 0 {
		b.Confidence = float64(highConfidence) / float64(len(txs))
	}
	return b
}
