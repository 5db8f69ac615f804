package classifier

import "budgee-insights/src/models"

// alwaysEssential primaries are living costs regardless of detailed subclass.
var alwaysEssential = map[models.PrimaryCategory]bool{
	models.PrimaryRentAndUtilities:       true,
	models.PrimaryLoanPayments:           true,
	models.PrimaryBankFees:               true,
	models.PrimaryGovernmentAndNonProfit: true,
	models.PrimaryMedical:                true,
	models.PrimaryHomeImprovement:        true,
}

// alwaysDiscretionary primaries are optional spending regardless of subclass.
var alwaysDiscretionary = map[models.PrimaryCategory]bool{
	models.PrimaryTravel:        true,
	models.PrimaryEntertainment: true,
}

// IsEssentialExpense is the base outflow filter: money spent that is neither
// an investment contribution nor an internal transfer.
func IsEssentialExpense(tx models.Transaction) bool {
	return tx.Amount > 0 && !IsInvestmentContribution(tx) && !IsInternalTransfer(tx)
}

// IsEssentialSpending is the necessary-living-cost half of IsEssentialExpense.
func IsEssentialSpending(tx models.Transaction) bool {
	return IsEssentialExpense(tx) && essentialByCategory(tx)
}

// IsDiscretionarySpending is the complement of IsEssentialSpending within
// IsEssentialExpense.
func IsDiscretionarySpending(tx models.Transaction) bool {
	return IsEssentialExpense(tx) && !essentialByCategory(tx)
}

func essentialByCategory(tx models.Transaction) bool {
	s := tx.Structured
	if !s.Known() {
		return essentialByName(tx)
	}
	if alwaysEssential[s.Primary] {
		return true
	}
	if alwaysDiscretionary[s.Primary] {
		return false
	}
	if s.DetailedHas("INSURANCE") {
		return true
	}
	switch s.Primary {
	case models.PrimaryFoodAndDrink:
		return s.DetailedHas("GROCER", "SUPERMARKET", "WAREHOUSE")
	case models.PrimaryTransportation:
		return !s.DetailedHas("AIRLINE", "FLIGHT", "HOTEL", "VACATION", "CRUISE", "RESORT")
	case models.PrimaryGeneralMerchandise:
		return s.DetailedHas("PHARMAC", "HEALTH", "PET_FOOD")
	case models.PrimaryGeneralServices:
		return s.DetailedHas("CHILDCARE", "EDUCATION", "VETERINAR", "AUTOMOTIVE")
	default:
		return false
	}
}

func essentialByName(tx models.Transaction) bool {
	if essentialNamePattern.MatchString(tx.Name) || essentialNamePattern.MatchString(tx.Merchant()) {
		return true
	}
	for _, l := range tx.Categories {
		if essentialNamePattern.MatchString(l) {
			return true
		}
	}
	return false
}
