package models

import "strings"

// PrimaryCategory is the closed set of provider primary categories the
// classifier knows about. Anything else parses to PrimaryUnknown and is
// classified by the fallback rules.
type PrimaryCategory string

const (
	PrimaryIncome                 PrimaryCategory = "INCOME"
	PrimaryTransferIn             PrimaryCategory = "TRANSFER_IN"
	PrimaryTransferOut            PrimaryCategory = "TRANSFER_OUT"
	PrimaryLoanPayments           PrimaryCategory = "LOAN_PAYMENTS"
	PrimaryLoanDisbursements      PrimaryCategory = "LOAN_DISBURSEMENTS"
	PrimaryBankFees               PrimaryCategory = "BANK_FEES"
	PrimaryEntertainment          PrimaryCategory = "ENTERTAINMENT"
	PrimaryFoodAndDrink           PrimaryCategory = "FOOD_AND_DRINK"
	PrimaryGeneralMerchandise     PrimaryCategory = "GENERAL_MERCHANDISE"
	PrimaryHomeImprovement        PrimaryCategory = "HOME_IMPROVEMENT"
	PrimaryMedical                PrimaryCategory = "MEDICAL"
	PrimaryPersonalCare           PrimaryCategory = "PERSONAL_CARE"
	PrimaryGeneralServices        PrimaryCategory = "GENERAL_SERVICES"
	PrimaryGovernmentAndNonProfit PrimaryCategory = "GOVERNMENT_AND_NON_PROFIT"
	PrimaryTransportation         PrimaryCategory = "TRANSPORTATION"
	PrimaryTravel                 PrimaryCategory = "TRAVEL"
	PrimaryRentAndUtilities       PrimaryCategory = "RENT_AND_UTILITIES"
	PrimaryOther                  PrimaryCategory = "OTHER"
	PrimaryUnknown                PrimaryCategory = ""
)

var knownPrimaries = map[PrimaryCategory]struct{}{
	PrimaryIncome: {}, PrimaryTransferIn: {}, PrimaryTransferOut: {}, PrimaryLoanPayments: {},
	PrimaryLoanDisbursements: {}, PrimaryBankFees: {}, PrimaryEntertainment: {}, PrimaryFoodAndDrink: {},
	PrimaryGeneralMerchandise: {}, PrimaryHomeImprovement: {}, PrimaryMedical: {}, PrimaryPersonalCare: {},
	PrimaryGeneralServices: {}, PrimaryGovernmentAndNonProfit: {}, PrimaryTransportation: {},
	PrimaryTravel: {}, PrimaryRentAndUtilities: {}, PrimaryOther: {},
}

func ParsePrimaryCategory(s string) PrimaryCategory {
	p := PrimaryCategory(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownPrimaries[p]; ok {
		return p
	}
	return PrimaryUnknown
}

// ConfidenceLevel is the provider's confidence tier for a structured category.
type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "VERY_HIGH"
	ConfidenceHigh     ConfidenceLevel = "HIGH"
	ConfidenceMedium   ConfidenceLevel = "MEDIUM"
	ConfidenceLow      ConfidenceLevel = "LOW"
	ConfidenceUnknown  ConfidenceLevel = "UNKNOWN"
)

// AllConfidenceLevels lists every tier, strongest first.
var AllConfidenceLevels = []ConfidenceLevel{
	ConfidenceVeryHigh, ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceUnknown,
}

func ParseConfidenceLevel(s string) ConfidenceLevel {
	switch c := ConfidenceLevel(strings.ToUpper(strings.TrimSpace(s))); c {
	case ConfidenceVeryHigh, ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return c
	default:
		return ConfidenceUnknown
	}
}

// StructuredCategory is the provider's (primary, detailed, confidence) triple.
type StructuredCategory struct {
	Primary    PrimaryCategory `json:"primary"`
	Detailed   string          `json:"detailed"`
	Confidence ConfidenceLevel `json:"confidence_level"`
}

// Known reports whether the primary class is one the classifier can map.
func (s *StructuredCategory) Known() bool {
	return s != nil && s.Primary != PrimaryUnknown
}

// Subclass is the detailed category with the primary prefix removed, so
// RENT_AND_UTILITIES_INTERNET_AND_CABLE becomes INTERNET_AND_CABLE.
func (s *StructuredCategory) Subclass() string {
	if s == nil {
		return ""
	}
	d := strings.ToUpper(strings.TrimSpace(s.Detailed))
	if s.Primary != PrimaryUnknown {
		d = strings.TrimPrefix(d, string(s.Primary)+"_")
	}
	return d
}

// DetailedHas reports whether the subclass contains any of the given
// upper-case fragments.
func (s *StructuredCategory) DetailedHas(fragments ...string) bool {
	d := s.Subclass()
	if d == "" {
		return false
	}
	for _, f := range fragments {
		if strings.Contains(d, f) {
			return true
		}
	}
	return false
}

// IsHighConfidence is true for HIGH and VERY_HIGH tiers.
func (s *StructuredCategory) IsHighConfidence() bool {
	return s != nil && (s.Confidence == ConfidenceHigh || s.Confidence == ConfidenceVeryHigh)
}
