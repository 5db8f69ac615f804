package classifier

import "budgee-insights/src/models"

// validationPolicy says which provider confidence tiers need a human look.
// Medium is deliberately not flagged.
var validationPolicy = map[models.ConfidenceLevel]bool{
	models.ConfidenceVeryHigh: false,
	models.ConfidenceHigh:     false,
	models.ConfidenceMedium:   false,
	models.ConfidenceLow:      true,
	models.ConfidenceUnknown:  true,
}

// NeedsValidation reports whether a category at the given tier should be
// confirmed by the user. Unrecognized tiers are treated as unknown.
func NeedsValidation(level models.ConfidenceLevel) bool {
	needs, ok := validationPolicy[level]
	if !ok {
		return true
	}
	return needs
}
