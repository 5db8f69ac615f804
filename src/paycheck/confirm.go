package paycheck

import (
	"time"

	"budgee-insights/src/models"
)

// Confirm accepts a proposal as-is and makes it authoritative.
func Confirm(proposal models.PaycheckSchedule, now time.Time) models.PaycheckSchedule {
	s := proposal
	s.Anchors = append([]models.Anchor(nil), proposal.Anchors...)
	s.SourceTransactionIDs = append([]string(nil), proposal.SourceTransactionIDs...)
	s.UserConfirmed = true
	s.UpdatedAt = now
	return s
}

// Edit is a user change to a schedule.
type Edit struct {
	Frequency       models.PayFrequency `json:"frequency"`
	Anchors         []models.Anchor     `json:"anchors"`
	EstimatedAmount *float64            `json:"estimated_amount,omitempty"`
}

// ApplyEdit returns a confirmed, manual copy of s with the edit applied.
func ApplyEdit(s models.PaycheckSchedule, e Edit, now time.Time) (models.PaycheckSchedule, error) {
	out := Confirm(s, now)
	out.Frequency = e.Frequency
	out.Anchors = append([]models.Anchor(nil), e.Anchors...)
	if e.EstimatedAmount != nil {
		out.EstimatedAmount = *e.EstimatedAmount
	}
	out.Confidence = models.DetectionManual
	if err := out.Validate(); err != nil {
		return models.PaycheckSchedule{}, err
	}
	return out, nil
}
