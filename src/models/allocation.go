package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationTarget is a user-facing savings or spending bucket that
// disposable income is distributed across, e.g. "Emergency Fund".
type AllocationTarget struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Name      string          `json:"name"`
	Percent   decimal.Decimal `json:"percent"`
	AccountID *string         `json:"account_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type AllocationStatus string

const (
	AllocationUpcoming     AllocationStatus = "upcoming"
	AllocationReminderSent AllocationStatus = "reminder_sent"
	AllocationCompleted    AllocationStatus = "completed"
	AllocationSkipped      AllocationStatus = "skipped"
)

func (s AllocationStatus) Terminal() bool {
	return s == AllocationCompleted || s == AllocationSkipped
}

// ScheduledAllocation is one planned transfer into a target on a paycheck date.
type ScheduledAllocation struct {
	ID             string           `json:"id"`
	ScheduleID     int64            `json:"schedule_id"`
	TargetName     string           `json:"target"`
	PaycheckDate   time.Time        `json:"paycheck_date"`
	Amount         decimal.Decimal  `json:"amount"`
	Status         AllocationStatus `json:"status"`
	ReminderSentAt *time.Time       `json:"reminder_sent_at,omitempty"`
	ExecutionID    *string          `json:"execution_id,omitempty"`
	ResolvedAt     *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}
