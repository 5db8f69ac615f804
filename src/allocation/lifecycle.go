package allocation

import (
	"errors"
	"fmt"
	"time"

	"budgee-insights/src/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid allocation transition")
	ErrTerminalState     = errors.New("allocation already resolved")
)

type Action string

const (
	ActionRemind   Action = "remind"
	ActionComplete Action = "complete"
	ActionSkip     Action = "skip"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionRemind, ActionComplete, ActionSkip:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, s)
	}
}

// MarkReminderSent moves an upcoming allocation to reminder_sent.
func MarkReminderSent(a models.ScheduledAllocation, now time.Time) (models.ScheduledAllocation, error) {
	if err := checkTransition(a, models.AllocationReminderSent); err != nil {
		return a, err
	}
	a.Status = models.AllocationReminderSent
	a.ReminderSentAt = &now
	return a, nil
}

// Complete resolves an allocation and links it to an execution record. An
// empty executionID gets a new one.
func Complete(a models.ScheduledAllocation, executionID string, now time.Time) (models.ScheduledAllocation, error) {
	if err := checkTransition(a, models.AllocationCompleted); err != nil {
		return a, err
	}
	if executionID == "" {
		executionID = uuid.NewString()
	}
	a.Status = models.AllocationCompleted
	a.ExecutionID = &executionID
	a.ResolvedAt = &now
	return a, nil
}

func Skip(a models.ScheduledAllocation, now time.Time) (models.ScheduledAllocation, error) {
	if err := checkTransition(a, models.AllocationSkipped); err != nil {
		return a, err
	}
	a.Status = models.AllocationSkipped
	a.ResolvedAt = &now
	return a, nil
}

// Apply dispatches an action to the matching transition.
func Apply(a models.ScheduledAllocation, action Action, executionID string, now time.Time) (models.ScheduledAllocation, error) {
	switch action {
	case ActionRemind:
		return MarkReminderSent(a, now)
	case ActionComplete:
		return Complete(a, executionID, now)
	case ActionSkip:
		return Skip(a, now)
	default:
		return a, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
}

func checkTransition(a models.ScheduledAllocation, to models.AllocationStatus) error {
	if a.Status.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrTerminalState, a.ID, a.Status)
	}
	switch a.Status {
	case models.AllocationUpcoming:
		return nil
	case models.AllocationReminderSent:
		if to == models.AllocationCompleted || to == models.AllocationSkipped {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
}
