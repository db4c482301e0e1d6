package ordering

import (
	"fmt"

	"github.com/cosechaencope/backend/internal/domain/shared"
)

// Status is the lifecycle state shared by orders and fulfillment orders
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusFulfilled  Status = "FULFILLED"
	StatusCancelled  Status = "CANCELLED"
)

// statusTransitions defines the allowed state machine.
// FULFILLED and CANCELLED are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusFulfilled, StatusCancelled},
	StatusFulfilled:  {},
	StatusCancelled:  {},
}

// ParseStatus validates a raw status string
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statusTransitions[s]; !ok {
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown status %q", raw))
	}
	return s, nil
}

// CanTransitionTo returns true if the transition is allowed
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states that accept no further transitions
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// String returns the status as a string
func (s Status) String() string {
	return string(s)
}
