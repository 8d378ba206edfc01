package services

import (
	"fmt"

	"github.com/example/printly/internal/models"
)

// validTransitions lists the allowed next statuses for each order status.
// The lifecycle is one-directional: pending → paid → processing →
// completed, with cancellation reachable from pending or paid and a
// refund reachable from paid states onward.
var validTransitions = map[string][]string{
	models.StatusPending:    {models.StatusPaid, models.StatusCancelled},
	models.StatusPaid:       {models.StatusProcessing, models.StatusCancelled, models.StatusRefunded},
	models.StatusProcessing: {models.StatusCompleted, models.StatusRefunded},
	models.StatusCompleted:  {models.StatusRefunded},
	models.StatusCancelled:  {},
	models.StatusRefunded:   {},
}

// IsValidStatus reports whether the value is a known order status.
func IsValidStatus(status string) bool {
	_, ok := validTransitions[status]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether an order in the given status may be
// cancelled. Returns a descriptive error otherwise.
func CanCancel(status string) error {
	if status == models.StatusPending || status == models.StatusPaid {
		return nil
	}
	return fmt.Errorf("cannot cancel order with status %s", status)
}
