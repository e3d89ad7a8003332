package service

import "github.com/pancakehouse/backend/internal/models"

// statusTransitions is the full order lifecycle: forward through
// pending -> confirmed -> preparing -> ready -> completed, with a one-way
// cancel from every non-terminal state. Terminal states have no exits.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

func ValidStatus(s models.OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
