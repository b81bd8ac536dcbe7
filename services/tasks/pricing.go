package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"voyago/models"
)

const TypePricingRecalculate = "pricing:recalculate"

// NewPricingRecalculateTask builds the queued task that asks the worker to
// recompute a session's pricing.
func NewPricingRecalculateTask(payload models.PricingTaskPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePricingRecalculate, b), nil
}
