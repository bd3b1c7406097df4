package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"tripflow/pkg/utils"
)

const (
	TaskMatrixPrecompute = "matrix:precompute"
)

// PayloadMatrixPrecompute asks the worker to rebuild one trip's travel
// matrix so the next scheduling run reads a warm cache.
type PayloadMatrixPrecompute struct {
	TripID string `json:"trip_id"`
}

func (distributor *RedisTaskDistributor) DistributeTaskMatrixPrecompute(
	ctx context.Context,
	payload *PayloadMatrixPrecompute,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskMatrixPrecompute, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	log.Debug().
		Str("type", task.Type()).
		Str("queue", info.Queue).
		Str("trip_id", payload.TripID).
		Msg("enqueued matrix precompute task")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskMatrixPrecompute(ctx context.Context, task *asynq.Task) error {
	var payload PayloadMatrixPrecompute
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", asynq.SkipRetry)
	}

	if err := processor.matrix.RefreshTripMatrix(ctx, payload.TripID); err != nil {
		// A deleted trip is not worth retrying.
		if errors.Is(err, utils.ErrTripNotFound) {
			return fmt.Errorf("trip %s gone: %w", payload.TripID, asynq.SkipRetry)
		}
		return fmt.Errorf("refresh matrix for trip %s: %w", payload.TripID, err)
	}

	log.Info().
		Str("trip_id", payload.TripID).
		Msg("travel matrix refreshed")

	return nil
}
