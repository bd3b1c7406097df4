package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

// TaskDistributor enqueues background tasks. Services hold this interface,
// never the asynq client itself.
type TaskDistributor interface {
	DistributeTaskMatrixPrecompute(
		ctx context.Context,
		payload *PayloadMatrixPrecompute,
		opts ...asynq.Option,
	) error

	Close() error
}

type RedisTaskDistributor struct {
	client *asynq.Client
}

func NewRedisTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)
	return &RedisTaskDistributor{
		client: client,
	}
}

func (distributor *RedisTaskDistributor) Close() error {
	return distributor.client.Close()
}
