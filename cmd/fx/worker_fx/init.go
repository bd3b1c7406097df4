package worker_fx

import (
	"github.com/hibiken/asynq"
	"go.uber.org/fx"

	"tripflow/internal/services"
	"tripflow/internal/worker"
)

var Module = fx.Provide(
	provideTaskDistributor, provideMatrixRefresher, provideTaskProcessor)

func provideTaskDistributor(redisOpt asynq.RedisClientOpt) worker.TaskDistributor {
	return worker.NewRedisTaskDistributor(redisOpt)
}

func provideMatrixRefresher(matrix services.MatrixServiceInterface) worker.MatrixRefresher {
	return matrix
}

func provideTaskProcessor(redisOpt asynq.RedisClientOpt, matrix worker.MatrixRefresher) worker.TaskProcessor {
	return worker.NewRedisTaskProcessor(redisOpt, matrix)
}
