package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// MatrixRefresher is the slice of the matrix service the worker needs.
// Declared here so the services package can depend on the distributor
// without the worker depending back on services.
type MatrixRefresher interface {
	RefreshTripMatrix(ctx context.Context, tripID string) error
}

type TaskProcessor interface {
	Start() error
	Shutdown()
	ProcessTaskMatrixPrecompute(ctx context.Context, task *asynq.Task) error
}

type RedisTaskProcessor struct {
	server *asynq.Server
	matrix MatrixRefresher
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, matrix MatrixRefresher) TaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			ShutdownTimeout: 10 * time.Second,
		},
	)

	return &RedisTaskProcessor{
		server: server,
		matrix: matrix,
	}
}

// NewTestTaskProcessor builds a processor without an asynq server, for
// driving Process* handlers directly in tests.
func NewTestTaskProcessor(matrix MatrixRefresher) *RedisTaskProcessor {
	return &RedisTaskProcessor{
		matrix: matrix,
	}
}

func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskMatrixPrecompute, processor.ProcessTaskMatrixPrecompute)

	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
