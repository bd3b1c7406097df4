package redis_fx

import (
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"tripflow/internal/infra"
)

var Module = fx.Provide(
	provideRedisClient, provideTaskRedisOpt)

func provideRedisClient() *redis.Client {
	return infra.InitRedis()
}

func provideTaskRedisOpt() asynq.RedisClientOpt {
	return infra.RedisTaskOpt()
}
