package memcache_fx

import (
	"go.uber.org/fx"

	"tripflow/internal/services"
	mem "tripflow/pkg/memcache"
)

var Module = fx.Provide(provideResetTokenStore, providePairCache)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func providePairCache() *mem.PairCache {
	return services.NewPairCache()
}
