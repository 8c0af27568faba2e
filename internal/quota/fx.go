package quota

import (
	"github.com/kvoice/kvoice/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("quota.gate",
	fx.Provide(provideStore),
	fx.Provide(provideGate),
)

func provideStore(cfg config.Config) CounterStore {
	if cfg.RedisAddr == "" {
		return NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return NewRedisStore(client)
}

func provideGate(store CounterStore, cfg config.Config, log *zap.Logger) *Gate {
	return NewGate(store, cfg.GuestInvoiceLimit, log)
}
