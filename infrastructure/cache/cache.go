// Package cache guarda respostas geradas (LLM ou heurística) indexadas pelo hash do conteúdo que as originou
package cache

import (
	"context"
	"time"

	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache.go -package=mocks

// Cache é a capacidade mínima usada pelos serviços: ok=false significa ausência
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New escolhe o backend pela configuração. Backend desconhecido cai para memória.
func New(cfg *config.Config) Cache {
	switch cfg.Cache.Backend {
	case BackendRedis:
		log.L.WithField("addr", cfg.Cache.Redis.Addr).Info("cache: usando Redis")
		return NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, cfg.Cache.TTL)
	case BackendMemory, "":
		return NewMemoryCache(cfg.Cache.TTL, time.Now)
	default:
		log.L.Warnf("cache: backend %q desconhecido, usando memória", cfg.Cache.Backend)
		return NewMemoryCache(cfg.Cache.TTL, time.Now)
	}
}
