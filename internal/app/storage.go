package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/repository"
)

// StorageComponents holds the key-value store behind carts and sessions.
type StorageComponents struct {
	// Store is the selected backend behind its circuit breaker.
	Store   *repository.KVRepositoryWithCircuitBreaker
	Breaker *circuitbreaker.CircuitBreaker
	Backend string
}

// Close releases the backend connection, if any.
func (s *StorageComponents) Close(ctx context.Context) error {
	if s == nil || s.Store == nil {
		return nil
	}
	return s.Store.Close(ctx)
}

// InitializeStorage opens the configured backend. Unlike the shop API,
// the store is required: a backend that cannot be reached is an error.
func InitializeStorage(ctx context.Context, cfg config.StorageConfig) (*StorageComponents, error) {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}

	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "storage-" + cfg.Backend,
		IsFailure:        repository.IsStorageFailure,
		OnStateChange:    logBreakerChange,
	})

	log.Info().Str("backend", cfg.Backend).Msg("Storage ready")

	return &StorageComponents{
		Store:   repository.NewKVRepositoryWithCircuitBreaker(backend, cb),
		Breaker: cb,
		Backend: cfg.Backend,
	}, nil
}

func openBackend(ctx context.Context, cfg config.StorageConfig) (repository.KVRepositoryInterface, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return repository.NewFileRepository(cfg.Dir)
	case config.BackendMemory:
		return repository.NewMemoryRepository(), nil
	case config.BackendRedis:
		return repository.NewRedisRepository(ctx, repository.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.TTL,
		})
	case config.BackendMongoDB:
		mongoCfg := repository.DefaultMongoConfig()
		if cfg.MongoCollection != "" {
			mongoCfg.Collection = cfg.MongoCollection
		}
		mongoCfg.TTL = cfg.TTL
		return repository.NewMongoRepository(cfg.MongoURI, cfg.MongoDatabase, mongoCfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func logBreakerChange(name string, from, to circuitbreaker.State) {
	event := log.Info()
	if to == circuitbreaker.StateOpen {
		event = log.Warn()
	}
	event.Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
}
