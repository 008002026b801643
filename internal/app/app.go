package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/http"
)

// App is the wired storefront BFF.
type App struct {
	Engine   *gin.Engine
	Storage  *StorageComponents
	Services *ServiceComponents
	Router   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storage, err := InitializeStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	services, err := InitializeServices(cfg, storage.Store)
	if err != nil {
		_ = storage.Close(ctx)
		return nil, err
	}

	router := InitializeRouter(services, storage, cfg)

	log.Info().
		Str("api", services.API.BaseURL()).
		Str("storage", storage.Backend).
		Msg("Storefront initialised")

	return &App{
		Engine:   http.NewRouter(router.Handler, router.HealthHandler, router.Config),
		Storage:  storage,
		Services: services,
		Router:   router,
	}, nil
}

// Close stops background work and releases the store.
func (a *App) Close(ctx context.Context) error {
	a.Router.Stop()
	a.Services.Close()
	return a.Storage.Close(ctx)
}
