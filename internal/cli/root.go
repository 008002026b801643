// Package cli is the storefront command line: a terminal shopper over the
// same cart, session and shop API services the BFF serves.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/app"
	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/repository"
	"github.com/semanticshop/storefront/internal/service"
)

// ShopperID names the single shopper kept in the CLI store.
const ShopperID = "cli"

// Option configures the root command.
type Option func(*runtime)

// WithConfig replaces the environment configuration.
func WithConfig(cfg config.Config) Option {
	return func(rt *runtime) {
		rt.cfg = &cfg
	}
}

// WithStore keeps the cart and session in store instead of the configured
// backend. The store is not closed by the commands.
func WithStore(store repository.KVRepositoryInterface) Option {
	return func(rt *runtime) {
		rt.store = store
	}
}

// runtime is what a command works with once opened.
type runtime struct {
	cfg   *config.Config
	store repository.KVRepositoryInterface

	storage         *app.StorageComponents
	api             *client.Client
	shopper         *service.Shopper
	sessions        service.SessionService
	catalog         *service.CatalogServiceImpl
	checkout        service.CheckoutService
	orders          service.OrderService
	recommendations service.RecommendationService
}

func (rt *runtime) config() config.Config {
	if rt.cfg == nil {
		cfg := config.Load()
		rt.cfg = &cfg
	}
	return *rt.cfg
}

// open loads the shopper from the store and builds the services over a
// client that signs requests with the shopper's token.
func (rt *runtime) open(ctx context.Context) error {
	cfg := rt.config()
	app.InitializeLogger(cfg.Log)

	store := rt.store
	if store == nil {
		storage, err := app.InitializeStorage(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		rt.storage = storage
		store = storage.Store
	}

	rt.shopper = service.NewShopper(ctx, ShopperID, store, app.CartRules(cfg.Cart))

	rt.api, _ = app.NewShopAPIClient(cfg.API, client.WithTokenSource(rt.shopper))

	rt.sessions = service.NewSessionService(rt.api)
	rt.catalog = service.NewCatalogService(rt.api, cfg.Search.FilterCacheTTL)
	rt.checkout = service.NewCheckoutService(rt.api)
	rt.orders = service.NewOrderService(rt.api)
	rt.recommendations = service.NewRecommendationService(rt.api)
	return nil
}

func (rt *runtime) close(ctx context.Context) {
	if rt.catalog != nil {
		rt.catalog.Close()
	}
	if rt.storage != nil {
		_ = rt.storage.Close(ctx)
	}
}

// action opens the runtime around fn.
func (rt *runtime) action(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := rt.open(cmd.Context()); err != nil {
			return err
		}
		defer rt.close(context.Background())
		return fn(cmd, args)
	}
}

// NewRootCommand builds the storefront command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	rt := &runtime{}
	for _, opt := range opts {
		opt(rt)
	}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Semantic shop storefront: BFF server and terminal shopper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var apiURL, storeDir string
	root.PersistentFlags().StringVar(&apiURL, "api", "", "shop API base URL (overrides STOREFRONT_API_URL)")
	root.PersistentFlags().StringVar(&storeDir, "store-dir", "", "directory of the file store (overrides STORAGE_DIR)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg := rt.config()
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		if storeDir != "" {
			cfg.Storage.Dir = storeDir
		}
		rt.cfg = &cfg
	}

	root.AddCommand(
		newServeCommand(rt),
		newCartCommand(rt),
		newSearchCommand(rt),
		newSuggestCommand(rt),
		newFiltersCommand(rt),
		newLoginCommand(rt),
		newRegisterCommand(rt),
		newLogoutCommand(rt),
		newProfileCommand(rt),
		newCheckoutCommand(rt),
		newOrdersCommand(rt),
		newRecommendCommand(rt),
	)
	return root
}

// Execute runs the command line and reports the error on stderr.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", describe(err))
		return 1
	}
	return 0
}
