package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/logger"
)

const filterOptionsKey = "filters"

// CatalogService browses and searches the product catalog.
type CatalogService interface {
	Search(ctx context.Context, params model.SearchParams) (model.SearchPage, error)
	Product(ctx context.Context, id string) (model.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	FilterOptions(ctx context.Context) (model.FilterOptions, error)
	InvalidateFilters()
	Close()
}

// CatalogServiceImpl implements CatalogService. Filter options change
// rarely, so they are cached and loaded once per expiry however many
// callers ask at the same time.
type CatalogServiceImpl struct {
	api     CatalogAPI
	filters *TTLCache[string, model.FilterOptions]
	group   singleflight.Group
	log     zerolog.Logger
}

// NewCatalogService creates a catalog service. Filter options are kept for
// filterTTL.
func NewCatalogService(api CatalogAPI, filterTTL time.Duration) *CatalogServiceImpl {
	if filterTTL <= 0 {
		filterTTL = 5 * time.Minute
	}
	return &CatalogServiceImpl{
		api:     api,
		filters: NewTTLCache[string, model.FilterOptions]("filter_options", 1, filterTTL),
		log:     logger.Component("catalog"),
	}
}

// Search runs a paginated search with normalised parameters.
func (s *CatalogServiceImpl) Search(ctx context.Context, params model.SearchParams) (model.SearchPage, error) {
	page, err := s.api.Search(ctx, params.Normalize())
	if err != nil {
		return model.SearchPage{}, fmt.Errorf("search products: %w", err)
	}
	return page, nil
}

// Product returns a single product.
func (s *CatalogServiceImpl) Product(ctx context.Context, id string) (model.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// ProductsByCategory lists one category.
func (s *CatalogServiceImpl) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.api.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", category, err)
	}
	return products, nil
}

// ListProducts lists the whole catalog.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// FilterOptions returns the categories, brands and price range offered as
// search filters. Nothing is cached unless all three load.
func (s *CatalogServiceImpl) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	if opts, ok := s.filters.Get(filterOptionsKey); ok {
		return opts, nil
	}

	v, err, shared := s.group.Do(filterOptionsKey, func() (any, error) {
		opts, err := s.loadFilterOptions(ctx)
		if err != nil {
			return model.FilterOptions{}, err
		}
		s.filters.Set(filterOptionsKey, opts)
		return opts, nil
	})
	if err != nil {
		return model.FilterOptions{}, err
	}
	if shared {
		s.log.Debug().Msg("Filter options load shared between callers")
	}
	return v.(model.FilterOptions), nil
}

func (s *CatalogServiceImpl) loadFilterOptions(ctx context.Context) (model.FilterOptions, error) {
	var opts model.FilterOptions
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := s.api.Categories(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		opts.Categorias = categories
		return nil
	})
	g.Go(func() error {
		brands, err := s.api.Brands(gctx)
		if err != nil {
			return fmt.Errorf("load brands: %w", err)
		}
		opts.Marcas = brands
		return nil
	})
	g.Go(func() error {
		prices, err := s.api.PriceRange(gctx)
		if err != nil {
			return fmt.Errorf("load price range: %w", err)
		}
		opts.Precios = prices
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("Filter options unavailable")
		return model.FilterOptions{}, err
	}
	return opts, nil
}

// InvalidateFilters drops the cached filter options.
func (s *CatalogServiceImpl) InvalidateFilters() {
	s.filters.Invalidate(filterOptionsKey)
}

// Close stops the filter cache.
func (s *CatalogServiceImpl) Close() {
	s.filters.Stop()
}

var _ CatalogService = (*CatalogServiceImpl)(nil)
