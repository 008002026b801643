package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/service"
)

func newSearchCommand(rt *runtime) *cobra.Command {
	var (
		params     model.SearchParams
		minPrice   string
		maxPrice   string
		disponible bool
	)

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the catalog",
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			params.Q = strings.Join(args, " ")
			var err error
			if params.PrecioMin, err = parsePrice("min", minPrice); err != nil {
				return err
			}
			if params.PrecioMax, err = parsePrice("max", maxPrice); err != nil {
				return err
			}
			if cmd.Flags().Changed("disponible") {
				params.Disponible = &disponible
			}
			// Pages are one-based on the command line.
			if params.Pagina > 0 {
				params.Pagina--
			}

			page, err := rt.catalog.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printProducts(out, page.Productos); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, "\n"+pageLine(page.Paginacion))
			return err
		}),
	}

	f := cmd.Flags()
	f.StringVar(&params.Categoria, "categoria", "", "category filter")
	f.StringVar(&params.Marca, "marca", "", "brand filter")
	f.StringVar(&minPrice, "min", "", "minimum price")
	f.StringVar(&maxPrice, "max", "", "maximum price")
	f.BoolVar(&disponible, "disponible", false, "only products in stock (or out of stock with =false)")
	f.StringVar(&params.OrdenarPor, "sort", model.DefaultSortField, "sort field")
	f.StringVar(&params.Direccion, "dir", model.DefaultSortDir, "sort direction: asc or desc")
	f.IntVar(&params.Pagina, "page", 1, "page number, starting at 1")
	f.IntVar(&params.Tamanio, "size", model.DefaultPageSize, "page size")
	return cmd
}

func parsePrice(flag, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("invalid --%s price %q", flag, raw)
	}
	return &d, nil
}

func newSuggestCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <partial...>",
		Short: "Type each argument into the search box and print the suggestions",
		Long: "Each argument is typed as the next state of the search box, so\n" +
			"`suggest l la lap` mimics typing \"lap\". Only the result for the\n" +
			"last argument is printed.",
		Args: cobra.MinimumNArgs(1),
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			search := rt.config().Search
			suggester := service.NewSuggester(rt.api, service.SuggesterConfig{
				Debounce:  search.SuggestDebounce,
				MinLength: search.SuggestMinLength,
				Limit:     search.SuggestLimit,
			})
			defer suggester.Close()

			for _, partial := range args {
				suggester.Type(cmd.Context(), partial)
			}

			wait := suggester.Config().Debounce + rt.config().API.Timeout + time.Second
			res, err := awaitSuggestion(cmd.Context(), suggester, strings.TrimSpace(args[len(args)-1]), wait)
			if err != nil {
				return err
			}
			if res.Err != nil {
				return res.Err
			}

			out := cmd.OutOrStdout()
			if len(res.Suggestions) == 0 {
				_, err = fmt.Fprintln(out, "No suggestions.")
				return err
			}
			for _, s := range res.Suggestions {
				fmt.Fprintln(out, s)
			}
			return nil
		}),
	}
}

// awaitSuggestion waits for the result of query, skipping results for the
// earlier keystrokes.
func awaitSuggestion(ctx context.Context, s *service.Suggester, query string, wait time.Duration) (service.SuggestionResult, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case res, ok := <-s.Results():
			if !ok {
				return service.SuggestionResult{}, context.Canceled
			}
			if res.Query == query {
				return res, nil
			}
		case <-timer.C:
			return service.SuggestionResult{}, fmt.Errorf("no suggestions for %q after %s", query, wait)
		case <-ctx.Done():
			return service.SuggestionResult{}, ctx.Err()
		}
	}
}

func newFiltersCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the categories, brands and price range offered by search",
		Args:  cobra.NoArgs,
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			opts, err := rt.catalog.FilterOptions(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Categorías\t%s\n", strings.Join(opts.Categorias, ", "))
			fmt.Fprintf(tw, "Marcas\t%s\n", strings.Join(opts.Marcas, ", "))
			fmt.Fprintf(tw, "Precios\t%s - %s\n", money(opts.Precios.PrecioMin), money(opts.Precios.PrecioMax))
			return tw.Flush()
		}),
	}
}
