package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/semanticshop/storefront/internal/cart"
)

func newCartCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the local cart",
		Args:  cobra.NoArgs,
		RunE:  rt.action(rt.showCart),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart with its totals",
			Args:  cobra.NoArgs,
			RunE:  rt.action(rt.showCart),
		},
		&cobra.Command{
			Use:   "add <product-id> [qty]",
			Short: "Add a product, fetching its current details",
			Args:  cobra.RangeArgs(1, 2),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				qty := 1
				if len(args) == 2 {
					n, err := parseQuantity(args[1])
					if err != nil {
						return err
					}
					qty = n
				}
				product, err := rt.catalog.Product(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return rt.reportCart(cmd, rt.shopper.Cart.AddItem(cmd.Context(), product, qty))
			}),
		},
		&cobra.Command{
			Use:   "set <product-id> <qty>",
			Short: "Set the quantity of a product; 0 removes it",
			Args:  cobra.ExactArgs(2),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid quantity %q", args[1])
				}
				return rt.reportCart(cmd, rt.shopper.Cart.SetQuantity(cmd.Context(), args[0], qty))
			}),
		},
		&cobra.Command{
			Use:   "inc <product-id>",
			Short: "Add one unit of a product in the cart",
			Args:  cobra.ExactArgs(1),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				return rt.reportCart(cmd, rt.shopper.Cart.IncrementQuantity(cmd.Context(), args[0]))
			}),
		},
		&cobra.Command{
			Use:   "dec <product-id>",
			Short: "Remove one unit of a product in the cart",
			Args:  cobra.ExactArgs(1),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				return rt.reportCart(cmd, rt.shopper.Cart.DecrementQuantity(cmd.Context(), args[0]))
			}),
		},
		&cobra.Command{
			Use:     "remove <product-id>",
			Aliases: []string{"rm"},
			Short:   "Remove a product from the cart",
			Args:    cobra.ExactArgs(1),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				return rt.reportCart(cmd, rt.shopper.Cart.RemoveItem(cmd.Context(), args[0]))
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				return rt.reportCart(cmd, rt.shopper.Cart.Clear(cmd.Context()))
			}),
		},
	)
	return cmd
}

func (rt *runtime) showCart(cmd *cobra.Command, _ []string) error {
	c := rt.shopper.Cart
	return printCart(cmd.OutOrStdout(), c.Items(), c.Summary())
}

func (rt *runtime) reportCart(cmd *cobra.Command, outcome cart.Outcome) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Result: %s\n\n", outcome)
	return rt.showCart(cmd, nil)
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid quantity %q: must be a positive integer", s)
	}
	return n, nil
}
