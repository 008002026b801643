package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/service"
)

func newCheckoutCommand(rt *runtime) *cobra.Command {
	var req service.CheckoutRequest

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order with the cart contents",
		Args:  cobra.NoArgs,
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			order, err := rt.checkout.Checkout(cmd.Context(), rt.shopper, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Order placed.")
			fmt.Fprintln(out)
			return printOrder(out, order)
		}),
	}
	cmd.Flags().StringVar(&req.DireccionEnvio, "address", "", "shipping address (required)")
	cmd.Flags().StringVar(&req.Notas, "notes", "", "delivery notes")
	return cmd
}

func parseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", raw)
	}
	return id, nil
}

func newOrdersCommand(rt *runtime) *cobra.Command {
	var estado string

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			if estado != "" && !strings.EqualFold(estado, model.StatusAll) {
				if _, ok := model.ParseOrderStatus(estado); !ok {
					return fmt.Errorf("unknown order status %q", estado)
				}
			}
			orders, err := rt.orders.List(cmd.Context(), rt.shopper)
			if err != nil {
				return err
			}
			return printOrders(cmd.OutOrStdout(), model.FilterOrdersByStatus(orders, estado))
		}),
	}
	list.Flags().StringVar(&estado, "estado", "", "only orders in this status (PENDIENTE, PROCESANDO, ENVIADO, ENTREGADO, CANCELADO)")

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse and cancel your orders",
	}
	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one order with its lines",
			Args:  cobra.ExactArgs(1),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				id, err := parseOrderID(args[0])
				if err != nil {
					return err
				}
				order, err := rt.orders.Get(cmd.Context(), rt.shopper, id)
				if err != nil {
					return err
				}
				return printOrder(cmd.OutOrStdout(), order)
			}),
		},
		&cobra.Command{
			Use:   "cancel <id>",
			Short: "Cancel a pending or processing order",
			Args:  cobra.ExactArgs(1),
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				id, err := parseOrderID(args[0])
				if err != nil {
					return err
				}
				order, err := rt.orders.Cancel(cmd.Context(), rt.shopper, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Order #%d is now %s.\n", order.ID, order.StatusLabel())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Summarise your order history",
			Args:  cobra.NoArgs,
			RunE: rt.action(func(cmd *cobra.Command, args []string) error {
				stats, err := rt.orders.Stats(cmd.Context(), rt.shopper)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintf(tw, "Pedidos\t%d\n", stats.TotalPedidos)
				fmt.Fprintf(tw, "Gastado\t%s\n", money(stats.TotalGastado))
				if stats.UltimoPedidoID != 0 {
					fmt.Fprintf(tw, "Último pedido\t#%d (%s, %s)\n",
						stats.UltimoPedidoID, stats.UltimoPedidoFecha.String(), stats.UltimoPedidoEstado.DisplayName())
				}
				return tw.Flush()
			}),
		},
	)
	return cmd
}

func newRecommendCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Show products recommended for you",
		Args:  cobra.NoArgs,
		RunE: rt.action(func(cmd *cobra.Command, args []string) error {
			rec, err := rt.recommendations.ForCurrentUser(cmd.Context(), rt.shopper)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rec.Razon != "" {
				fmt.Fprintln(out, rec.Razon)
				fmt.Fprintln(out)
			}
			return printProducts(out, rec.Productos)
		}),
	}
}
