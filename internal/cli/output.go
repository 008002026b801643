package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/i18n"
	"github.com/semanticshop/storefront/internal/middleware"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func printProducts(w io.Writer, products []model.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNOMBRE\tMARCA\tPRECIO\tSTOCK")
	for _, p := range products {
		stock := "-"
		if limit, ok := p.StockLimit(); ok {
			stock = strconv.Itoa(limit)
		} else if !p.Disponible {
			stock = "agotado"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Nombre, p.Marca, money(p.Precio), stock)
	}
	return tw.Flush()
}

func printCart(w io.Writer, items []cart.Item, summary cart.Summary) error {
	tw := newTable(w)
	if len(items) == 0 {
		fmt.Fprintln(tw, "Your cart is empty.")
	} else {
		fmt.Fprintln(tw, "ID\tNOMBRE\tPRECIO\tCANT\tSUBTOTAL")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", it.ID, it.Nombre, money(it.Precio), it.Cantidad, money(it.LineTotal()))
		}
		fmt.Fprintln(tw, "\t\t\t\t")
	}
	fmt.Fprintf(tw, "Subtotal\t%s\n", money(summary.Subtotal))
	fmt.Fprintf(tw, "Envío\t%s\n", money(summary.Shipping))
	fmt.Fprintf(tw, "Impuestos\t%s\n", money(summary.Tax))
	fmt.Fprintf(tw, "Total\t%s\n", money(summary.Total))
	fmt.Fprintf(tw, "Artículos\t%d\n", summary.ItemCount)
	return tw.Flush()
}

func printOrders(w io.Writer, orders []model.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tFECHA\tESTADO\tARTÍCULOS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", o.ID, o.FechaPedido.String(), o.StatusLabel(), o.CantidadTotal, money(o.Total))
	}
	return tw.Flush()
}

func printOrder(w io.Writer, o model.Order) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Pedido\t#%d\n", o.ID)
	fmt.Fprintf(tw, "Fecha\t%s\n", o.FechaPedido.String())
	fmt.Fprintf(tw, "Estado\t%s\n", o.StatusLabel())
	fmt.Fprintf(tw, "Dirección\t%s\n", o.DireccionEnvio)
	if o.Notas != "" {
		fmt.Fprintf(tw, "Notas\t%s\n", o.Notas)
	}
	fmt.Fprintf(tw, "Total\t%s\n", money(o.Total))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(o.Detalles) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "PRODUCTO\tNOMBRE\tCANT\tUNITARIO\tSUBTOTAL")
	for _, l := range o.Detalles {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", l.ProductoID, l.ProductoNombre, l.Cantidad, money(l.PrecioUnitario), money(l.Subtotal))
	}
	return tw.Flush()
}

func printProfile(w io.Writer, u model.UserProfile) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Usuario\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	rows := [][2]string{
		{"Nombre", u.NombreCompleto},
		{"Rol", u.Role},
		{"Cliente", u.ClienteIDOntologia},
		{"Teléfono", u.Telefono},
		{"Dirección", u.Direccion},
		{"Marca preferida", u.MarcaPreferida},
		{"SO preferido", u.SistemaOperativoPreferido},
	}
	for _, r := range rows {
		if r[1] != "" {
			fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
		}
	}
	return tw.Flush()
}

// pageLine renders the one-based page window with the current page in
// brackets.
func pageLine(p model.Pagination) string {
	window := p.Window()
	parts := make([]string, 0, len(window))
	for _, page := range window {
		label := strconv.Itoa(page + 1)
		if page == p.PaginaActual {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return fmt.Sprintf("Página %d de %d (%d productos): %s",
		p.PaginaActual+1, max(p.TotalPaginas, 1), p.TotalElementos, strings.Join(parts, " "))
}

// describe turns err into the message the BFF would answer with.
func describe(err error) string {
	he := middleware.ClassifyError(err)
	if he.Status == http.StatusInternalServerError {
		return err.Error()
	}

	msg := he.Message
	if msg == "" {
		msg = i18n.GetTranslator().Translate(he.Key, i18n.DefaultLocale)
		if he.Status >= http.StatusInternalServerError {
			msg += " (" + err.Error() + ")"
		}
	}

	if len(he.Details) == 0 {
		return msg
	}
	keys := make([]string, 0, len(he.Details))
	for k := range he.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, k+": "+he.Details[k])
	}
	return msg + " [" + strings.Join(details, ", ") + "]"
}
