package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order states as the shop API names them.
const (
	StatusPending    OrderStatus = "PENDIENTE"
	StatusProcessing OrderStatus = "PROCESANDO"
	StatusShipped    OrderStatus = "ENVIADO"
	StatusDelivered  OrderStatus = "ENTREGADO"
	StatusCancelled  OrderStatus = "CANCELADO"
)

// StatusAll is the filter value that matches every order.
const StatusAll = "TODOS"

// OrderStatuses lists every state in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var statusDisplayNames = map[OrderStatus]string{
	StatusPending:    "Pendiente",
	StatusProcessing: "En Proceso",
	StatusShipped:    "Enviado",
	StatusDelivered:  "Entregado",
	StatusCancelled:  "Cancelado",
}

// ParseOrderStatus parses a status name case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	return status, status.Valid()
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusDisplayNames[s]
	return ok
}

// DisplayName returns the human readable label.
func (s OrderStatus) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// Cancellable reports whether an order in this state may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

// InProgress reports whether the order has not reached the customer yet.
func (s OrderStatus) InProgress() bool {
	return s == StatusPending || s == StatusProcessing || s == StatusShipped
}

// Final reports whether no further transition is possible.
func (s OrderStatus) Final() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order is a placed order with its lines.
//
// @Description Order with lines
type Order struct {
	ID                 int64           `json:"id" example:"42"`
	UsuarioID          int64           `json:"usuarioId,omitempty"`
	UsuarioNombre      string          `json:"usuarioNombre,omitempty"`
	FechaPedido        Timestamp       `json:"fechaPedido" swaggertype:"string" example:"2024-05-01T10:30:00"`
	Estado             OrderStatus     `json:"estado" example:"PENDIENTE"`
	EstadoDisplay      string          `json:"estadoDisplay,omitempty" example:"Pendiente"`
	Total              decimal.Decimal `json:"total" swaggertype:"number" example:"265.99"`
	DireccionEnvio     string          `json:"direccionEnvio"`
	Notas              string          `json:"notas,omitempty"`
	FechaActualizacion Timestamp       `json:"fechaActualizacion" swaggertype:"string"`
	Detalles           []OrderLine     `json:"detalles"`
	CantidadTotal      int             `json:"cantidadTotal"`
}

// OrderLine is one product line of an order.
type OrderLine struct {
	ID                int64           `json:"id"`
	ProductoID        string          `json:"productoId"`
	ProductoNombre    string          `json:"productoNombre"`
	ProductoMarca     string          `json:"productoMarca,omitempty"`
	ProductoCategoria string          `json:"productoCategoria,omitempty"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precioUnitario" swaggertype:"number"`
	Subtotal          decimal.Decimal `json:"subtotal" swaggertype:"number"`
}

// StatusLabel prefers the server supplied label.
func (o Order) StatusLabel() string {
	if o.EstadoDisplay != "" {
		return o.EstadoDisplay
	}
	return o.Estado.DisplayName()
}

// UserStats summarises the caller's order history.
type UserStats struct {
	TotalPedidos       int             `json:"totalPedidos"`
	TotalGastado       decimal.Decimal `json:"totalGastado" swaggertype:"number"`
	UltimoPedidoID     int64           `json:"ultimoPedidoId,omitempty"`
	UltimoPedidoFecha  Timestamp       `json:"ultimoPedidoFecha" swaggertype:"string"`
	UltimoPedidoEstado OrderStatus     `json:"ultimoPedidoEstado,omitempty"`
}

// FilterOrdersByStatus keeps the orders in the given state. An empty
// filter or StatusAll keeps everything.
func FilterOrdersByStatus(orders []Order, filter string) []Order {
	filter = strings.ToUpper(strings.TrimSpace(filter))
	if filter == "" || filter == StatusAll {
		return orders
	}

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Estado) == filter {
			out = append(out, o)
		}
	}
	return out
}

// CountOrdersByStatus counts orders per state. Every known state is
// present in the result, and StatusAll holds the overall count.
func CountOrdersByStatus(orders []Order) map[string]int {
	counts := make(map[string]int, len(OrderStatuses)+1)
	counts[StatusAll] = len(orders)
	for _, s := range OrderStatuses {
		counts[string(s)] = 0
	}
	for _, o := range orders {
		counts[string(o.Estado)]++
	}
	return counts
}
