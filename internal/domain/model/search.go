package model

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Search defaults.
const (
	DefaultSortField  = "nombre"
	DefaultSortDir    = "asc"
	DefaultPageSize   = 12
	MaxPageSize       = 100
	DefaultPageWindow = 5
)

// SearchParams are the catalog search filters.
type SearchParams struct {
	Q          string           `json:"q,omitempty" form:"q"`
	Categoria  string           `json:"categoria,omitempty" form:"categoria"`
	Marca      string           `json:"marca,omitempty" form:"marca"`
	PrecioMin  *decimal.Decimal `json:"precioMin,omitempty" form:"-" swaggertype:"number"`
	PrecioMax  *decimal.Decimal `json:"precioMax,omitempty" form:"-" swaggertype:"number"`
	Disponible *bool            `json:"disponible,omitempty" form:"disponible"`
	OrdenarPor string           `json:"ordenarPor,omitempty" form:"ordenarPor"`
	Direccion  string           `json:"direccion,omitempty" form:"direccion"`
	Pagina     int              `json:"pagina" form:"pagina"`
	Tamanio    int              `json:"tamanio" form:"tamanio"`
}

// Normalize fills defaults and bounds the paging values.
func (p SearchParams) Normalize() SearchParams {
	p.Q = strings.TrimSpace(p.Q)
	if p.OrdenarPor == "" {
		p.OrdenarPor = DefaultSortField
	}
	p.Direccion = strings.ToLower(p.Direccion)
	if p.Direccion != "asc" && p.Direccion != "desc" {
		p.Direccion = DefaultSortDir
	}
	if p.Pagina < 0 {
		p.Pagina = 0
	}
	if p.Tamanio <= 0 {
		p.Tamanio = DefaultPageSize
	}
	if p.Tamanio > MaxPageSize {
		p.Tamanio = MaxPageSize
	}
	return p
}

// Values encodes the params as a query string, omitting empty filters.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	if p.Q != "" {
		v.Set("q", p.Q)
	}
	if p.Categoria != "" {
		v.Set("categoria", p.Categoria)
	}
	if p.Marca != "" {
		v.Set("marca", p.Marca)
	}
	if p.PrecioMin != nil {
		v.Set("precioMin", p.PrecioMin.String())
	}
	if p.PrecioMax != nil {
		v.Set("precioMax", p.PrecioMax.String())
	}
	if p.Disponible != nil {
		v.Set("disponible", strconv.FormatBool(*p.Disponible))
	}
	if p.OrdenarPor != "" {
		v.Set("ordenarPor", p.OrdenarPor)
	}
	if p.Direccion != "" {
		v.Set("direccion", p.Direccion)
	}
	v.Set("pagina", strconv.Itoa(p.Pagina))
	if p.Tamanio > 0 {
		v.Set("tamanio", strconv.Itoa(p.Tamanio))
	}
	return v
}

// Pagination describes the page returned by a search.
type Pagination struct {
	PaginaActual    int   `json:"paginaActual"`
	TamanioPagina   int   `json:"tamanioPagina"`
	TotalElementos  int64 `json:"totalElementos"`
	TotalPaginas    int   `json:"totalPaginas"`
	EsUltimaPagina  bool  `json:"esUltimaPagina"`
	EsPrimeraPagina bool  `json:"esPrimeraPagina"`
}

// Window returns the page numbers to offer around the current page.
func (p Pagination) Window() []int {
	return PageWindow(p.PaginaActual, p.TotalPaginas, DefaultPageWindow)
}

// SearchPage is one page of search results.
type SearchPage struct {
	Productos        []Product         `json:"productos"`
	Paginacion       Pagination        `json:"paginacion"`
	FiltrosAplicados map[string]any    `json:"filtrosAplicados,omitempty"`
	Ordenamiento     map[string]string `json:"ordenamiento,omitempty"`
}

// PageWindow returns up to size zero-based page indexes centred on
// current where possible, shifted to stay inside [0, total).
func PageWindow(current, total, size int) []int {
	if total <= 0 || size <= 0 {
		return []int{}
	}

	start := max(0, current-2)
	end := min(total, start+size)
	if end-start < size {
		start = max(0, end-size)
	}

	pages := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		pages = append(pages, i)
	}
	return pages
}
