package http

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/metrics"
)

// SearchProducts handles GET /api/products requests.
//
// @Summary      Search the catalog
// @Description  Full-text search with category, brand, price and availability filters, sorting and pagination. Pages are zero-based; paginas lists the page numbers to offer around the current one.
// @Tags         Catalog
// @Produce      json
// @Param        q          query string false "Search text"
// @Param        categoria  query string false "Category"
// @Param        marca      query string false "Brand"
// @Param        precioMin  query number false "Minimum price"
// @Param        precioMax  query number false "Maximum price"
// @Param        disponible query bool   false "Only products in stock"
// @Param        ordenarPor query string false "Sort field" default(nombre)
// @Param        direccion  query string false "asc or desc" default(asc)
// @Param        pagina     query int    false "Page" default(0)
// @Param        tamanio    query int    false "Page size" default(12)
// @Success      200 {object} dto.SuccessResponse{data=dto.SearchResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      502 {object} dto.ErrorResponse "Shop API failed"
// @Failure      503 {object} dto.ErrorResponse "Shop API switched off"
// @Security     SessionAuth
// @Router       /api/products [get]
func (h *Handler) SearchProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := BuildQuery[dto.SearchQuery](c)
	if err != nil {
		builder.Fail(err)
		return
	}
	params, err := query.Params()
	if err != nil {
		builder.Fail(err)
		return
	}

	page, err := h.deps.Catalog.Search(c.Request.Context(), params)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.SearchResponse{SearchPage: page, Paginas: page.Paginacion.Window()})
}

// GetProduct handles GET /api/products/:id requests.
//
// @Summary      Product detail
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=model.Product}
// @Failure      404 {object} dto.ErrorResponse "Unknown product"
// @Security     SessionAuth
// @Router       /api/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, err := h.deps.Catalog.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(product)
}

// ProductsByCategory handles GET /api/products/category/:categoria requests.
//
// @Summary      Products of a category
// @Tags         Catalog
// @Produce      json
// @Param        categoria path string true "Category"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Product}
// @Security     SessionAuth
// @Router       /api/products/category/{categoria} [get]
func (h *Handler) ProductsByCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	products, err := h.deps.Catalog.ProductsByCategory(c.Request.Context(), c.Param("categoria"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(products)
}

// FilterOptions handles GET /api/products/filters requests.
//
// @Summary      Search filter values
// @Description  Categories, brands and the catalog price range. Cached server-side.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.FilterOptions}
// @Security     SessionAuth
// @Router       /api/products/filters [get]
func (h *Handler) FilterOptions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := h.deps.Catalog.FilterOptions(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(opts)
}

// Suggestions handles GET /api/products/suggestions requests.
//
// @Summary      Autocomplete
// @Description  Returns suggestions for a partial query. Queries shorter than the minimum length return an empty list without calling the shop. Debouncing is left to the client.
// @Tags         Catalog
// @Produce      json
// @Param        q      query string true  "Partial query"
// @Param        limite query int    false "Maximum suggestions" default(5)
// @Success      200 {object} dto.SuccessResponse{data=dto.SuggestionsResponse}
// @Security     SessionAuth
// @Router       /api/products/suggestions [get]
func (h *Handler) Suggestions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < h.suggest.MinLength {
		metrics.RecordSuggestion("cleared")
		builder.SuccessOK(dto.SuggestionsResponse{Query: q, Sugerencias: []string{}})
		return
	}

	limit := h.suggest.Limit
	if raw := c.Query("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			builder.Fail(&dto.ValidationError{Field: "limite", Message: "must be a positive integer"})
			return
		}
		limit = min(n, 20)
	}

	suggestions, err := h.deps.Suggestions.Suggestions(c.Request.Context(), q, limit)
	if err != nil {
		metrics.RecordSuggestion("error")
		builder.Fail(err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	metrics.RecordSuggestion("delivered")
	builder.SuccessOK(dto.SuggestionsResponse{Query: q, Sugerencias: suggestions, Total: len(suggestions)})
}
