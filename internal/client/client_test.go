//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/domain/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, New(srv.URL+"/api/", WithTokenSource(StaticToken("tok-123")))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Nil(t, c.CircuitBreaker())

	c = New("http://shop.example/api///")
	assert.Equal(t, "http://shop.example/api", c.BaseURL())
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, []model.Product{})
	})

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "storefront/1.0", got.Get("User-Agent"))
}

func TestClient_AnonymousWhenTokenEmpty(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []model.Product{})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(StaticToken("")))
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_ContextTokenWins(t *testing.T) {
	var auth string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []model.Product{})
	})

	_, err := c.ListProducts(ContextWithToken(context.Background(), "per-request"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer per-request", auth)

	_, err = c.ListProducts(ContextWithToken(context.Background(), ""))
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_TokenSourceError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	boom := errors.New("store down")
	c := New(srv.URL, WithTokenSource(TokenFunc(func(context.Context) (string, error) {
		return "", boom
	})))

	_, err := c.ListProducts(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		message    string
		notFound   bool
		unauth     bool
		conflict   bool
		upstreamKO bool
	}{
		{name: "message field", status: 404, body: `{"message":"Producto no encontrado"}`, message: "Producto no encontrado", notFound: true},
		{name: "error field", status: 400, body: `{"success":false,"error":"Stock insuficiente"}`, message: "Stock insuficiente"},
		{name: "mensaje field", status: 409, body: `{"mensaje":"Pedido ya enviado"}`, message: "Pedido ya enviado", conflict: true},
		{name: "status text fallback", status: 401, body: ``, message: "Unauthorized", unauth: true},
		{name: "non json body", status: 500, body: `<html>oops</html>`, message: "Internal Server Error", upstreamKO: true},
		{name: "forbidden counts as unauthorized", status: 403, body: `{}`, message: "Forbidden", unauth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetProduct(context.Background(), "P1")
			require.Error(t, err)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "/productos/P1", apiErr.Path)

			assert.Equal(t, tt.notFound, IsNotFound(err))
			assert.Equal(t, tt.unauth, IsUnauthorized(err))
			assert.Equal(t, tt.conflict, IsConflict(err))
			assert.Equal(t, tt.upstreamKO, IsUpstreamFailure(err))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)

	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
	assert.True(t, IsUpstreamFailure(err))
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestClient_UndecodableBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := c.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_ContextCancelled(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Product{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListProducts(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_CircuitBreaker(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path == "/productos/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "shop-api-test",
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		IsFailure:        IsUpstreamFailure,
	})
	c := New(srv.URL, WithCircuitBreaker(cb))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.GetProduct(ctx, "missing")
		require.True(t, IsNotFound(err))
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	_, err := c.ListProducts(ctx)
	require.Error(t, err)
	_, err = c.ListProducts(ctx)
	require.Error(t, err)
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())

	before := atomic.LoadInt32(&calls)
	_, err = c.ListProducts(ctx)
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestClient_Search(t *testing.T) {
	var query map[string][]string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/buscar", r.URL.Path)
		query = r.URL.Query()
		_, _ = io.WriteString(w, `{
			"success": true,
			"datos": {
				"productos": [{"id":"Laptop_1","nombre":"XPS","marca":"Dell","precio":1299.99,"disponible":true}],
				"paginacion": {"paginaActual":0,"tamanioPagina":12,"totalElementos":1,"totalPaginas":1,"esUltimaPagina":true,"esPrimeraPagina":true}
			}
		}`)
	})

	minPrice := decimal.NewFromInt(100)
	page, err := c.Search(context.Background(), model.SearchParams{Q: "xps", Marca: "Dell", PrecioMin: &minPrice}.Normalize())
	require.NoError(t, err)

	require.Len(t, page.Productos, 1)
	assert.Equal(t, "Laptop_1", page.Productos[0].ID)
	assert.True(t, page.Productos[0].Precio.Equal(decimal.RequireFromString("1299.99")))
	assert.Equal(t, int64(1), page.Paginacion.TotalElementos)

	assert.Equal(t, []string{"xps"}, query["q"])
	assert.Equal(t, []string{"Dell"}, query["marca"])
	assert.Equal(t, []string{"100"}, query["precioMin"])
	assert.Equal(t, []string{"12"}, query["tamanio"])
	assert.NotContains(t, query, "categoria")
}

func TestClient_FilterEndpoints(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/productos/categorias":
			_, _ = io.WriteString(w, `{"success":true,"categorias":["Laptops","Monitores"],"total":2}`)
		case "/api/productos/marcas":
			_, _ = io.WriteString(w, `{"success":true,"total":0}`)
		case "/api/productos/rango-precios":
			_, _ = io.WriteString(w, `{"success":true,"precioMin":9.99,"precioMax":2499}`)
		case "/api/productos/sugerencias":
			assert.Equal(t, "lap", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("limite"))
			_, _ = io.WriteString(w, `{"success":true,"sugerencias":["Laptop Dell","Laptop HP"],"total":2}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptops", "Monitores"}, cats)

	brands, err := c.Brands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, brands)

	pr, err := c.PriceRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9.99", pr.PrecioMin.String())
	assert.Equal(t, "2499", pr.PrecioMax.String())

	sugg, err := c.Suggestions(ctx, "lap", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop Dell", "Laptop HP"}, sugg)
}

func TestClient_RemoteCart(t *testing.T) {
	type seen struct {
		method string
		path   string
		body   string
	}
	var calls []seen
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, seen{r.Method, r.URL.Path, string(b)})
		switch {
		case r.Method == http.MethodPost:
			_, _ = io.WriteString(w, `{"success":true,"item":{"productoId":"P1","cantidad":2,"precio":10}}`)
		case r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `{"success":true,"carrito":{"items":[{"productoId":"P1","cantidad":2}],"cantidadTotal":2,"total":20,"todosDisponibles":true}}`)
		default:
			_, _ = io.WriteString(w, `{"success":true}`)
		}
	})
	ctx := context.Background()

	require.NoError(t, c.ClearRemoteCart(ctx))
	item, err := c.AddToRemoteCart(ctx, "P1", 2)
	require.NoError(t, err)
	assert.Equal(t, "P1", item.ProductoID)
	_, err = c.UpdateRemoteCart(ctx, "P1", 3)
	require.NoError(t, err)
	require.NoError(t, c.RemoveFromRemoteCart(ctx, "P1"))
	rc, err := c.RemoteCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rc.CantidadTotal)

	require.Len(t, calls, 5)
	assert.Equal(t, seen{http.MethodDelete, "/api/carrito/limpiar", ""}, calls[0])
	assert.Equal(t, http.MethodPost, calls[1].method)
	assert.JSONEq(t, `{"productoId":"P1","cantidad":2}`, calls[1].body)
	assert.Equal(t, "/api/carrito/actualizar/P1", calls[2].path)
	assert.JSONEq(t, `{"cantidad":3}`, calls[2].body)
	assert.Equal(t, "/api/carrito/eliminar/P1", calls[3].path)
}

func TestClient_Orders(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/pedidos/crear":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "Calle 1", body["direccionEnvio"])
			_, _ = io.WriteString(w, `{"success":true,"pedido":{"id":7,"estado":"PENDIENTE","total":265.99,"fechaPedido":"2024-05-01T10:30:00.123"},"pedidoId":7}`)
		case "GET /api/pedidos/mis-pedidos":
			_, _ = io.WriteString(w, `{"success":true,"totalPedidos":0}`)
		case "PUT /api/pedidos/7/cancelar":
			_, _ = io.WriteString(w, `{"success":true,"pedido":{"id":7,"estado":"CANCELADO"}}`)
		case "GET /api/pedidos/mis-estadisticas":
			_, _ = io.WriteString(w, `{"success":true,"estadisticas":{"totalPedidos":3,"totalGastado":120.5}}`)
		case "PUT /api/pedidos/7/estado":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "ENVIADO", body["nuevoEstado"])
			_, _ = io.WriteString(w, `{"success":true,"pedido":{"id":7,"estado":"ENVIADO"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	order, err := c.CreateOrder(ctx, "Calle 1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, model.StatusPending, order.Estado)
	assert.Equal(t, 2024, order.FechaPedido.Year())

	orders, err := c.MyOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Order{}, orders)

	cancelled, err := c.CancelOrder(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Estado)

	stats, err := c.MyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPedidos)

	shipped, err := c.UpdateOrderStatus(ctx, 7, model.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, shipped.Estado)

	_, err = c.GetOrder(ctx, 99)
	assert.True(t, IsNotFound(err))
}

func TestClient_AuthAndRecommendations(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/auth/login":
			var creds model.Credentials
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
				return
			}
			_, _ = io.WriteString(w, `{"token":"jwt","id":1,"username":"ana","email":"ana@x.com","role":"CLIENTE","clienteIdOntologia":"Cliente_ana"}`)
		case "GET /api/auth/perfil":
			_, _ = io.WriteString(w, `{"id":1,"username":"ana","telefono":"555"}`)
		case "GET /api/recomendaciones/cliente/Cliente_ana":
			_, _ = io.WriteString(w, `{"success":true,"clienteId":"Cliente_ana","productos":[{"id":"P1","precio":5}],"razon":"Marca preferida","totalRecomendaciones":1}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	_, err := c.Login(ctx, "ana", "wrong")
	require.True(t, IsUnauthorized(err))

	auth, err := c.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", auth.Token)
	assert.Equal(t, "Cliente_ana", auth.ClienteIDOntologia)

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "555", profile.Telefono)

	rec, err := c.Recommendations(ctx, "Cliente_ana")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TotalRecomendaciones)
	require.Len(t, rec.Productos, 1)
}
