// Package main is the entry point of the storefront.
//
// @title           Storefront BFF API
// @version         1.0.0
// @description     Backend-for-frontend of the semantic shop.
//
//	Each browser session gets its own cart and shop login; checkout
//	mirrors the cart into the shop API and places the order.
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  SessionAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token from POST /api/session.
//
// @tag.name        Session
// @tag.description Guest sessions
//
// @tag.name        Cart
// @tag.description Per-session shopping cart
//
// @tag.name        Catalog
// @tag.description Product search, filters and autocomplete
//
// @tag.name        Auth
// @tag.description Shop login and profile
//
// @tag.name        Checkout
// @tag.description Order placement
//
// @tag.name        Orders
// @tag.description Order history
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/semanticshop/storefront/docs" // swagger docs

	"github.com/semanticshop/storefront/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
