// Package cart holds the shopper's in-progress selection of products and
// derives the order pricing from it.
//
// A Cart is safe for concurrent use. Every mutation rewrites the whole cart
// as a JSON array under StorageKey. Mutations never fail: invalid requests
// are no-ops, and storage problems are logged and counted instead of being
// returned. The Outcome returned by each mutation tells callers what
// actually happened.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/metrics"
	"github.com/semanticshop/storefront/internal/repository"
)

// StorageKey is the key the cart is persisted under.
const StorageKey = "cart"

// Item is one product's entry. Product fields are flattened next to the
// quantity in JSON.
type Item struct {
	model.Product
	Cantidad int `json:"cantidad"`
}

// LineTotal returns price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Precio.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

// Outcome describes the effect of a mutation.
type Outcome int

// Mutation outcomes.
const (
	NoOp Outcome = iota
	Added
	Updated
	Clamped
	Removed
	Cleared
	RejectedAtStock
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Clamped:
		return "clamped"
	case Removed:
		return "removed"
	case Cleared:
		return "cleared"
	case RejectedAtStock:
		return "rejected_at_stock"
	default:
		return "noop"
	}
}

// Changed reports whether the cart contents changed.
func (o Outcome) Changed() bool {
	return o != NoOp && o != RejectedAtStock
}

// MarshalText lets outcomes appear by name in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Option configures a Cart.
type Option func(*Cart)

// WithRules overrides the default pricing rules.
func WithRules(r Rules) Option {
	return func(c *Cart) {
		c.rules = r
	}
}

// Cart is the shopping cart model.
type Cart struct {
	mu    sync.RWMutex
	store repository.KVRepositoryInterface
	rules Rules
	items []Item
}

// New creates an empty cart backed by store. A nil store keeps the cart
// in memory only. Call Load to rehydrate a previously persisted cart.
func New(store repository.KVRepositoryInterface, opts ...Option) *Cart {
	c := &Cart{
		store: store,
		rules: DefaultRules(),
		items: []Item{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory contents with the persisted cart. A missing
// key, unreadable store or malformed blob all yield an empty cart.
func (c *Cart) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []Item{}
	c.loadLocked(ctx)
}

// Refresh re-reads the persisted cart so writes made by another process
// sharing the store become visible. Unlike Load, a failed read keeps the
// current contents instead of emptying the cart.
func (c *Cart) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)
}

func (c *Cart) loadLocked(ctx context.Context) {
	if c.store == nil {
		return
	}

	data, err := c.store.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.items = []Item{}
		metrics.RecordCartLoad("empty")
		return
	case err != nil:
		log.Warn().Err(err).Str("key", StorageKey).Msg("Failed to read cart")
		metrics.RecordCartLoad("error")
		return
	}

	var stored []Item
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("Malformed cart in storage, starting empty")
		c.items = []Item{}
		metrics.RecordCartLoad("corrupt")
		return
	}

	c.items = normalize(stored)
	metrics.RecordCartLoad("loaded")
	log.Debug().Int("items", len(c.items)).Msg("Cart loaded")
}

// normalize enforces the cart invariants on data read from storage:
// one entry per product and quantities of at least one.
func normalize(stored []Item) []Item {
	items := make([]Item, 0, len(stored))
	seen := make(map[string]int, len(stored))
	for _, it := range stored {
		if it.ID == "" || it.Cantidad < 1 {
			continue
		}
		if idx, ok := seen[it.ID]; ok {
			items[idx].Cantidad += it.Cantidad
			continue
		}
		seen[it.ID] = len(items)
		items = append(items, it)
	}
	return items
}

// AddItem adds qty units of product. An existing entry keeps its cached
// product fields and grows by qty; stock is not enforced here. A qty
// below one adds a single unit.
func (c *Cart) AddItem(ctx context.Context, product model.Product, qty int) Outcome {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if product.ID == "" {
		return c.done(ctx, "add", NoOp)
	}

	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Cantidad += qty
		return c.done(ctx, "add", Updated)
	}

	c.items = append(c.items, Item{Product: product, Cantidad: qty})
	return c.done(ctx, "add", Added)
}

// SetQuantity sets the quantity of a product already in the cart. A
// quantity below one removes it; a known stock caps it.
func (c *Cart) SetQuantity(ctx context.Context, productID string, qty int) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return c.done(ctx, "set", NoOp)
	}
	if qty < 1 {
		c.removeAt(i)
		return c.done(ctx, "set", Removed)
	}

	if limit, ok := c.items[i].StockLimit(); ok && qty > limit {
		c.items[i].Cantidad = limit
		return c.done(ctx, "set", Clamped)
	}

	c.items[i].Cantidad = qty
	return c.done(ctx, "set", Updated)
}

// IncrementQuantity adds one unit unless the item sits at its stock.
func (c *Cart) IncrementQuantity(ctx context.Context, productID string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return c.done(ctx, "increment", NoOp)
	}
	if limit, ok := c.items[i].StockLimit(); ok && c.items[i].Cantidad >= limit {
		return c.done(ctx, "increment", RejectedAtStock)
	}

	c.items[i].Cantidad++
	return c.done(ctx, "increment", Updated)
}

// DecrementQuantity removes one unit, or the whole entry at quantity one.
func (c *Cart) DecrementQuantity(ctx context.Context, productID string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return c.done(ctx, "decrement", NoOp)
	}
	if c.items[i].Cantidad <= 1 {
		c.removeAt(i)
		return c.done(ctx, "decrement", Removed)
	}

	c.items[i].Cantidad--
	return c.done(ctx, "decrement", Updated)
}

// RemoveItem deletes a product's entry.
func (c *Cart) RemoveItem(ctx context.Context, productID string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return c.done(ctx, "remove", NoOp)
	}
	c.removeAt(i)
	return c.done(ctx, "remove", Removed)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []Item{}
	return c.done(ctx, "clear", Cleared)
}

// Contains reports whether the product is in the cart.
func (c *Cart) Contains(productID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(productID) >= 0
}

// QuantityOf returns the product's quantity, zero when absent.
func (c *Cart) QuantityOf(productID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(productID); i >= 0 {
		return c.items[i].Cantidad
	}
	return 0
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct products.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// Subtotal returns the sum of price times quantity.
func (c *Cart) Subtotal() decimal.Decimal {
	return c.Summary().Subtotal
}

// Shipping returns the shipping charge for the current subtotal.
func (c *Cart) Shipping() decimal.Decimal {
	return c.Summary().Shipping
}

// Tax returns the tax on the current subtotal.
func (c *Cart) Tax() decimal.Decimal {
	return c.Summary().Tax
}

// Total returns subtotal plus shipping plus tax.
func (c *Cart) Total() decimal.Decimal {
	return c.Summary().Total
}

// TotalItemCount returns the sum of quantities.
func (c *Cart) TotalItemCount() int {
	return c.Summary().ItemCount
}

// Summary computes every pricing figure from one consistent snapshot.
func (c *Cart) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rules.Price(c.items)
}

// Rules returns the pricing rules in effect.
func (c *Cart) Rules() Rules {
	return c.rules
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// done records the mutation and persists the cart when it changed. It
// must be called with the write lock held so the stored blob always
// matches a state the cart actually had.
func (c *Cart) done(ctx context.Context, operation string, outcome Outcome) Outcome {
	metrics.RecordCartMutation(operation, outcome.String())
	if outcome.Changed() {
		c.persist(ctx)
	}
	return outcome
}

func (c *Cart) persist(ctx context.Context) {
	if c.store == nil {
		return
	}

	data, err := json.Marshal(c.items)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode cart")
		metrics.RecordCartPersistFailure()
		return
	}

	if err := c.store.Set(ctx, StorageKey, data); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Int("items", len(c.items)).Msg("Failed to persist cart")
		metrics.RecordCartPersistFailure()
	}
}
