// Package quota caps invoice creation for guest identities at a fixed
// ceiling. The counter lives in a client-local key-value store and is
// not synchronized across concurrent writers: it is a soft cap, not a
// security boundary.
package quota

import (
	"context"
	"strconv"

	"github.com/kvoice/kvoice/internal/identity"
	"go.uber.org/zap"
)

// DefaultLimit is the number of invoices a guest may create.
const DefaultLimit = 7

const counterKeyPrefix = "kvoice:guest_invoice_count"

// Gate tracks and limits guest invoice creation.
type Gate struct {
	store CounterStore
	limit int
	log   *zap.Logger
}

func NewGate(store CounterStore, limit int, log *zap.Logger) *Gate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Gate{
		store: store,
		limit: limit,
		log:   log.Named("quota.gate"),
	}
}

// Limit returns the configured ceiling.
func (g *Gate) Limit() int {
	return g.limit
}

// CanCreate reports whether the acting identity may create an invoice.
// Non-guests are never limited. The gate never returns an error: a
// store read failure is logged and treated as a zero count.
func (g *Gate) CanCreate(ctx context.Context, isGuest bool) bool {
	if !isGuest {
		return true
	}
	return g.count(ctx) < g.limit
}

// HasReachedLimit is the negation of CanCreate.
func (g *Gate) HasReachedLimit(ctx context.Context, isGuest bool) bool {
	return !g.CanCreate(ctx, isGuest)
}

// Remaining returns how many guest creations are left, floored at zero.
func (g *Gate) Remaining(ctx context.Context) int {
	remaining := g.limit - g.count(ctx)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Increment bumps the counter by one. Callers invoke it exactly once
// per successful guest creation, strictly after persistence confirmed.
func (g *Gate) Increment(ctx context.Context) error {
	count := g.count(ctx)
	return g.store.Set(ctx, g.key(ctx), strconv.Itoa(count+1))
}

// Reset clears the counter. Administrative escape hatch, not reachable
// from normal flows.
func (g *Gate) Reset(ctx context.Context) error {
	return g.store.Remove(ctx, g.key(ctx))
}

func (g *Gate) count(ctx context.Context) int {
	key := g.key(ctx)
	raw, ok, err := g.store.Get(ctx, key)
	if err != nil {
		g.log.Warn("counter read failed", zap.String("key", key), zap.Error(err))
		return 0
	}
	if !ok {
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// key scopes the counter to the acting account so one guest cannot
// consume another's allowance.
func (g *Gate) key(ctx context.Context) string {
	if id, ok := identity.FromContext(ctx); ok {
		return counterKeyPrefix + ":" + id.AccountID
	}
	return counterKeyPrefix
}
