// Package catalog composes store lookups into the filtered, access-controlled
// result sets returned to API callers.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/alitto/pond/v2"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/search"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// Engine answers catalog queries and applies catalog writes. It holds no
// per-request state; every collaborator is injected.
type Engine struct {
	store    *store.Store
	ingester ingest.Ingester
	search   search.Index
	pool     pond.Pool
	clock    adapter.Clock
}

// New creates an Engine
func New(st *store.Store, ingester ingest.Ingester, index search.Index, pool pond.Pool, clock adapter.Clock) *Engine {
	return &Engine{
		store:    st,
		ingester: ingester,
		search:   index,
		pool:     pool,
		clock:    clock,
	}
}

func (e *Engine) now() int64 {
	return adapter.Millis(e.clock.Now())
}

// keep returns the rows for which pred is true, preserving order
func keep[T any](rows []T, pred func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// addressSet holds wallet addresses lower-cased. Hex addresses arrive in mixed
// checksum case from different clients.
type addressSet map[string]bool

func (s addressSet) has(address string) bool {
	return address != "" && s[strings.ToLower(address)]
}

// walletAddresses loads the set of addresses connected by userID, scoped to
// chain when it is non-empty
func (e *Engine) walletAddresses(ctx context.Context, userID, chain string) (addressSet, error) {
	var (
		wallets []schema.Wallet
		err     error
	)
	if chain != "" {
		wallets, err = e.GetWalletsByUserIDAndChain(ctx, userID, chain)
	} else {
		wallets, err = e.GetWalletsByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	set := make(addressSet, len(wallets))
	for _, w := range wallets {
		set[strings.ToLower(w.Address)] = true
	}
	return set, nil
}

// sortByConnectedTime orders wallets most recent first. Ties keep fetch order.
func sortByConnectedTime(wallets []schema.Wallet) {
	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].ConnectedTime > wallets[j].ConnectedTime
	})
}
