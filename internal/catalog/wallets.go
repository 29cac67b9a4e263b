package catalog

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// GetWalletsByUserID returns the user's wallets, most recently connected first
func (e *Engine) GetWalletsByUserID(ctx context.Context, userID string) ([]schema.Wallet, error) {
	wallets, err := e.store.Wallets.QueryIndex(ctx, store.IndexUserID, userID)
	if err != nil {
		return nil, err
	}
	sortByConnectedTime(wallets)
	return wallets, nil
}

// GetWalletsByUserIDAndChain returns the user's wallets on chain, most recently connected first
func (e *Engine) GetWalletsByUserIDAndChain(ctx context.Context, userID, chain string) ([]schema.Wallet, error) {
	wallets, err := e.store.Wallets.QueryIndex(ctx, store.IndexUserID, userID)
	if err != nil {
		return nil, err
	}
	wallets = keep(wallets, func(w schema.Wallet) bool { return w.Chain == chain })
	sortByConnectedTime(wallets)
	return wallets, nil
}

// GetRecentWallet returns the address of the user's most recently connected
// wallet on chain, or "" when there is none
func (e *Engine) GetRecentWallet(ctx context.Context, userID, chain string) (string, error) {
	wallets, err := e.GetWalletsByUserIDAndChain(ctx, userID, chain)
	if err != nil {
		return "", err
	}
	if len(wallets) == 0 {
		return "", nil
	}
	return wallets[0].Address, nil
}

// SaveWallet links address on chain to userID. Ownership of the address must
// have been proven by the caller.
func (e *Engine) SaveWallet(ctx context.Context, address, chain, userID, appID string) (schema.Wallet, error) {
	w, err := schema.NewWallet(address, chain, userID, e.now())
	if err != nil {
		return schema.Wallet{}, err
	}
	if appID != "" {
		w.AppID = appID
	}
	if err := e.store.Wallets.Put(ctx, &w); err != nil {
		return schema.Wallet{}, err
	}
	return w, nil
}

// GetUserByWallet returns the user a wallet is linked to
func (e *Engine) GetUserByWallet(ctx context.Context, address, chain string) (schema.User, error) {
	w, err := e.store.Wallets.Get(ctx, address, chain)
	if err != nil {
		return schema.User{}, err
	}
	if w == nil || w.UserID == "" {
		return schema.User{}, domain.Validationf("given wallet does not exist or userId does not exist in wallet data")
	}
	return e.GetUser(ctx, w.UserID)
}
