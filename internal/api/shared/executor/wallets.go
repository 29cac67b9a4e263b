package executor

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/auth"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// SaveWallet links a wallet to the caller once the wallet has signed the
// caller's user id
func (e *executor) SaveWallet(ctx context.Context, caller dto.Caller, req dto.WriteRequest[dto.SaveWalletData]) (schema.Wallet, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return schema.Wallet{}, err
	}
	w := req.Data
	if w.Address == "" || w.Chain == "" || w.Signature == "" || req.UserID == "" {
		return schema.Wallet{}, domain.Validationf("address & chain & signature must exist")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return schema.Wallet{}, err
	}

	err := e.wallets.Verify(auth.WalletProof{
		Address:   w.Address,
		Signature: w.Signature,
		ChainID:   w.ChainID,
		UserID:    req.UserID,
	})
	if err != nil {
		logger.DebugCtx(ctx, "wallet proof rejected",
			zap.String("address", w.Address),
			zap.Error(err))
		return schema.Wallet{}, domain.Validationf("presented address isn't owner of signature")
	}

	return e.engine.SaveWallet(ctx, w.Address, w.Chain, req.UserID, req.AppID)
}

func (e *executor) GetWalletsByUserID(ctx context.Context, userID string) ([]schema.Wallet, error) {
	return e.engine.GetWalletsByUserID(ctx, userID)
}

func (e *executor) GetWalletsByUserIDAndChain(ctx context.Context, userID, chain string) ([]schema.Wallet, error) {
	return e.engine.GetWalletsByUserIDAndChain(ctx, userID, chain)
}

func (e *executor) GetRecentWallet(ctx context.Context, userID, chain string) (string, error) {
	return e.engine.GetRecentWallet(ctx, userID, chain)
}

func (e *executor) GetUserByWallet(ctx context.Context, address, chain string) (schema.User, error) {
	return e.engine.GetUserByWallet(ctx, address, chain)
}
