package catalog

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/worker"
)

// NFTIdentifier locates an NFT by its collection contract and token id
type NFTIdentifier struct {
	CollectionAddress string `json:"collectionAddress"`
	TokenID           int64  `json:"tokenId"`
}

// GetNFT returns the current version, or a zero NFT
func (e *Engine) GetNFT(ctx context.Context, nftID string) (schema.NFT, error) {
	return e.store.NFTs.GetLatest(ctx, nftID)
}

// GetNFTByDotID returns the highest version carrying dotID
func (e *Engine) GetNFTByDotID(ctx context.Context, dotID string) (schema.NFT, error) {
	return e.store.NFTs.GetLatestByIndex(ctx, store.IndexDotID, dotID)
}

// GetNFTsByCollectionID returns the current version of every NFT in a collection
func (e *Engine) GetNFTsByCollectionID(ctx context.Context, collectionID string) ([]schema.NFT, error) {
	rows, err := e.store.NFTs.GetByIndex(ctx, store.IndexCollectionID, collectionID)
	if err != nil {
		return nil, err
	}
	return store.LatestPerEntity(rows), nil
}

// GetNFTsByCollectionAddress returns the current version of every NFT minted
// under a collection contract
func (e *Engine) GetNFTsByCollectionAddress(ctx context.Context, collectionAddress string) ([]schema.NFT, error) {
	rows, err := e.store.NFTs.GetByIndex(ctx, store.IndexCollectionAddress, collectionAddress)
	if err != nil {
		return nil, err
	}
	return store.LatestPerEntity(rows), nil
}

// GetNFTsByAddressAndTokenIDs resolves every identifier in parallel. Identifiers
// that match no NFT are dropped; the rest keep input order.
func (e *Engine) GetNFTsByAddressAndTokenIDs(ctx context.Context, ids []NFTIdentifier) ([]schema.NFT, error) {
	resolved, err := worker.FanOut(ctx, e.pool, ids, func(ctx context.Context, id NFTIdentifier) (schema.NFT, error) {
		rows, err := e.store.NFTs.GetByIndex(ctx, store.IndexCollectionAddress, id.CollectionAddress)
		if err != nil {
			return schema.NFT{}, err
		}
		rows = keep(rows, func(n schema.NFT) bool { return n.TokenID == id.TokenID })
		return store.Latest(rows), nil
	})
	if err != nil {
		return nil, err
	}
	return keep(resolved, func(n schema.NFT) bool { return !n.IsZero() }), nil
}

// CountNFTsByCollectionID counts the distinct NFTs of a collection
func (e *Engine) CountNFTsByCollectionID(ctx context.Context, collectionID string) (int, error) {
	nfts, err := e.GetNFTsByCollectionID(ctx, collectionID)
	if err != nil {
		return 0, err
	}
	return len(nfts), nil
}

// CreateNFT writes version 1 of a new NFT with zeroed counters
func (e *Engine) CreateNFT(ctx context.Context, in schema.NFTInput, appID string) (schema.NFT, error) {
	n, err := schema.NewNFT(in)
	if err != nil {
		return schema.NFT{}, err
	}
	if appID != "" {
		n.AppID = appID
	}
	n.Stamp(1, e.now())

	if err := e.store.NFTs.Put(ctx, n); err != nil {
		return schema.NFT{}, err
	}
	return n, nil
}

// IncrementScanCount atomically adds one to the scan counter of the current version
func (e *Engine) IncrementScanCount(ctx context.Context, nftID string) error {
	return e.store.NFTs.Increment(ctx, nftID, store.CounterScanCount, 1)
}

// IncrementViewCount atomically adds one to the view counter of the current version
func (e *Engine) IncrementViewCount(ctx context.Context, nftID string) error {
	return e.store.NFTs.Increment(ctx, nftID, store.CounterViewCount, 1)
}
