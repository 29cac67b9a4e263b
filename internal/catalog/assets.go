package catalog

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// AssetViewer identifies a verified caller asking for the assets of an NFT,
// together with the creator and holder addresses the caller claims
type AssetViewer struct {
	UserID         string
	CreatorAddress string
	WalletAddress  string
}

// GetAssetsByNFTID returns the assets of an NFT. Anonymous callers only see
// visible assets. A viewer whose wallets include the claimed creator or holder
// address, or the asset's creator, sees hidden assets too.
func (e *Engine) GetAssetsByNFTID(ctx context.Context, nftID string, viewer *AssetViewer) ([]schema.Asset, error) {
	assets, err := e.store.Assets.QueryIndex(ctx, store.IndexNFTID, nftID)
	if err != nil {
		return nil, err
	}

	if viewer == nil {
		return keep(assets, func(a schema.Asset) bool { return a.Visibility }), nil
	}

	wallets, err := e.walletAddresses(ctx, viewer.UserID, "")
	if err != nil {
		return nil, err
	}
	owns := wallets.has(viewer.CreatorAddress) || wallets.has(viewer.WalletAddress)
	return keep(assets, func(a schema.Asset) bool {
		return owns || wallets.has(a.CreatorAddress) || a.Visibility
	}), nil
}

// CreateAssets ingests every asset of an NFT concurrently
func (e *Engine) CreateAssets(ctx context.Context, nftID string, creator ingest.Creator, infos []ingest.AssetInfo) ([]schema.Asset, error) {
	if nftID == "" || creator.Address == "" || creator.ID == "" || len(infos) == 0 {
		return nil, domain.Validationf("nftId & creatorAddress & assets (list of asset types and urls) must be present")
	}
	if err := validateAssetInfos(infos); err != nil {
		return nil, err
	}
	return e.ingester.IngestAll(ctx, infos, nftID, creator)
}

// UpdateAsset merges patch over a stored asset
func (e *Engine) UpdateAsset(ctx context.Context, assetID string, patch map[string]any, appID string) (*schema.Asset, error) {
	if assetID == "" {
		return nil, domain.Validationf("assetId must exist")
	}
	return e.ingester.UpdateAsset(ctx, assetID, patch, appID)
}

// PresignUploadURLs issues presigned upload URLs for a user's asset files
func (e *Engine) PresignUploadURLs(ctx context.Context, userID string, reqs []ingest.UploadRequest) ([]ingest.PresignedUpload, error) {
	if userID == "" || len(reqs) == 0 {
		return nil, domain.Validationf("userId & assets (list of asset type and ids) must be present")
	}
	for _, req := range reqs {
		if err := schema.Validate(req); err != nil {
			return nil, err
		}
	}
	return e.ingester.PresignUploadURLs(ctx, userID, reqs)
}

func validateAssetInfos(infos []ingest.AssetInfo) error {
	for _, info := range infos {
		if err := schema.Validate(info); err != nil {
			return domain.Validationf("asset info must contain assetId, assetURL & assetType")
		}
	}
	return nil
}
