package executor

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// GetAssetsByNFTID is public. A signed-in viewer may pass QUERY_PARAMS to
// also see hidden assets of NFTs they created or hold.
func (e *executor) GetAssetsByNFTID(ctx context.Context, caller dto.Caller, nftID string, params *dto.AssetsQueryParams) ([]schema.Asset, error) {
	if nftID == "" {
		return nil, domain.Validationf("nftId must be present.")
	}
	if params == nil {
		return e.engine.GetAssetsByNFTID(ctx, nftID, nil)
	}

	if params.UserID == "" {
		return nil, domain.Validationf(`"userId" must be provided`)
	}
	if err := e.requireSubject(ctx, caller, params.UserID); err != nil {
		return nil, err
	}
	if params.CreatorAddress == nil || params.WalletAddress == nil {
		return nil, domain.Validationf(`"creatorAddress" , "walletAddress" must be provided`)
	}

	return e.engine.GetAssetsByNFTID(ctx, nftID, &catalog.AssetViewer{
		UserID:         params.UserID,
		CreatorAddress: *params.CreatorAddress,
		WalletAddress:  *params.WalletAddress,
	})
}

func (e *executor) CreateAssets(ctx context.Context, caller dto.Caller, req dto.WriteRequest[dto.CreateAssetsData]) ([]schema.Asset, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if req.UserID == "" || req.Data.NFTID == "" || len(req.Data.Assets) == 0 {
		return nil, domain.Validationf("userId, nftId & assets must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return nil, err
	}
	return e.engine.CreateAssets(ctx, req.Data.NFTID, ingest.Creator{
		Address: req.Data.AssetCreatorAddress,
		ID:      req.Data.AssetCreatorID,
		AppID:   req.AppID,
	}, req.Data.Assets)
}

func (e *executor) UpdateAsset(ctx context.Context, caller dto.Caller, assetID string, req dto.WriteRequest[map[string]any]) (*schema.Asset, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if req.UserID == "" || assetID == "" || req.Data == nil {
		return nil, domain.Validationf("userId, assetId & asset data must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return nil, err
	}
	return e.engine.UpdateAsset(ctx, assetID, req.Data, req.AppID)
}

func (e *executor) PresignUploadURLs(ctx context.Context, caller dto.Caller, req dto.WriteRequest[dto.PresignData]) ([]ingest.PresignedUpload, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if req.Data.UserID == "" || len(req.Data.Assets) == 0 {
		return nil, domain.Validationf("userId & assets (list of asset type and ids) must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.Data.UserID); err != nil {
		return nil, err
	}
	return e.engine.PresignUploadURLs(ctx, req.Data.UserID, req.Data.Assets)
}
