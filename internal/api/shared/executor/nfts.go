package executor

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

func (e *executor) GetNFT(ctx context.Context, nftID string) (schema.NFT, error) {
	return e.engine.GetNFT(ctx, nftID)
}

func (e *executor) GetNFTByDotID(ctx context.Context, dotID string) (schema.NFT, error) {
	return e.engine.GetNFTByDotID(ctx, dotID)
}

func (e *executor) GetNFTsByCollectionID(ctx context.Context, collectionID string) ([]schema.NFT, error) {
	return e.engine.GetNFTsByCollectionID(ctx, collectionID)
}

func (e *executor) GetNFTsByCollectionAddress(ctx context.Context, collectionAddress string) ([]schema.NFT, error) {
	return e.engine.GetNFTsByCollectionAddress(ctx, collectionAddress)
}

func (e *executor) GetNFTsByAddressAndTokenIDs(ctx context.Context, caller dto.Caller, params *dto.NFTIdentifiersQueryParams) ([]schema.NFT, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if err := requireQueryParams(params); err != nil {
		return nil, err
	}
	if params.NFTIdentifiers == nil {
		return nil, domain.Validationf(`"nftIdentifiers" parameter should be an array`)
	}
	return e.engine.GetNFTsByAddressAndTokenIDs(ctx, params.NFTIdentifiers)
}

func (e *executor) CountNFTsByCollectionID(ctx context.Context, caller dto.Caller, collectionID string) (int, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return 0, err
	}
	if collectionID == "" {
		return 0, domain.Validationf("collectionId must be presented")
	}
	return e.engine.CountNFTsByCollectionID(ctx, collectionID)
}

func (e *executor) CreateNFT(ctx context.Context, caller dto.Caller, req dto.WriteRequest[schema.NFTInput]) (schema.NFT, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return schema.NFT{}, err
	}
	if req.UserID == "" || req.Data.NFTID == "" {
		return schema.NFT{}, domain.Validationf("userId & nft data must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return schema.NFT{}, err
	}
	return e.engine.CreateNFT(ctx, req.Data, req.AppID)
}

func (e *executor) CreateAssetsAndSaveNFTs(ctx context.Context, caller dto.Caller, req dto.BatchRequest) (catalog.BatchResult, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return catalog.BatchResult{}, err
	}
	if req.UserID == "" || len(req.Data) == 0 {
		return catalog.BatchResult{}, domain.Validationf("userId & assets and nfts data must be present.")
	}
	if err := e.requireSubject(ctx, caller, req.UserID); err != nil {
		return catalog.BatchResult{}, err
	}
	return e.engine.CreateAssetsAndSaveNFTs(ctx, catalog.BatchRequest{
		Bundles:    req.Data,
		Signature:  req.Signature,
		MaxTokenID: req.MaxTokenID,
		AppID:      req.AppID,
	})
}

func (e *executor) IncrementScanCount(ctx context.Context, caller dto.Caller, nftID string, actor dto.Actor) error {
	if err := e.requireCounterWrite(ctx, caller, nftID, actor); err != nil {
		return err
	}
	return e.engine.IncrementScanCount(ctx, nftID)
}

func (e *executor) IncrementViewCount(ctx context.Context, caller dto.Caller, nftID string, actor dto.Actor) error {
	if err := e.requireCounterWrite(ctx, caller, nftID, actor); err != nil {
		return err
	}
	return e.engine.IncrementViewCount(ctx, nftID)
}

func (e *executor) requireCounterWrite(ctx context.Context, caller dto.Caller, nftID string, actor dto.Actor) error {
	if err := e.requireAPIKey(caller); err != nil {
		return err
	}
	if nftID == "" || actor.UserID == "" {
		return domain.Validationf("nftId & userId must be present.")
	}
	return e.requireSubject(ctx, caller, actor.UserID)
}

func (e *executor) LikeNFT(ctx context.Context, caller dto.Caller, nftID, userID string) error {
	if err := e.requireAPIKey(caller); err != nil {
		return err
	}
	if nftID == "" || userID == "" {
		return domain.Validationf("nftId & userId must be present.")
	}
	if err := e.requireSubject(ctx, caller, userID); err != nil {
		return err
	}
	return e.engine.LikeNFT(ctx, nftID, userID)
}

func (e *executor) UnlikeNFT(ctx context.Context, caller dto.Caller, nftID, userID string) error {
	if err := e.requireAPIKey(caller); err != nil {
		return err
	}
	if nftID == "" || userID == "" {
		return domain.Validationf("nftId & userId must be present.")
	}
	if err := e.requireSubject(ctx, caller, userID); err != nil {
		return err
	}
	return e.engine.UnlikeNFT(ctx, nftID, userID)
}

func (e *executor) NFTRelation(ctx context.Context, caller dto.Caller, nftID, userID string) (catalog.Relation, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return catalog.Relation{}, err
	}
	return e.engine.NFTRelation(ctx, nftID, userID)
}

func (e *executor) LikedNFTs(ctx context.Context, caller dto.Caller, userID, chain string) ([]schema.NFT, error) {
	if err := e.requireAPIKey(caller); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.Validationf("userId must be present.")
	}
	return e.engine.LikedNFTs(ctx, userID, chain)
}
