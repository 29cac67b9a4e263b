package executor

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/auth"
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// Executor gates every catalog operation behind request validation and the
// caller's credentials. Nothing reaches the catalog before those checks pass.
type Executor interface {
	QueryCollections(ctx context.Context, caller dto.Caller, params *dto.CollectionQueryParams) ([]schema.Collection, error)
	QueryCollectionsByAddresses(ctx context.Context, caller dto.Caller, params *dto.AddressesQueryParams) ([]schema.Collection, error)
	GetCollection(ctx context.Context, collectionID string) (schema.Collection, error)
	GetCollectionByAddress(ctx context.Context, address string) (schema.Collection, error)
	CreateCollection(ctx context.Context, caller dto.Caller, req dto.WriteRequest[schema.CollectionInput]) (schema.Collection, error)
	UpdateCollection(ctx context.Context, caller dto.Caller, collectionID string, req dto.WriteRequest[schema.CollectionInput]) (schema.Collection, error)
	SearchCollections(ctx context.Context, caller dto.Caller, params *dto.SearchQueryParams) ([]schema.Collection, error)

	LikeCollection(ctx context.Context, caller dto.Caller, collectionID, userID string) error
	UnlikeCollection(ctx context.Context, caller dto.Caller, collectionID, userID string) error
	CollectionRelation(ctx context.Context, caller dto.Caller, collectionID, userID string) (catalog.Relation, error)
	LikedCollections(ctx context.Context, caller dto.Caller, userID, chain string) ([]schema.Collection, error)

	GetNFT(ctx context.Context, nftID string) (schema.NFT, error)
	GetNFTByDotID(ctx context.Context, dotID string) (schema.NFT, error)
	GetNFTsByCollectionID(ctx context.Context, collectionID string) ([]schema.NFT, error)
	GetNFTsByCollectionAddress(ctx context.Context, collectionAddress string) ([]schema.NFT, error)
	GetNFTsByAddressAndTokenIDs(ctx context.Context, caller dto.Caller, params *dto.NFTIdentifiersQueryParams) ([]schema.NFT, error)
	CountNFTsByCollectionID(ctx context.Context, caller dto.Caller, collectionID string) (int, error)
	CreateNFT(ctx context.Context, caller dto.Caller, req dto.WriteRequest[schema.NFTInput]) (schema.NFT, error)
	CreateAssetsAndSaveNFTs(ctx context.Context, caller dto.Caller, req dto.BatchRequest) (catalog.BatchResult, error)
	IncrementScanCount(ctx context.Context, caller dto.Caller, nftID string, actor dto.Actor) error
	IncrementViewCount(ctx context.Context, caller dto.Caller, nftID string, actor dto.Actor) error

	LikeNFT(ctx context.Context, caller dto.Caller, nftID, userID string) error
	UnlikeNFT(ctx context.Context, caller dto.Caller, nftID, userID string) error
	NFTRelation(ctx context.Context, caller dto.Caller, nftID, userID string) (catalog.Relation, error)
	LikedNFTs(ctx context.Context, caller dto.Caller, userID, chain string) ([]schema.NFT, error)

	GetAssetsByNFTID(ctx context.Context, caller dto.Caller, nftID string, params *dto.AssetsQueryParams) ([]schema.Asset, error)
	CreateAssets(ctx context.Context, caller dto.Caller, req dto.WriteRequest[dto.CreateAssetsData]) ([]schema.Asset, error)
	UpdateAsset(ctx context.Context, caller dto.Caller, assetID string, req dto.WriteRequest[map[string]any]) (*schema.Asset, error)
	PresignUploadURLs(ctx context.Context, caller dto.Caller, req dto.WriteRequest[dto.PresignData]) ([]ingest.PresignedUpload, error)

	SaveWallet(ctx context.Context, caller dto.Caller, req dto.WriteRequest[dto.SaveWalletData]) (schema.Wallet, error)
	GetWalletsByUserID(ctx context.Context, userID string) ([]schema.Wallet, error)
	GetWalletsByUserIDAndChain(ctx context.Context, userID, chain string) ([]schema.Wallet, error)
	GetRecentWallet(ctx context.Context, userID, chain string) (string, error)
	GetUserByWallet(ctx context.Context, address, chain string) (schema.User, error)

	GetUser(ctx context.Context, userID string) (schema.User, error)
	GetUserByTag(ctx context.Context, userTag string) (schema.User, error)
	SaveUser(ctx context.Context, caller dto.Caller, req dto.WriteRequest[schema.UserInput]) (schema.User, error)
}

type executor struct {
	engine   *catalog.Engine
	apiKeys  auth.APIKeys
	verifier auth.Verifier
	wallets  auth.WalletVerifier
}

func NewExecutor(engine *catalog.Engine, apiKeys auth.APIKeys, verifier auth.Verifier, wallets auth.WalletVerifier) Executor {
	return &executor{
		engine:   engine,
		apiKeys:  apiKeys,
		verifier: verifier,
		wallets:  wallets,
	}
}

func (e *executor) requireAPIKey(caller dto.Caller) error {
	if !e.apiKeys.Valid(caller.APIKey) {
		return domain.Unauthorizedf("Invalid API Key.")
	}
	return nil
}

// requireSubject checks that the caller's access token was issued to userID
func (e *executor) requireSubject(ctx context.Context, caller dto.Caller, userID string) error {
	if caller.AccessToken == "" {
		return domain.Unauthorizedf("Access token should be provided.")
	}
	if !e.verifier.Verify(ctx, caller.AccessToken, userID) {
		logger.DebugCtx(ctx, "access token rejected", zap.String("userId", userID))
		return domain.Unauthorizedf("Invalid JWT Token.")
	}
	return nil
}

func requireQueryParams[T any](params *T) error {
	if params == nil {
		return domain.Validationf("QUERY_PARAMS must be provided.")
	}
	return nil
}
