package dto

import (
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/ingest"
)

// Caller carries the credentials presented with a request
type Caller struct {
	// APIKey is read from the API_KEY query parameter
	APIKey string
	// AccessToken is the bearer token of the Authorization header
	AccessToken string
}

// Actor identifies who performs a write and from which app
type Actor struct {
	UserID string `json:"userId"`
	AppID  string `json:"appId"`
	Device string `json:"device"`
}

// WriteRequest is the body of every mutating request: the actor plus the
// operation payload under "data"
type WriteRequest[T any] struct {
	Actor
	Data T `json:"data"`
}

// CollectionQueryParams is the QUERY_PARAMS document of a collection listing
type CollectionQueryParams struct {
	Category            string `json:"category"`
	CreatorAddress      string `json:"creatorAddress"`
	Chain               string `json:"chain"`
	IsCreatedByPlatform bool   `json:"isCreatedByPlatform"`
	FilterTestOverride  bool   `json:"filterTestOverride"`
	LatestOnly          bool   `json:"latestOnly"`
	UserID              string `json:"userId"`
}

type AddressesQueryParams struct {
	Addresses []string `json:"addresses"`
}

type NFTIdentifiersQueryParams struct {
	NFTIdentifiers []catalog.NFTIdentifier `json:"nftIdentifiers"`
}

// AssetsQueryParams asks for the assets of an NFT as seen by a signed-in user
type AssetsQueryParams struct {
	UserID         string  `json:"userId"`
	CreatorAddress *string `json:"creatorAddress"`
	WalletAddress  *string `json:"walletAddress"`
}

type SearchQueryParams struct {
	Keyword            string `json:"keyword"`
	Chain              string `json:"chain"`
	Category           string `json:"category"`
	FilterTestOverride bool   `json:"filterTestOverride"`
}

type CreateAssetsData struct {
	NFTID               string             `json:"nftId"`
	AssetCreatorAddress string             `json:"assetCreatorAddress"`
	AssetCreatorID      string             `json:"assetCreatorId"`
	Assets              []ingest.AssetInfo `json:"assets"`
}

type PresignData struct {
	UserID string                 `json:"userId"`
	Assets []ingest.UploadRequest `json:"assets"`
}

type SaveWalletData struct {
	Address   string `json:"address"`
	Chain     string `json:"chain"`
	Signature string `json:"signature"`
	ChainID   int64  `json:"chainId"`
}

// BatchRequest creates NFTs together with their assets
type BatchRequest struct {
	Actor
	Signature  string           `json:"signature"`
	MaxTokenID *int64           `json:"maxTokenId"`
	Data       []catalog.Bundle `json:"data"`
}
