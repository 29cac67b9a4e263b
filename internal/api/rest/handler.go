package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/api/shared/executor"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// Handler defines the REST API handlers. Each one answers with the
// {success, data, message} envelope.
type Handler interface {
	// GET /api/v1/collections?API_KEY=<key>&QUERY_PARAMS={"category","creatorAddress","chain","isCreatedByPlatform","filterTestOverride","latestOnly","userId"}
	QueryCollections(c *gin.Context)
	// GET /api/v1/collection-addresses?API_KEY=<key>&QUERY_PARAMS={"addresses":[...]}
	QueryCollectionsByAddresses(c *gin.Context)
	// GET /api/v1/collections/:collectionId
	GetCollection(c *gin.Context)
	// GET /api/v1/collection-addresses/:address
	GetCollectionByAddress(c *gin.Context)
	// POST /api/v1/collections?API_KEY=<key>
	CreateCollection(c *gin.Context)
	// PUT /api/v1/collections/:collectionId?API_KEY=<key>
	UpdateCollection(c *gin.Context)
	// GET /api/v1/search/collections?API_KEY=<key>&QUERY_PARAMS={"keyword","chain","category","filterTestOverride"}
	SearchCollections(c *gin.Context)

	LikeCollection(c *gin.Context)
	UnlikeCollection(c *gin.Context)
	CollectionRelation(c *gin.Context)
	// GET /api/v1/users/:userId/liked-collections?API_KEY=<key>&chain=<chain>
	LikedCollections(c *gin.Context)

	GetNFT(c *gin.Context)
	GetNFTByDotID(c *gin.Context)
	GetNFTsByCollectionID(c *gin.Context)
	GetNFTsByCollectionAddress(c *gin.Context)
	// GET /api/v1/nfts?API_KEY=<key>&QUERY_PARAMS={"nftIdentifiers":[{"collectionAddress","tokenId"}]}
	GetNFTsByAddressAndTokenIDs(c *gin.Context)
	CountNFTsByCollectionID(c *gin.Context)
	CreateNFT(c *gin.Context)
	// POST /api/v1/nft-batches?API_KEY=<key>
	CreateAssetsAndSaveNFTs(c *gin.Context)
	IncrementScanCount(c *gin.Context)
	IncrementViewCount(c *gin.Context)
	LikeNFT(c *gin.Context)
	UnlikeNFT(c *gin.Context)
	NFTRelation(c *gin.Context)
	// GET /api/v1/users/:userId/liked-nfts?API_KEY=<key>&chain=<chain>
	LikedNFTs(c *gin.Context)

	// GET /api/v1/nfts/:nftId/assets[?QUERY_PARAMS={"userId","creatorAddress","walletAddress"}]
	GetAssetsByNFTID(c *gin.Context)
	CreateAssets(c *gin.Context)
	UpdateAsset(c *gin.Context)
	PresignUploadURLs(c *gin.Context)

	SaveWallet(c *gin.Context)
	GetWalletsByUserID(c *gin.Context)
	GetWalletsByUserIDAndChain(c *gin.Context)
	GetRecentWallet(c *gin.Context)
	GetUserByWallet(c *gin.Context)

	GetUser(c *gin.Context)
	GetUserByTag(c *gin.Context)
	SaveUser(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) QueryCollections(c *gin.Context) {
	params, err := parseQueryParams[dto.CollectionQueryParams](c)
	if err != nil {
		respondFailure(c, "queryCollections", err)
		return
	}
	data, err := h.executor.QueryCollections(c.Request.Context(), callerFrom(c), params)
	respond(c, "queryCollections", data, err)
}

func (h *handler) QueryCollectionsByAddresses(c *gin.Context) {
	params, err := parseQueryParams[dto.AddressesQueryParams](c)
	if err != nil {
		respondFailure(c, "queryCollectionsByAddresses", err)
		return
	}
	data, err := h.executor.QueryCollectionsByAddresses(c.Request.Context(), callerFrom(c), params)
	respond(c, "queryCollectionsByAddresses", data, err)
}

func (h *handler) GetCollection(c *gin.Context) {
	data, err := h.executor.GetCollection(c.Request.Context(), c.Param("collectionId"))
	respond(c, "queryCollection", data, err)
}

func (h *handler) GetCollectionByAddress(c *gin.Context) {
	data, err := h.executor.GetCollectionByAddress(c.Request.Context(), c.Param("address"))
	respond(c, "queryCollectionByAddress", data, err)
}

func (h *handler) CreateCollection(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[schema.CollectionInput]](c)
	if err != nil {
		respondFailure(c, "createCollection", err)
		return
	}
	data, err := h.executor.CreateCollection(c.Request.Context(), callerFrom(c), body)
	respond(c, "createCollection", data, err)
}

func (h *handler) UpdateCollection(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[schema.CollectionInput]](c)
	if err != nil {
		respondFailure(c, "updateCollection", err)
		return
	}
	data, err := h.executor.UpdateCollection(c.Request.Context(), callerFrom(c), c.Param("collectionId"), body)
	respond(c, "updateCollection", data, err)
}

func (h *handler) SearchCollections(c *gin.Context) {
	params, err := parseQueryParams[dto.SearchQueryParams](c)
	if err != nil {
		respondFailure(c, "searchCollections", err)
		return
	}
	data, err := h.executor.SearchCollections(c.Request.Context(), callerFrom(c), params)
	respond(c, "searchCollections", data, err)
}

func (h *handler) LikeCollection(c *gin.Context) {
	err := h.executor.LikeCollection(c.Request.Context(), callerFrom(c), c.Param("collectionId"), c.Param("userId"))
	respond(c, "collectionLikeAction", nil, err)
}

func (h *handler) UnlikeCollection(c *gin.Context) {
	err := h.executor.UnlikeCollection(c.Request.Context(), callerFrom(c), c.Param("collectionId"), c.Param("userId"))
	respond(c, "collectionUnlikeAction", nil, err)
}

func (h *handler) CollectionRelation(c *gin.Context) {
	data, err := h.executor.CollectionRelation(c.Request.Context(), callerFrom(c), c.Param("collectionId"), c.Param("userId"))
	respond(c, "queryCollectionUserRelation", data, err)
}

func (h *handler) LikedCollections(c *gin.Context) {
	data, err := h.executor.LikedCollections(c.Request.Context(), callerFrom(c), c.Param("userId"), c.Query("chain"))
	respond(c, "queryUserLikedCollections", data, err)
}

func (h *handler) GetNFT(c *gin.Context) {
	data, err := h.executor.GetNFT(c.Request.Context(), c.Param("nftId"))
	respond(c, "queryNFT", data, err)
}

func (h *handler) GetNFTByDotID(c *gin.Context) {
	data, err := h.executor.GetNFTByDotID(c.Request.Context(), c.Param("dotId"))
	respond(c, "queryNFTbyDotId", data, err)
}

func (h *handler) GetNFTsByCollectionID(c *gin.Context) {
	data, err := h.executor.GetNFTsByCollectionID(c.Request.Context(), c.Param("collectionId"))
	respond(c, "queryNFTsbyCollectionId", data, err)
}

func (h *handler) GetNFTsByCollectionAddress(c *gin.Context) {
	data, err := h.executor.GetNFTsByCollectionAddress(c.Request.Context(), c.Param("address"))
	respond(c, "queryNFTsbyCollectionAddress", data, err)
}

func (h *handler) GetNFTsByAddressAndTokenIDs(c *gin.Context) {
	params, err := parseQueryParams[dto.NFTIdentifiersQueryParams](c)
	if err != nil {
		respondFailure(c, "queryNFTsByCollectionAddressesAndTokenIds", err)
		return
	}
	data, err := h.executor.GetNFTsByAddressAndTokenIDs(c.Request.Context(), callerFrom(c), params)
	respond(c, "queryNFTsByCollectionAddressesAndTokenIds", data, err)
}

func (h *handler) CountNFTsByCollectionID(c *gin.Context) {
	data, err := h.executor.CountNFTsByCollectionID(c.Request.Context(), callerFrom(c), c.Param("collectionId"))
	respond(c, "queryNFTCountByCollectionId", data, err)
}

func (h *handler) CreateNFT(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[schema.NFTInput]](c)
	if err != nil {
		respondFailure(c, "createNFT", err)
		return
	}
	data, err := h.executor.CreateNFT(c.Request.Context(), callerFrom(c), body)
	respond(c, "createNFT", data, err)
}

// CreateAssetsAndSaveNFTs reports the per-bundle outcomes even when the batch
// stopped early, so callers can tell which bundles were committed
func (h *handler) CreateAssetsAndSaveNFTs(c *gin.Context) {
	body, err := bindBody[dto.BatchRequest](c)
	if err != nil {
		respondFailure(c, "createAssetsAndSaveNfts", err)
		return
	}
	result, err := h.executor.CreateAssetsAndSaveNFTs(c.Request.Context(), callerFrom(c), body)
	if err != nil && len(result.Bundles) > 0 {
		respondPartial(c, "createAssetsAndSaveNfts", result, err)
		return
	}
	respond(c, "createAssetsAndSaveNfts", result, err)
}

func (h *handler) IncrementScanCount(c *gin.Context) {
	body, err := bindBody[dto.Actor](c)
	if err != nil {
		respondFailure(c, "incrementNFTScanCount", err)
		return
	}
	err = h.executor.IncrementScanCount(c.Request.Context(), callerFrom(c), c.Param("nftId"), body)
	respond(c, "incrementNFTScanCount", nil, err)
}

func (h *handler) IncrementViewCount(c *gin.Context) {
	body, err := bindBody[dto.Actor](c)
	if err != nil {
		respondFailure(c, "incrementNFTViewCount", err)
		return
	}
	err = h.executor.IncrementViewCount(c.Request.Context(), callerFrom(c), c.Param("nftId"), body)
	respond(c, "incrementNFTViewCount", nil, err)
}

func (h *handler) LikeNFT(c *gin.Context) {
	err := h.executor.LikeNFT(c.Request.Context(), callerFrom(c), c.Param("nftId"), c.Param("userId"))
	respond(c, "NFTLikeAction", nil, err)
}

func (h *handler) UnlikeNFT(c *gin.Context) {
	err := h.executor.UnlikeNFT(c.Request.Context(), callerFrom(c), c.Param("nftId"), c.Param("userId"))
	respond(c, "NFTUnlikeAction", nil, err)
}

func (h *handler) NFTRelation(c *gin.Context) {
	data, err := h.executor.NFTRelation(c.Request.Context(), callerFrom(c), c.Param("nftId"), c.Param("userId"))
	respond(c, "queryNFTUserRelation", data, err)
}

func (h *handler) LikedNFTs(c *gin.Context) {
	data, err := h.executor.LikedNFTs(c.Request.Context(), callerFrom(c), c.Param("userId"), c.Query("chain"))
	respond(c, "queryUserLikedNFTs", data, err)
}

func (h *handler) GetAssetsByNFTID(c *gin.Context) {
	params, err := parseQueryParams[dto.AssetsQueryParams](c)
	if err != nil {
		respondFailure(c, "queryAssetsByNFTId", err)
		return
	}
	data, err := h.executor.GetAssetsByNFTID(c.Request.Context(), callerFrom(c), c.Param("nftId"), params)
	respond(c, "queryAssetsByNFTId", data, err)
}

func (h *handler) CreateAssets(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[dto.CreateAssetsData]](c)
	if err != nil {
		respondFailure(c, "createAssets", err)
		return
	}
	data, err := h.executor.CreateAssets(c.Request.Context(), callerFrom(c), body)
	respond(c, "createAssets", data, err)
}

func (h *handler) UpdateAsset(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[map[string]any]](c)
	if err != nil {
		respondFailure(c, "updateAsset", err)
		return
	}
	data, err := h.executor.UpdateAsset(c.Request.Context(), callerFrom(c), c.Param("assetId"), body)
	respond(c, "updateAsset", data, err)
}

func (h *handler) PresignUploadURLs(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[dto.PresignData]](c)
	if err != nil {
		respondFailure(c, "createPreSignedURL", err)
		return
	}
	data, err := h.executor.PresignUploadURLs(c.Request.Context(), callerFrom(c), body)
	respond(c, "createPreSignedURL", data, err)
}

func (h *handler) SaveWallet(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[dto.SaveWalletData]](c)
	if err != nil {
		respondFailure(c, "saveWallet", err)
		return
	}
	data, err := h.executor.SaveWallet(c.Request.Context(), callerFrom(c), body)
	respond(c, "saveWallet", data, err)
}

func (h *handler) GetWalletsByUserID(c *gin.Context) {
	data, err := h.executor.GetWalletsByUserID(c.Request.Context(), c.Param("userId"))
	respond(c, "queryWalletsByUserId", data, err)
}

func (h *handler) GetWalletsByUserIDAndChain(c *gin.Context) {
	data, err := h.executor.GetWalletsByUserIDAndChain(c.Request.Context(), c.Param("userId"), c.Param("chain"))
	respond(c, "queryWalletsByUserIdAndChain", data, err)
}

func (h *handler) GetRecentWallet(c *gin.Context) {
	data, err := h.executor.GetRecentWallet(c.Request.Context(), c.Param("userId"), c.Param("chain"))
	respond(c, "queryRecentWalletByUserIdAndChain", data, err)
}

func (h *handler) GetUserByWallet(c *gin.Context) {
	data, err := h.executor.GetUserByWallet(c.Request.Context(), c.Param("address"), c.Param("chain"))
	respond(c, "queryUserByWallet", data, err)
}

func (h *handler) GetUser(c *gin.Context) {
	data, err := h.executor.GetUser(c.Request.Context(), c.Param("userId"))
	respond(c, "queryUser", data, err)
}

func (h *handler) GetUserByTag(c *gin.Context) {
	data, err := h.executor.GetUserByTag(c.Request.Context(), c.Param("userTag"))
	respond(c, "queryUserByTag", data, err)
}

func (h *handler) SaveUser(c *gin.Context) {
	body, err := bindBody[dto.WriteRequest[schema.UserInput]](c)
	if err != nil {
		respondFailure(c, "saveUser", err)
		return
	}
	data, err := h.executor.SaveUser(c.Request.Context(), callerFrom(c), body)
	respond(c, "saveUser", data, err)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-catalog",
	})
}
