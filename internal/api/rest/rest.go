package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Collections
		v1.GET("/collections", handler.QueryCollections)
		v1.POST("/collections", handler.CreateCollection)
		v1.GET("/collections/:collectionId", handler.GetCollection)
		v1.PUT("/collections/:collectionId", handler.UpdateCollection)
		v1.GET("/collections/:collectionId/nfts", handler.GetNFTsByCollectionID)
		v1.GET("/collections/:collectionId/nfts/count", handler.CountNFTsByCollectionID)
		v1.GET("/collections/:collectionId/users/:userId/relation", handler.CollectionRelation)
		v1.POST("/collections/:collectionId/users/:userId/like", handler.LikeCollection)
		v1.DELETE("/collections/:collectionId/users/:userId/like", handler.UnlikeCollection)
		v1.GET("/collection-addresses", handler.QueryCollectionsByAddresses)
		v1.GET("/collection-addresses/:address", handler.GetCollectionByAddress)
		v1.GET("/collection-addresses/:address/nfts", handler.GetNFTsByCollectionAddress)
		v1.GET("/search/collections", handler.SearchCollections)

		// NFTs
		v1.GET("/nfts", handler.GetNFTsByAddressAndTokenIDs)
		v1.POST("/nfts", handler.CreateNFT)
		v1.POST("/nft-batches", handler.CreateAssetsAndSaveNFTs)
		v1.GET("/nfts/:nftId", handler.GetNFT)
		v1.POST("/nfts/:nftId/scan", handler.IncrementScanCount)
		v1.POST("/nfts/:nftId/view", handler.IncrementViewCount)
		v1.GET("/nfts/:nftId/assets", handler.GetAssetsByNFTID)
		v1.GET("/nfts/:nftId/users/:userId/relation", handler.NFTRelation)
		v1.POST("/nfts/:nftId/users/:userId/like", handler.LikeNFT)
		v1.DELETE("/nfts/:nftId/users/:userId/like", handler.UnlikeNFT)
		v1.GET("/dots/:dotId", handler.GetNFTByDotID)

		// Assets
		v1.POST("/assets", handler.CreateAssets)
		v1.PUT("/assets/:assetId", handler.UpdateAsset)
		v1.POST("/assets/presigned-urls", handler.PresignUploadURLs)

		// Wallets
		v1.POST("/wallets", handler.SaveWallet)
		v1.GET("/wallets/:address/:chain/user", handler.GetUserByWallet)

		// Users
		v1.POST("/users", handler.SaveUser)
		v1.PUT("/users", handler.SaveUser)
		v1.GET("/users/:userId", handler.GetUser)
		v1.GET("/users/:userId/wallets", handler.GetWalletsByUserID)
		v1.GET("/users/:userId/wallets/:chain", handler.GetWalletsByUserIDAndChain)
		v1.GET("/users/:userId/wallets/:chain/recent", handler.GetRecentWallet)
		v1.GET("/users/:userId/liked-collections", handler.LikedCollections)
		v1.GET("/users/:userId/liked-nfts", handler.LikedNFTs)
		v1.GET("/user-tags/:userTag", handler.GetUserByTag)
	}
}
