package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

func TestCollectionLikes(t *testing.T) {
	s := setupCatalogTest(t)
	ctx := context.Background()
	s.putCollections(t,
		collection("c1", nil),
		collection("c2", func(c *schema.Collection) { c.Chain = "tezos" }),
	)

	require.NoError(t, s.engine.LikeCollection(ctx, "c1", "user-1"))
	require.NoError(t, s.engine.LikeCollection(ctx, "c1", "user-1"))
	require.NoError(t, s.engine.LikeCollection(ctx, "c2", "user-1"))
	require.NoError(t, s.engine.LikeCollection(ctx, "deleted", "user-1"))

	rels, err := s.store.CollectionLikes.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, rels, 3, "liking twice keeps a single row")

	rel, err := s.engine.CollectionRelation(ctx, "c1", "user-1")
	require.NoError(t, err)
	assert.True(t, rel.IsLiked)

	liked, err := s.engine.LikedCollections(ctx, "user-1", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, collectionIDs(liked))

	liked, err = s.engine.LikedCollections(ctx, "user-1", "tezos")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, collectionIDs(liked))

	require.NoError(t, s.engine.UnlikeCollection(ctx, "c1", "user-1"))
	require.NoError(t, s.engine.UnlikeCollection(ctx, "c1", "user-1"), "unliking twice is not an error")

	rel, err = s.engine.CollectionRelation(ctx, "c1", "user-1")
	require.NoError(t, err)
	assert.False(t, rel.IsLiked)

	assert.ErrorIs(t, s.engine.LikeCollection(ctx, "", "user-1"), domain.ErrValidation)
}

func TestNFTLikes(t *testing.T) {
	s := setupCatalogTest(t)
	ctx := context.Background()
	s.putNFTs(t,
		nft("n1", 1, nil),
		nft("n2", 2, func(n *schema.NFT) { n.Chain = "tezos" }),
	)

	require.NoError(t, s.engine.LikeNFT(ctx, "n1", "user-1"))
	require.NoError(t, s.engine.LikeNFT(ctx, "n2", "user-1"))
	require.NoError(t, s.engine.LikeNFT(ctx, "n2", "user-2"))

	liked, err := s.engine.LikedNFTs(ctx, "user-1", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, nftIDs(liked))

	rel, err := s.engine.NFTRelation(ctx, "n1", "user-2")
	require.NoError(t, err)
	assert.False(t, rel.IsLiked)

	require.NoError(t, s.engine.UnlikeNFT(ctx, "n1", "user-2"))
	require.NoError(t, s.engine.UnlikeNFT(ctx, "n2", "user-2"))

	rel, err = s.engine.NFTRelation(ctx, "n2", "user-2")
	require.NoError(t, err)
	assert.False(t, rel.IsLiked)

	_, err = s.engine.NFTRelation(ctx, "n1", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
