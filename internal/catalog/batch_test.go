package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/blob"
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/uri"
)

func bundle(nftID string, tokenID int64, assetURL string) catalog.Bundle {
	return catalog.Bundle{
		NFT: schema.NFTInput{
			NFTID:          nftID,
			TokenID:        tokenID,
			CollectionID:   "col-1",
			CreatorAddress: "0xcreator",
			Name:           nftID,
		},
		Assets: []ingest.AssetInfo{
			{AssetID: "asset-" + nftID, AssetType: "image", AssetURL: assetURL, Visibility: true},
		},
		AssetCreatorAddress: "0xcreator",
	}
}

func TestCreateAssetsAndSaveNFTs_Validation(t *testing.T) {
	s := setupCatalogTest(t)
	ctx := context.Background()
	maxTokenID := int64(100)

	tests := []struct {
		name string
		req  catalog.BatchRequest
	}{
		{"no bundles", catalog.BatchRequest{}},
		{"signature without maxTokenId", catalog.BatchRequest{
			Bundles:   []catalog.Bundle{bundle("n1", 1, "https://example.com/a")},
			Signature: "0xsig",
		}},
		{"maxTokenId without signature", catalog.BatchRequest{
			Bundles:    []catalog.Bundle{bundle("n1", 1, "https://example.com/a")},
			MaxTokenID: &maxTokenID,
		}},
		{"asset info without url", catalog.BatchRequest{
			Bundles: []catalog.Bundle{bundle("n1", 1, "")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.engine.CreateAssetsAndSaveNFTs(ctx, tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	n, err := s.store.NFTs.GetLatest(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, n.IsZero(), "nothing is written when validation fails")
}

func TestCreateAssetsAndSaveNFTs_StopsAtFirstFailure(t *testing.T) {
	s := setupCatalogTest(t)
	ctx := context.Background()
	maxTokenID := int64(500)

	s.blobs.EXPECT().
		Put(gomock.Any(), "metadata", "0xcreator/col-1/1.json", "application/json", gomock.Any()).
		Return(nil)
	s.blobs.EXPECT().
		Put(gomock.Any(), "metadata", "0xcreator/col-1/2.json", "application/json", gomock.Any()).
		Return(nil)
	s.blobs.EXPECT().
		Get(gomock.Any(), uri.S3Locator{Bucket: "art", Key: "one.png"}).
		Return(&blob.Object{Body: []byte("one"), ContentType: "image/png"}, nil)
	s.blobs.EXPECT().
		Get(gomock.Any(), uri.S3Locator{Bucket: "art", Key: "two.png"}).
		Return(nil, errors.New("AccessDenied"))
	s.pinner.EXPECT().
		Pin(gomock.Any(), "asset-n1", "image/png", gomock.Any()).
		Return("QmOne", nil)

	req := catalog.BatchRequest{
		Bundles: []catalog.Bundle{
			bundle("n1", 1, "https://s3.amazonaws.com/art/one.png"),
			bundle("n2", 2, "https://s3.amazonaws.com/art/two.png"),
			bundle("n3", 3, "https://s3.amazonaws.com/art/three.png"),
		},
		Signature:  "0xsig",
		MaxTokenID: &maxTokenID,
		AppID:      "app-1",
	}

	result, err := s.engine.CreateAssetsAndSaveNFTs(ctx, req)
	require.Error(t, err)
	assert.ErrorContains(t, err, "AccessDenied")

	require.Len(t, result.Bundles, 3)
	assert.Equal(t, catalog.BundleCommitted, result.Bundles[0].Status)
	assert.Equal(t, catalog.BundleFailed, result.Bundles[1].Status)
	assert.Contains(t, result.Bundles[1].Error, "AccessDenied")
	assert.Equal(t, catalog.BundleSkipped, result.Bundles[2].Status)
	assert.Equal(t, 1, result.Committed())

	require.Len(t, result.Bundles[0].Assets, 1)
	assert.Equal(t, "QmOne", result.Bundles[0].Assets[0].IPFSHash)

	asset, err := s.store.Assets.Get(ctx, "asset-n1", nil)
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, "n1", asset.NFTID)
	assert.Equal(t, "app-1", asset.AppID)

	first, err := s.store.NFTs.GetLatest(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "0xsig", first.Signature)
	require.NotNil(t, first.MaxTokenID)
	assert.Equal(t, int64(500), *first.MaxTokenID)

	second, err := s.store.NFTs.GetLatest(ctx, "n2")
	require.NoError(t, err)
	assert.False(t, second.IsZero(), "the failing bundle's NFT is not rolled back")

	third, err := s.store.NFTs.GetLatest(ctx, "n3")
	require.NoError(t, err)
	assert.True(t, third.IsZero())
}

func TestCreateAssetsAndSaveNFTs_SkipMetadataUpload(t *testing.T) {
	s := setupCatalogTest(t)
	ctx := context.Background()

	b := bundle("n1", 1, "https://example.com/a.png")
	b.SkipMetadataUpload = true

	result, err := s.engine.CreateAssetsAndSaveNFTs(ctx, catalog.BatchRequest{Bundles: []catalog.Bundle{b}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Committed())

	n, err := s.store.NFTs.GetLatest(ctx, "n1")
	require.NoError(t, err)
	assert.Empty(t, n.Signature)
	assert.Nil(t, n.MaxTokenID)
}
