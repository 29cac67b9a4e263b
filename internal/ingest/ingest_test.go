package ingest_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/blob"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/mocks"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/uri"
	"github.com/feral-file/ff-catalog/internal/worker"
)

type testIngestSetup struct {
	ctrl     *gomock.Controller
	blobs    *mocks.MockBlobStore
	pinner   *mocks.MockPinner
	assets   store.Table[schema.Asset]
	pipeline ingest.Ingester
}

func setupIngestTest(t *testing.T) *testIngestSetup {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	pinner := mocks.NewMockPinner(ctrl)
	assets := store.NewMemoryTable[schema.Asset](store.AssetsSpec("assets"))
	pool := worker.NewPool(4)
	t.Cleanup(pool.StopAndWait)

	return &testIngestSetup{
		ctrl:   ctrl,
		blobs:  blobs,
		pinner: pinner,
		assets: assets,
		pipeline: ingest.NewPipeline(ingest.Config{
			UploadBucket:   "uploads",
			MetadataBucket: "metadata",
			PresignTTL:     10 * time.Minute,
		}, assets, blobs, pinner, pool),
	}
}

var creator = ingest.Creator{Address: "0xcreator", ID: "user-1", AppID: "app-1"}

func TestIngest_PinsS3Objects(t *testing.T) {
	s := setupIngestTest(t)
	ctx := context.Background()

	s.blobs.EXPECT().
		Get(gomock.Any(), uri.S3Locator{Bucket: "art", Key: "u/img.png", Region: "eu-west-1"}).
		Return(&blob.Object{Body: []byte("png"), ContentType: "image/png"}, nil)
	s.pinner.EXPECT().
		Pin(gomock.Any(), "asset-1", "image/png", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, r io.Reader) (string, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "png", string(data))
			return "QmPinned", nil
		})

	asset, err := s.pipeline.Ingest(ctx, ingest.AssetInfo{
		AssetID:    "asset-1",
		AssetType:  "image",
		AssetURL:   "https://art.s3.eu-west-1.amazonaws.com/u/img.png",
		Visibility: true,
	}, "nft-1", creator)
	require.NoError(t, err)
	assert.Equal(t, "QmPinned", asset.IPFSHash)
	assert.Empty(t, asset.IPFSURL)
	assert.Equal(t, "nft-1", asset.NFTID)
	assert.Equal(t, "0xcreator", asset.CreatorAddress)
	assert.Equal(t, "user-1", asset.CreatorID)
	assert.Equal(t, "app-1", asset.AppID)

	stored, err := s.assets.Get(ctx, "asset-1", nil)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "QmPinned", stored.IPFSHash)
}

func TestIngest_SniffsMissingContentType(t *testing.T) {
	s := setupIngestTest(t)

	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}
	s.blobs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&blob.Object{Body: png}, nil)
	s.pinner.EXPECT().Pin(gomock.Any(), "asset-2", "image/png", gomock.Any()).Return("QmSniffed", nil)

	asset, err := s.pipeline.Ingest(context.Background(), ingest.AssetInfo{
		AssetID:   "asset-2",
		AssetType: "image",
		AssetURL:  "https://s3.amazonaws.com/art/x",
	}, "nft-1", creator)
	require.NoError(t, err)
	assert.Equal(t, "QmSniffed", asset.IPFSHash)
}

func TestIngest_BestEffortPinning(t *testing.T) {
	s := setupIngestTest(t)

	// no blob or pinner calls are expected
	asset, err := s.pipeline.Ingest(context.Background(), ingest.AssetInfo{
		AssetID:   "asset-3",
		AssetType: "video",
		AssetURL:  "https://cdn.example.com/video.mp4",
	}, "nft-1", creator)
	require.NoError(t, err)
	assert.Empty(t, asset.IPFSHash)
	assert.Empty(t, asset.IPFSURL)

	stored, err := s.assets.Get(context.Background(), "asset-3", nil)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestIngest_FetchErrorIsFatal(t *testing.T) {
	s := setupIngestTest(t)

	s.blobs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("AccessDenied"))

	_, err := s.pipeline.Ingest(context.Background(), ingest.AssetInfo{
		AssetID:  "asset-4",
		AssetURL: "https://s3.amazonaws.com/art/x.png",
	}, "nft-1", creator)
	assert.ErrorContains(t, err, "AccessDenied")

	stored, err := s.assets.Get(context.Background(), "asset-4", nil)
	require.NoError(t, err)
	assert.Nil(t, stored, "failed assets are not persisted")
}

func TestIngest_MalformedURLEscapeIsFatal(t *testing.T) {
	s := setupIngestTest(t)

	// no blob or pinner calls are expected
	_, err := s.pipeline.Ingest(context.Background(), ingest.AssetInfo{
		AssetID:  "asset-5",
		AssetURL: "https://art.s3.amazonaws.com/100%25-%zz.png",
	}, "nft-1", creator)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "asset-5")

	stored, err := s.assets.Get(context.Background(), "asset-5", nil)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestIngestAll(t *testing.T) {
	t.Run("returns assets in input order", func(t *testing.T) {
		s := setupIngestTest(t)

		infos := []ingest.AssetInfo{
			{AssetID: "a", AssetType: "image", AssetURL: "https://example.com/a"},
			{AssetID: "b", AssetType: "image", AssetURL: "https://example.com/b"},
			{AssetID: "c", AssetType: "image", AssetURL: "https://example.com/c"},
		}
		assets, err := s.pipeline.IngestAll(context.Background(), infos, "nft-9", creator)
		require.NoError(t, err)
		require.Len(t, assets, 3)
		assert.Equal(t, "a", assets[0].AssetID)
		assert.Equal(t, "b", assets[1].AssetID)
		assert.Equal(t, "c", assets[2].AssetID)
	})

	t.Run("first failure fails the batch", func(t *testing.T) {
		s := setupIngestTest(t)

		s.blobs.EXPECT().
			Get(gomock.Any(), uri.S3Locator{Bucket: "art", Key: "bad"}).
			Return(nil, errors.New("NoSuchKey"))

		infos := []ingest.AssetInfo{
			{AssetID: "ok", AssetType: "image", AssetURL: "https://example.com/ok"},
			{AssetID: "bad", AssetType: "image", AssetURL: "https://s3.amazonaws.com/art/bad"},
		}
		assets, err := s.pipeline.IngestAll(context.Background(), infos, "nft-9", creator)
		assert.ErrorContains(t, err, "NoSuchKey")
		assert.Nil(t, assets)

		bad, err := s.assets.Get(context.Background(), "bad", nil)
		require.NoError(t, err)
		assert.Nil(t, bad)
	})
}

func TestUpdateAsset(t *testing.T) {
	s := setupIngestTest(t)
	ctx := context.Background()

	original := schema.Asset{
		AssetID:    "asset-u",
		NFTID:      "nft-1",
		AssetType:  "image",
		AssetURL:   "https://example.com/a.png",
		Visibility: true,
		IPFSHash:   "QmKeep",
	}
	require.NoError(t, s.assets.Put(ctx, &original))

	t.Run("patch wins and omitted fields survive", func(t *testing.T) {
		updated, err := s.pipeline.UpdateAsset(ctx, "asset-u", map[string]any{
			"processed": true,
			"assetId":   "hijacked",
			"unknown":   "ignored",
		}, "app-2")
		require.NoError(t, err)
		assert.Equal(t, "asset-u", updated.AssetID)
		assert.True(t, updated.Processed)
		assert.True(t, updated.Visibility, "visibility is kept when not supplied")
		assert.Equal(t, "QmKeep", updated.IPFSHash)
		assert.Equal(t, "app-2", updated.AppID)

		hijacked, err := s.assets.Get(ctx, "hijacked", nil)
		require.NoError(t, err)
		assert.Nil(t, hijacked)
	})

	t.Run("visibility replaced when supplied", func(t *testing.T) {
		updated, err := s.pipeline.UpdateAsset(ctx, "asset-u", map[string]any{"visibility": false}, "")
		require.NoError(t, err)
		assert.False(t, updated.Visibility)
		assert.Equal(t, "app-2", updated.AppID, "empty appId keeps the stored one")
	})

	t.Run("bad field type", func(t *testing.T) {
		_, err := s.pipeline.UpdateAsset(ctx, "asset-u", map[string]any{"visibility": "yes"}, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing asset", func(t *testing.T) {
		_, err := s.pipeline.UpdateAsset(ctx, "nope", map[string]any{"processed": true}, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPresignUploadURLs(t *testing.T) {
	s := setupIngestTest(t)

	s.blobs.EXPECT().
		PresignPut(gomock.Any(), "uploads", "user-1/image/a1.png", 10*time.Minute).
		Return("https://signed/a1", nil)
	s.blobs.EXPECT().
		PresignPut(gomock.Any(), "uploads", "user-1/video/a2.mp4", 10*time.Minute).
		Return("https://signed/a2", nil)

	urls, err := s.pipeline.PresignUploadURLs(context.Background(), "user-1", []ingest.UploadRequest{
		{AssetID: "a1", AssetType: "image", FileType: "png"},
		{AssetID: "a2", AssetType: "video", FileType: "mp4"},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://signed/a1", urls[0].URL)
	assert.Equal(t, "user-1/video/a2.mp4", urls[1].Key)
}

func TestUploadMetadata(t *testing.T) {
	s := setupIngestTest(t)

	s.blobs.EXPECT().
		Put(gomock.Any(), "metadata", "0xcreator/col-1/42.json", "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, body []byte) error {
			assert.JSONEq(t, `{"name":"Dot","description":"d","image":"https://img","traits":[{"trait_type":"color","value":"red"}]}`, string(body))
			return nil
		})

	err := s.pipeline.UploadMetadata(context.Background(), schema.NFT{
		NFTID:          "nft-1",
		TokenID:        42,
		Name:           "Dot",
		Description:    "d",
		ImageURL:       "https://img",
		CreatorAddress: "0xcreator",
		CollectionID:   "col-1",
	}, []map[string]string{{"trait_type": "color", "value": "red"}})
	require.NoError(t, err)
}
