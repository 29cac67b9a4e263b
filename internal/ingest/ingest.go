package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/blob"
	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/pinning"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/uri"
	"github.com/feral-file/ff-catalog/internal/worker"
)

// AssetInfo describes one piece of media to attach to an NFT
type AssetInfo struct {
	AssetID    string `json:"assetId" validate:"required"`
	AssetType  string `json:"assetType" validate:"required"`
	AssetURL   string `json:"assetURL" validate:"required"`
	Visibility bool   `json:"visibility"`
	Processed  bool   `json:"processed"`
}

// Creator identifies who an asset is created for
type Creator struct {
	Address string
	ID      string
	AppID   string
}

// UploadRequest asks for a presigned URL for one asset file
type UploadRequest struct {
	AssetID   string `json:"assetId" validate:"required"`
	AssetType string `json:"assetType" validate:"required"`
	FileType  string `json:"fileType" validate:"required"`
}

// PresignedUpload is a presigned PUT URL for one asset file
type PresignedUpload struct {
	AssetID string `json:"assetId"`
	Key     string `json:"key"`
	URL     string `json:"url"`
}

// Metadata is the token metadata document written next to minted NFTs
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Traits      any    `json:"traits"`
}

// Ingester turns externally hosted media into persisted, pinned Assets
type Ingester interface {
	// Ingest fetches, pins and persists one asset
	Ingest(ctx context.Context, info AssetInfo, nftID string, creator Creator) (*schema.Asset, error)
	// IngestAll ingests every asset concurrently and fails on the first error
	IngestAll(ctx context.Context, infos []AssetInfo, nftID string, creator Creator) ([]schema.Asset, error)
	// UpdateAsset merges patch over the stored asset and overwrites it
	UpdateAsset(ctx context.Context, assetID string, patch map[string]any, appID string) (*schema.Asset, error)
	// PresignUploadURLs returns presigned PUT URLs in the upload bucket
	PresignUploadURLs(ctx context.Context, userID string, reqs []UploadRequest) ([]PresignedUpload, error)
	// UploadMetadata writes the metadata document of nft to the metadata bucket
	UploadMetadata(ctx context.Context, nft schema.NFT, traits any) error
}

// Config holds bucket settings for ingestion
type Config struct {
	UploadBucket   string
	MetadataBucket string
	PresignTTL     time.Duration
}

type pipeline struct {
	cfg    Config
	assets store.Table[schema.Asset]
	blobs  blob.Store
	pinner pinning.Pinner
	pool   pond.Pool
}

// NewPipeline creates the asset ingestion pipeline
func NewPipeline(cfg Config, assets store.Table[schema.Asset], blobs blob.Store, pinner pinning.Pinner, pool pond.Pool) Ingester {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	return &pipeline{
		cfg:    cfg,
		assets: assets,
		blobs:  blobs,
		pinner: pinner,
		pool:   pool,
	}
}

func (p *pipeline) Ingest(ctx context.Context, info AssetInfo, nftID string, creator Creator) (*schema.Asset, error) {
	asset := schema.Asset{
		AssetID:        info.AssetID,
		NFTID:          nftID,
		AssetType:      info.AssetType,
		AssetURL:       info.AssetURL,
		CreatorAddress: creator.Address,
		CreatorID:      creator.ID,
		Visibility:     info.Visibility,
		Processed:      info.Processed,
		AppID:          creator.AppID,
	}

	loc, err := uri.ParseS3URL(info.AssetURL)
	if err != nil {
		return nil, domain.Validationf("asset %s: %v", info.AssetID, err)
	}
	if loc.IsZero() {
		logger.DebugCtx(ctx, "asset url is not an s3 object, skipping pinning",
			zap.String("assetId", info.AssetID),
			zap.String("assetURL", info.AssetURL))
	} else {
		cid, err := p.pin(ctx, info.AssetID, loc)
		if err != nil {
			return nil, err
		}
		asset.IPFSHash = cid
	}

	if err := p.assets.Put(ctx, &asset); err != nil {
		return nil, fmt.Errorf("failed to save asset %s: %w", asset.AssetID, err)
	}
	return &asset, nil
}

func (p *pipeline) pin(ctx context.Context, assetID string, loc uri.S3Locator) (string, error) {
	obj, err := p.blobs.Get(ctx, loc)
	if err != nil {
		return "", fmt.Errorf("failed to fetch asset %s: %w", assetID, err)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(obj.Body).String()
	}

	cid, err := p.pinner.Pin(ctx, assetID, contentType, bytes.NewReader(obj.Body))
	if err != nil {
		return "", fmt.Errorf("failed to pin asset %s: %w", assetID, err)
	}

	logger.InfoCtx(ctx, "pinned asset",
		zap.String("assetId", assetID),
		zap.String("bucket", loc.Bucket),
		zap.String("cid", cid))
	return cid, nil
}

func (p *pipeline) IngestAll(ctx context.Context, infos []AssetInfo, nftID string, creator Creator) ([]schema.Asset, error) {
	return worker.FanOut(ctx, p.pool, infos, func(ctx context.Context, info AssetInfo) (schema.Asset, error) {
		asset, err := p.Ingest(ctx, info, nftID, creator)
		if err != nil {
			return schema.Asset{}, err
		}
		return *asset, nil
	})
}

func (p *pipeline) UpdateAsset(ctx context.Context, assetID string, patch map[string]any, appID string) (*schema.Asset, error) {
	existing, err := p.assets.Get(ctx, assetID, nil)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFoundf("asset %s", assetID)
	}

	merged, err := mergeAsset(*existing, patch)
	if err != nil {
		return nil, err
	}
	if appID != "" {
		merged.AppID = appID
	}

	if err := p.assets.Put(ctx, &merged); err != nil {
		return nil, fmt.Errorf("failed to update asset %s: %w", assetID, err)
	}
	return &merged, nil
}

// mergeAsset overlays patch onto existing. The identifier cannot be patched and
// visibility is only replaced when the patch carries it.
func mergeAsset(existing schema.Asset, patch map[string]any) (schema.Asset, error) {
	raw, err := json.Marshal(existing)
	if err != nil {
		return schema.Asset{}, fmt.Errorf("failed to encode asset: %w", err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return schema.Asset{}, fmt.Errorf("failed to decode asset: %w", err)
	}

	for k, v := range patch {
		if k == "assetId" {
			continue
		}
		if k == "visibility" && v == nil {
			continue
		}
		fields[k] = v
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return schema.Asset{}, fmt.Errorf("failed to encode patched asset: %w", err)
	}
	var merged schema.Asset
	if err := json.Unmarshal(raw, &merged); err != nil {
		return schema.Asset{}, domain.Validationf("invalid asset patch: %v", err)
	}
	merged.AssetID = existing.AssetID
	return merged, nil
}

func (p *pipeline) PresignUploadURLs(ctx context.Context, userID string, reqs []UploadRequest) ([]PresignedUpload, error) {
	return worker.FanOut(ctx, p.pool, reqs, func(ctx context.Context, req UploadRequest) (PresignedUpload, error) {
		key := fmt.Sprintf("%s/%s/%s.%s", userID, req.AssetType, req.AssetID, req.FileType)
		url, err := p.blobs.PresignPut(ctx, p.cfg.UploadBucket, key, p.cfg.PresignTTL)
		if err != nil {
			return PresignedUpload{}, err
		}
		return PresignedUpload{AssetID: req.AssetID, Key: key, URL: url}, nil
	})
}

func (p *pipeline) UploadMetadata(ctx context.Context, nft schema.NFT, traits any) error {
	body, err := json.Marshal(Metadata{
		Name:        nft.Name,
		Description: nft.Description,
		Image:       nft.ImageURL,
		Traits:      traits,
	})
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.json", nft.CreatorAddress, nft.CollectionID, strconv.FormatInt(nft.TokenID, 10))
	return p.blobs.Put(ctx, p.cfg.MetadataBucket, key, "application/json", body)
}
