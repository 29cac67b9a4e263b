package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// Bundle is one NFT together with the assets created for it
type Bundle struct {
	NFT                 schema.NFTInput    `json:"nftData"`
	Assets              []ingest.AssetInfo `json:"assets"`
	Traits              any                `json:"traits"`
	AssetCreatorAddress string             `json:"assetCreatorAddress"`
	AssetCreatorID      string             `json:"assetCreatorId"`
	SkipMetadataUpload  bool               `json:"skipMetadataUpload"`
}

// BatchRequest creates several bundles. Signature and MaxTokenID authorize
// lazy minting and are copied onto every NFT; they must be given together.
type BatchRequest struct {
	Bundles    []Bundle
	Signature  string
	MaxTokenID *int64
	AppID      string
}

type BundleStatus string

const (
	BundleCommitted BundleStatus = "committed"
	BundleFailed    BundleStatus = "failed"
	BundleSkipped   BundleStatus = "skipped"
)

// BundleOutcome reports what happened to one bundle. A failed bundle may have
// left its NFT and some of its assets persisted.
type BundleOutcome struct {
	NFTID  string         `json:"nftId"`
	Status BundleStatus   `json:"status"`
	Assets []schema.Asset `json:"assets,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// BatchResult holds one outcome per requested bundle, in request order
type BatchResult struct {
	Bundles []BundleOutcome `json:"bundles"`
}

// Committed counts the bundles that were fully written
func (r BatchResult) Committed() int {
	n := 0
	for _, b := range r.Bundles {
		if b.Status == BundleCommitted {
			n++
		}
	}
	return n
}

// CreateAssetsAndSaveNFTs processes bundles one after another. For each bundle
// the NFT is written, its metadata uploaded unless skipped, then its assets
// ingested concurrently. The first failing bundle stops the batch: it is
// reported as failed, the rest as skipped, and its error is returned alongside
// the result. Nothing already written is rolled back.
func (e *Engine) CreateAssetsAndSaveNFTs(ctx context.Context, req BatchRequest) (BatchResult, error) {
	if len(req.Bundles) == 0 {
		return BatchResult{}, domain.Validationf("Assets and NFTs data not supplied")
	}
	if (req.Signature != "") != (req.MaxTokenID != nil) {
		return BatchResult{}, domain.Validationf("Signature & maxTokenId must be provided together")
	}
	for i, b := range req.Bundles {
		if err := validateAssetInfos(b.Assets); err != nil {
			return BatchResult{}, fmt.Errorf("bundle %d: %w", i, err)
		}
	}

	result := BatchResult{Bundles: make([]BundleOutcome, len(req.Bundles))}
	for i := range req.Bundles {
		result.Bundles[i] = BundleOutcome{
			NFTID:  req.Bundles[i].NFT.NFTID,
			Status: BundleSkipped,
		}
	}

	for i, b := range req.Bundles {
		assets, err := e.saveBundle(ctx, b, req)
		if err != nil {
			result.Bundles[i].Status = BundleFailed
			result.Bundles[i].Error = err.Error()
			logger.WarnCtx(ctx, "bundle failed, skipping the rest of the batch",
				zap.Int("bundle", i),
				zap.String("nftId", b.NFT.NFTID),
				zap.Int("skipped", len(req.Bundles)-i-1),
				zap.Error(err))
			return result, fmt.Errorf("bundle %d (%s): %w", i, b.NFT.NFTID, err)
		}
		result.Bundles[i].Status = BundleCommitted
		result.Bundles[i].Assets = assets
	}
	return result, nil
}

func (e *Engine) saveBundle(ctx context.Context, b Bundle, req BatchRequest) ([]schema.Asset, error) {
	in := b.NFT
	if req.Signature != "" {
		in.Signature = req.Signature
		in.MaxTokenID = req.MaxTokenID
	}

	nft, err := e.CreateNFT(ctx, in, req.AppID)
	if err != nil {
		return nil, err
	}

	if !b.SkipMetadataUpload {
		if err := e.ingester.UploadMetadata(ctx, nft, b.Traits); err != nil {
			return nil, fmt.Errorf("failed to upload metadata: %w", err)
		}
	}

	if len(b.Assets) == 0 {
		return nil, nil
	}
	return e.ingester.IngestAll(ctx, b.Assets, nft.NFTID, ingest.Creator{
		Address: b.AssetCreatorAddress,
		ID:      b.AssetCreatorID,
		AppID:   req.AppID,
	})
}
