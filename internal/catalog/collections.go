package catalog

import (
	"context"
	"strings"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/worker"
)

// CollectionQuery selects and filters collections
type CollectionQuery struct {
	// Category selects by category, or every collection for "all"
	Category string
	// CreatorAddress selects by creator, or narrows a category selection
	CreatorAddress string
	Chain          string
	// CreatedByPlatform keeps only platform-curated collections
	CreatedByPlatform bool
	// FilterTestOverride keeps collections whose category contains "test"
	FilterTestOverride bool
	// LatestOnly collapses the candidates to the highest version of each collection
	LatestOnly bool
	// ViewerID is the verified user id of the caller, empty when anonymous
	ViewerID string
}

// QueryCollections runs the collection filter pipeline:
// candidates, visibility with ownership override, platform filter,
// category hygiene, chain.
func (e *Engine) QueryCollections(ctx context.Context, q CollectionQuery) ([]schema.Collection, error) {
	if q.Category == "" && q.CreatorAddress == "" {
		return nil, domain.Validationf("either category or creatorAddress must be provided")
	}

	results, err := e.collectionCandidates(ctx, q.Category, q.CreatorAddress)
	if err != nil {
		return nil, err
	}
	if q.LatestOnly {
		results = store.LatestPerEntity(results)
	}

	results, err = e.visibleCollections(ctx, results, q.ViewerID, q.Chain)
	if err != nil {
		return nil, err
	}

	if q.CreatedByPlatform {
		results = keep(results, func(c schema.Collection) bool { return c.IsCreatedByPlatform })
	}
	if !q.FilterTestOverride {
		results = keep(results, func(c schema.Collection) bool { return !isTestCategory(c.Category) })
	}
	if q.Chain != "" {
		results = keep(results, func(c schema.Collection) bool { return c.Chain == q.Chain })
	}
	return results, nil
}

func (e *Engine) collectionCandidates(ctx context.Context, category, creatorAddress string) ([]schema.Collection, error) {
	if category == "" {
		return e.store.Collections.GetByIndex(ctx, store.IndexCreatorAddress, creatorAddress)
	}

	var (
		results []schema.Collection
		err     error
	)
	if category == domain.CATEGORY_ALL {
		results, err = e.store.Collections.ScanAll(ctx)
	} else {
		results, err = e.store.Collections.GetByIndex(ctx, store.IndexCategory, category)
	}
	if err != nil {
		return nil, err
	}

	if creatorAddress != "" {
		results = keep(results, func(c schema.Collection) bool { return c.CreatorAddress == creatorAddress })
	}
	return results, nil
}

// visibleCollections keeps listed collections, plus unlisted ones the viewer
// owns: the viewer is the creator, or one of the viewer's wallets is.
func (e *Engine) visibleCollections(ctx context.Context, rows []schema.Collection, viewerID, chain string) ([]schema.Collection, error) {
	if viewerID == "" {
		return keep(rows, func(c schema.Collection) bool { return c.IsListed }), nil
	}

	wallets, err := e.walletAddresses(ctx, viewerID, chain)
	if err != nil {
		return nil, err
	}
	return keep(rows, func(c schema.Collection) bool {
		if c.CreatorAddress == viewerID || wallets.has(c.CreatorAddress) {
			return true
		}
		return c.IsListed
	}), nil
}

func isTestCategory(category string) bool {
	return strings.Contains(category, domain.TEST_CATEGORY_MARKER)
}

// QueryCollectionsByAddresses resolves the current collection of every address
// in parallel and keeps the listed ones, in input order. Addresses without a
// collection are dropped.
func (e *Engine) QueryCollectionsByAddresses(ctx context.Context, addresses []string) ([]schema.Collection, error) {
	resolved, err := worker.FanOut(ctx, e.pool, addresses, func(ctx context.Context, address string) (schema.Collection, error) {
		return e.store.Collections.GetLatestByIndex(ctx, store.IndexAddress, address)
	})
	if err != nil {
		return nil, err
	}
	return keep(resolved, func(c schema.Collection) bool { return c.IsListed && c.IsLatest }), nil
}

// GetCollection returns the current version, or a zero collection
func (e *Engine) GetCollection(ctx context.Context, collectionID string) (schema.Collection, error) {
	return e.store.Collections.GetLatest(ctx, collectionID)
}

// GetCollectionByAddress returns the highest version stored under address
func (e *Engine) GetCollectionByAddress(ctx context.Context, address string) (schema.Collection, error) {
	return e.store.Collections.GetLatestByIndex(ctx, store.IndexAddress, address)
}

// CreateCollection writes version 1 of a new collection
func (e *Engine) CreateCollection(ctx context.Context, in schema.CollectionInput, appID string) (schema.Collection, error) {
	c, err := schema.NewCollection(in)
	if err != nil {
		return schema.Collection{}, err
	}
	if appID != "" {
		c.AppID = appID
	}
	c.Stamp(1, e.now())

	if err := e.store.Collections.Put(ctx, c); err != nil {
		return schema.Collection{}, err
	}
	return c, nil
}

// UpdateCollection appends a new version with the supplied fields applied
func (e *Engine) UpdateCollection(ctx context.Context, collectionID string, in schema.CollectionInput, appID string) (schema.Collection, error) {
	if in.CollectionID != "" && in.CollectionID != collectionID {
		return schema.Collection{}, domain.Validationf("collectionId cannot be changed")
	}
	return e.store.Collections.AppendVersion(ctx, collectionID, func(c *schema.Collection) error {
		in.Apply(c)
		if appID != "" {
			c.AppID = appID
		}
		return schema.Validate(*c)
	})
}
