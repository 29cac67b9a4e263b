package catalog

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/worker"
)

// SearchQuery filters keyword search results
type SearchQuery struct {
	Keyword            string
	Chain              string
	Category           string
	FilterTestOverride bool
}

// SearchCollections resolves the search hits to their current versions and
// keeps listed collections matching chain and category, in relevance order
func (e *Engine) SearchCollections(ctx context.Context, q SearchQuery) ([]schema.Collection, error) {
	ids, err := e.search.SearchCollectionIDs(ctx, q.Keyword)
	if err != nil {
		return nil, err
	}

	results, err := worker.FanOut(ctx, e.pool, ids, e.store.Collections.GetLatest)
	if err != nil {
		return nil, err
	}

	results = keep(results, func(c schema.Collection) bool { return c.IsListed })
	if q.Chain != "" {
		results = keep(results, func(c schema.Collection) bool { return c.Chain == q.Chain })
	}
	if q.Category != "" && q.Category != domain.CATEGORY_ALL {
		results = keep(results, func(c schema.Collection) bool { return c.Category == q.Category })
	}
	if !q.FilterTestOverride {
		results = keep(results, func(c schema.Collection) bool { return !isTestCategory(c.Category) })
	}
	return results, nil
}
