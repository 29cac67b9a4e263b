package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

const (
	// DefaultIndexName is the index collection documents are written to
	DefaultIndexName = "collection"

	// DefaultMaxResults matches the search engine's default page size
	DefaultMaxResults = 10
)

// searchFields are matched by keyword searches as phrase prefixes
var searchFields = []string{"name", "description", "creatorAddress"}

// Index is the keyword search collaborator for collections
//
//go:generate mockgen -source=search.go -destination=../mocks/search.go -package=mocks -mock_names=Index=MockSearchIndex
type Index interface {
	// Upsert writes collections as documents keyed by collectionId
	Upsert(ctx context.Context, collections []schema.Collection) error
	// SearchCollectionIDs returns collection ids ranked by relevance to keyword
	SearchCollectionIDs(ctx context.Context, keyword string) ([]string, error)
}

// Config holds elasticsearch connection settings
type Config struct {
	URL        string
	Username   string
	Password   string
	IndexName  string
	MaxResults int
	HTTPClient *http.Client
}

type elasticIndex struct {
	client     *elastic.Client
	name       string
	maxResults int
}

// NewElasticIndex connects to elasticsearch. Sniffing and health checks are
// disabled so a single endpoint behind a load balancer works.
func NewElasticIndex(cfg Config) (Index, error) {
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.URL),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}
	if cfg.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, elastic.SetHttpClient(cfg.HTTPClient))
	}

	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}

	return &elasticIndex{
		client:     client,
		name:       cfg.IndexName,
		maxResults: cfg.MaxResults,
	}, nil
}

func (i *elasticIndex) Upsert(ctx context.Context, collections []schema.Collection) error {
	if len(collections) == 0 {
		return nil
	}

	bulk := i.client.Bulk().Index(i.name)
	for _, c := range collections {
		bulk.Add(elastic.NewBulkIndexRequest().Id(c.CollectionID).Doc(c))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index collections: %w", err)
	}
	if resp.Errors {
		failed := resp.Failed()
		for _, item := range failed {
			reason := ""
			if item.Error != nil {
				reason = item.Error.Reason
			}
			logger.WarnCtx(ctx, "collection document rejected",
				zap.String("collectionId", item.Id),
				zap.Int("status", item.Status),
				zap.String("reason", reason))
		}
		return fmt.Errorf("%d of %d collection documents were rejected", len(failed), len(collections))
	}
	return nil
}

func (i *elasticIndex) SearchCollectionIDs(ctx context.Context, keyword string) ([]string, error) {
	query := elastic.NewBoolQuery().Should(
		elastic.NewMultiMatchQuery(keyword, searchFields...).Type("phrase_prefix"),
	)

	res, err := i.client.Search().
		Index(i.name).
		Query(query).
		Size(i.maxResults).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search collections: %w", err)
	}
	if res.Hits == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.Id)
	}
	return ids, nil
}
