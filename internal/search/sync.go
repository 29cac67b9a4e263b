package search

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/worker"
)

// DefaultBatchSize is the number of documents sent per bulk request
const DefaultBatchSize = 200

// CollectionSource lists every stored collection row
type CollectionSource interface {
	ScanAll(ctx context.Context) ([]schema.Collection, error)
}

// Syncer copies the current version of every collection into the index
type Syncer struct {
	source    CollectionSource
	index     Index
	pool      pond.Pool
	batchSize int
	// backoff builds the retry policy for one bulk request
	backoff func() backoff.BackOff
}

// SyncerOption customizes a Syncer
type SyncerOption func(*Syncer)

// WithBackOff replaces the retry policy used for each bulk request
func WithBackOff(fn func() backoff.BackOff) SyncerOption {
	return func(s *Syncer) {
		s.backoff = fn
	}
}

// NewSyncer creates a Syncer. A non-positive batchSize uses DefaultBatchSize.
// Failed bulk requests are retried with exponential backoff.
func NewSyncer(source CollectionSource, index Index, pool pond.Pool, batchSize int, opts ...SyncerOption) *Syncer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	s := &Syncer{
		source:    source,
		index:     index,
		pool:      pool,
		batchSize: batchSize,
		backoff:   defaultBackOff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 2 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5
	return b
}

// Run scans the collections table, keeps the highest version of each
// collection and upserts them in batches. It returns the number of documents written.
func (s *Syncer) Run(ctx context.Context) (int, error) {
	rows, err := s.source.ScanAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to scan collections: %w", err)
	}

	latest := store.LatestPerEntity(rows)
	logger.InfoCtx(ctx, "syncing collections to search index",
		zap.Int("rows", len(rows)),
		zap.Int("collections", len(latest)))

	batches := chunk(latest, s.batchSize)
	_, err = worker.FanOut(ctx, s.pool, batches, func(ctx context.Context, batch []schema.Collection) (struct{}, error) {
		return struct{}{}, s.upsert(ctx, batch)
	})
	if err != nil {
		return 0, err
	}
	return len(latest), nil
}

// upsert sends one batch, retrying until the backoff policy gives up
func (s *Syncer) upsert(ctx context.Context, batch []schema.Collection) error {
	operation := func() error {
		err := s.index.Upsert(ctx, batch)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "bulk upsert failed, retrying",
			zap.Error(err),
			zap.Int("documents", len(batch)),
			zap.Duration("wait", wait))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(s.backoff(), ctx), notify); err != nil {
		return fmt.Errorf("failed to upsert %d collections: %w", len(batch), err)
	}
	return nil
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
