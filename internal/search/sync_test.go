package search_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/mocks"
	"github.com/feral-file/ff-catalog/internal/search"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/worker"
)

func seedCollections(t *testing.T, s *store.Store, rows ...schema.Collection) {
	for _, row := range rows {
		require.NoError(t, s.Collections.Put(context.Background(), row))
	}
}

func TestSyncer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockSearchIndex(ctrl)
	st := store.NewMemoryStore(adapter.NewClock())
	pool := worker.NewPool(2)
	t.Cleanup(pool.StopAndWait)

	// c1 has a stale row still flagged latest
	seedCollections(t, st,
		schema.Collection{CollectionID: "c1", Version: 1, IsLatest: true, Name: "old"},
		schema.Collection{CollectionID: "c1", Version: 2, IsLatest: true, Name: "new"},
		schema.Collection{CollectionID: "c2", Version: 1, IsLatest: true, Name: "two"},
		schema.Collection{CollectionID: "c3", Version: 1, IsLatest: true, Name: "three"},
	)

	var mu sync.Mutex
	var got []schema.Collection
	index.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch []schema.Collection) error {
			assert.LessOrEqual(t, len(batch), 2)
			mu.Lock()
			got = append(got, batch...)
			mu.Unlock()
			return nil
		}).
		Times(2)

	n, err := search.NewSyncer(st.Collections, index, pool, 2).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	sort.Slice(got, func(i, j int) bool { return got[i].CollectionID < got[j].CollectionID })
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].Name)
	assert.Equal(t, 2, got[0].Version)
}

func fastRetries(n uint64) search.SyncerOption {
	return search.WithBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), n)
	})
}

func TestSyncer_RunRetriesBulkFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockSearchIndex(ctrl)
	st := store.NewMemoryStore(adapter.NewClock())
	pool := worker.NewPool(2)
	t.Cleanup(pool.StopAndWait)

	seedCollections(t, st, schema.Collection{CollectionID: "c1", Version: 1})
	gomock.InOrder(
		index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("es_rejected_execution_exception")),
		index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil),
	)

	n, err := search.NewSyncer(st.Collections, index, pool, 0, fastRetries(3)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSyncer_RunFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockSearchIndex(ctrl)
	st := store.NewMemoryStore(adapter.NewClock())
	pool := worker.NewPool(2)
	t.Cleanup(pool.StopAndWait)

	seedCollections(t, st, schema.Collection{CollectionID: "c1", Version: 1})
	index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("cluster unavailable")).Times(3)

	_, err := search.NewSyncer(st.Collections, index, pool, 0, fastRetries(2)).Run(context.Background())
	assert.ErrorContains(t, err, "cluster unavailable")
}
