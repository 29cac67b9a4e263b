package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/mocks"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newFixedClock returns a clock mock that always reports fixedNow
func newFixedClock(t *testing.T) *mocks.MockClock {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(fixedNow).AnyTimes()
	return clock
}

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestCollection(id string, version int, fn func(*schema.Collection)) schema.Collection {
	c := schema.Collection{
		CollectionID:              id,
		Version:                   version,
		IsLatest:                  true,
		CreatedAt:                 1000,
		UpdatedAt:                 1000 + int64(version),
		Address:                   "0x" + id,
		CreatorAddress:            "0xcreator",
		Name:                      fmt.Sprintf("%s v%d", id, version),
		Category:                  "art",
		Chain:                     "ethereum",
		IsListed:                  true,
		OwnerSignatureMintAllowed: true,
		Links:                     []string{"https://example.com"},
	}
	if fn != nil {
		fn(&c)
	}
	return c
}

func buildTestNFT(id string, version int, collectionID string) schema.NFT {
	return schema.NFT{
		NFTID:        id,
		Version:      version,
		IsLatest:     true,
		CreatedAt:    1000,
		UpdatedAt:    1000,
		TokenID:      7,
		DotID:        "dot-" + id,
		CollectionID: collectionID,
		Name:         id,
	}
}

// =============================================================================
// Test: VersionedStore
// =============================================================================

func testVersionedLatest(t *testing.T, s *Store) {
	ctx := context.Background()

	t.Run("highest version wins even when isLatest is stale", func(t *testing.T) {
		for v := 1; v <= 3; v++ {
			require.NoError(t, s.Collections.Put(ctx, buildTestCollection("col-latest", v, nil)))
		}

		latest, err := s.Collections.GetLatest(ctx, "col-latest")
		require.NoError(t, err)
		assert.Equal(t, 3, latest.Version)
		assert.Equal(t, "col-latest v3", latest.Name)

		old, err := s.Collections.GetVersion(ctx, "col-latest", 1)
		require.NoError(t, err)
		assert.True(t, old.IsLatest, "older rows are never demoted")
	})

	t.Run("unknown id returns the zero entity", func(t *testing.T) {
		latest, err := s.Collections.GetLatest(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.True(t, latest.IsZero())

		missing, err := s.Collections.GetVersion(ctx, "does-not-exist", 1)
		require.NoError(t, err)
		assert.True(t, missing.IsZero())
	})

	t.Run("same id and version overwrites", func(t *testing.T) {
		require.NoError(t, s.Collections.Put(ctx, buildTestCollection("col-over", 1, nil)))
		require.NoError(t, s.Collections.Put(ctx, buildTestCollection("col-over", 1, func(c *schema.Collection) {
			c.Name = "replaced"
		})))

		latest, err := s.Collections.GetLatest(ctx, "col-over")
		require.NoError(t, err)
		assert.Equal(t, "replaced", latest.Name)
	})
}

func testVersionedAppend(t *testing.T, s *Store) {
	ctx := context.Background()

	require.NoError(t, s.Collections.Put(ctx, buildTestCollection("col-append", 1, nil)))

	next, err := s.Collections.AppendVersion(ctx, "col-append", func(c *schema.Collection) error {
		c.Name = "renamed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, next.Version)
	assert.True(t, next.IsLatest)
	assert.Equal(t, fixedNow.UnixMilli(), next.UpdatedAt)
	assert.Equal(t, int64(1000), next.CreatedAt)

	latest, err := s.Collections.GetLatest(ctx, "col-append")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Version)
	assert.Equal(t, "renamed", latest.Name)

	first, err := s.Collections.GetVersion(ctx, "col-append", 1)
	require.NoError(t, err)
	assert.Equal(t, "col-append v1", first.Name)
	assert.True(t, first.IsLatest)

	_, err = s.Collections.AppendVersion(ctx, "col-missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Collections.AppendVersion(ctx, "col-append", func(c *schema.Collection) error {
		c.CollectionID = "other"
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func testVersionedIndexes(t *testing.T, s *Store) {
	ctx := context.Background()

	require.NoError(t, s.Collections.Put(ctx, buildTestCollection("col-idx", 1, func(c *schema.Collection) {
		c.Address = "0xshared"
		c.Category = "photo"
	})))
	require.NoError(t, s.Collections.Put(ctx, buildTestCollection("col-idx", 2, func(c *schema.Collection) {
		c.Address = "0xshared"
		c.Category = "photo"
	})))

	rows, err := s.Collections.GetByIndex(ctx, IndexCategory, "photo")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "index lookups return every version")

	byAddress, err := s.Collections.GetLatestByIndex(ctx, IndexAddress, "0xshared")
	require.NoError(t, err)
	assert.Equal(t, 2, byAddress.Version)

	none, err := s.Collections.GetLatestByIndex(ctx, IndexAddress, "0xnobody")
	require.NoError(t, err)
	assert.True(t, none.IsZero())

	_, err = s.Collections.GetByIndex(ctx, "bogus-index", "x")
	assert.Error(t, err)
}

func testVersionedScanAndDelete(t *testing.T, s *Store) {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.NFTs.Put(ctx, buildTestNFT(fmt.Sprintf("nft-scan-%d", i), 1, "col-scan")))
	}

	all, err := s.NFTs.ScanAll(ctx)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, n := range all {
		ids[n.NFTID] = true
	}
	assert.True(t, ids["nft-scan-0"])
	assert.True(t, ids["nft-scan-2"])

	require.NoError(t, s.NFTs.Delete(ctx, "nft-scan-0", 1))
	require.NoError(t, s.NFTs.Delete(ctx, "nft-scan-0", 1), "delete is idempotent")

	gone, err := s.NFTs.GetLatest(ctx, "nft-scan-0")
	require.NoError(t, err)
	assert.True(t, gone.IsZero())

	byCollection, err := s.NFTs.GetByIndex(ctx, IndexCollectionID, "col-scan")
	require.NoError(t, err)
	assert.Len(t, byCollection, 2)
}

func testVersionedIncrement(t *testing.T, s *Store) {
	ctx := context.Background()

	require.NoError(t, s.NFTs.Put(ctx, buildTestNFT("nft-count", 1, "c")))
	require.NoError(t, s.NFTs.Put(ctx, buildTestNFT("nft-count", 2, "c")))

	require.NoError(t, s.NFTs.Increment(ctx, "nft-count", CounterScanCount, 1))
	require.NoError(t, s.NFTs.Increment(ctx, "nft-count", CounterScanCount, 1))
	require.NoError(t, s.NFTs.Increment(ctx, "nft-count", CounterViewCount, 5))

	latest, err := s.NFTs.GetLatest(ctx, "nft-count")
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.ScanCount)
	assert.Equal(t, int64(5), latest.ViewCount)

	first, err := s.NFTs.GetVersion(ctx, "nft-count", 1)
	require.NoError(t, err)
	assert.Zero(t, first.ScanCount, "only the current version is counted")

	err = s.NFTs.Increment(ctx, "nft-nobody", CounterScanCount, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.NFTs.Increment(ctx, "nft-count", "bogus", 1)
	assert.Error(t, err)
}

// =============================================================================
// Test: RelationStore
// =============================================================================

func testRelations(t *testing.T, s *Store) {
	ctx := context.Background()

	_, err := s.CollectionLikes.Like(ctx, "col-1", "user-1")
	require.NoError(t, err)
	_, err = s.CollectionLikes.Like(ctx, "col-1", "user-1")
	require.NoError(t, err, "liking twice is idempotent")
	_, err = s.CollectionLikes.Like(ctx, "col-2", "user-1")
	require.NoError(t, err)

	rel, err := s.CollectionLikes.GetRelation(ctx, "col-1", "user-1")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, fixedNow.UnixMilli(), rel.CreatedAt)

	liked, err := s.CollectionLikes.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, liked, 2)

	require.NoError(t, s.CollectionLikes.Unlike(ctx, "col-1", "user-1"))
	require.NoError(t, s.CollectionLikes.Unlike(ctx, "col-1", "user-1"), "unliking twice is idempotent")

	rel, err = s.CollectionLikes.GetRelation(ctx, "col-1", "user-1")
	require.NoError(t, err)
	assert.Nil(t, rel)

	_, err = s.NFTLikes.Like(ctx, "nft-1", "user-2")
	require.NoError(t, err)
	nftLiked, err := s.NFTLikes.ListByUser(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, nftLiked, 1)
	assert.Equal(t, "nft-1", nftLiked[0].SubjectID())
}

// =============================================================================
// Test: plain tables
// =============================================================================

func testPlainTables(t *testing.T, s *Store) {
	ctx := context.Background()

	t.Run("assets overwrite in place", func(t *testing.T) {
		asset := schema.Asset{AssetID: "asset-1", NFTID: "nft-1", AssetType: "image"}
		require.NoError(t, s.Assets.Put(ctx, &asset))
		asset.Visibility = true
		require.NoError(t, s.Assets.Put(ctx, &asset))

		got, err := s.Assets.Get(ctx, "asset-1", nil)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Visibility)

		byNFT, err := s.Assets.QueryIndex(ctx, IndexNFTID, "nft-1")
		require.NoError(t, err)
		assert.Len(t, byNFT, 1)

		missing, err := s.Assets.Get(ctx, "asset-none", nil)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("wallets keyed by address and chain", func(t *testing.T) {
		w1 := schema.Wallet{Address: "0xabc", Chain: "ethereum", UserID: "user-w", ConnectedTime: 1}
		w2 := schema.Wallet{Address: "0xabc", Chain: "polygon", UserID: "user-w", ConnectedTime: 2}
		require.NoError(t, s.Wallets.Put(ctx, &w1))
		require.NoError(t, s.Wallets.Put(ctx, &w2))

		got, err := s.Wallets.Get(ctx, "0xabc", "polygon")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.ConnectedTime)

		byUser, err := s.Wallets.QueryIndex(ctx, IndexUserID, "user-w")
		require.NoError(t, err)
		assert.Len(t, byUser, 2)
	})

	t.Run("users by tag", func(t *testing.T) {
		u := schema.User{UserID: "user-t", UserTag: "tagged"}
		require.NoError(t, s.Users.Put(ctx, &u))

		byTag, err := s.Users.QueryIndex(ctx, IndexUserTag, "tagged")
		require.NoError(t, err)
		require.Len(t, byTag, 1)
		assert.Equal(t, "user-t", byTag[0].UserID)
	})
}

// RunStoreTests runs every store test against one backend
func RunStoreTests(t *testing.T, initDB func(t *testing.T) *Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, *Store)
	}{
		{"VersionedLatest", testVersionedLatest},
		{"VersionedAppend", testVersionedAppend},
		{"VersionedIndexes", testVersionedIndexes},
		{"VersionedScanAndDelete", testVersionedScanAndDelete},
		{"VersionedIncrement", testVersionedIncrement},
		{"Relations", testRelations},
		{"PlainTables", testPlainTables},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}

func TestMemoryStore(t *testing.T) {
	RunStoreTests(t, func(t *testing.T) *Store {
		return NewMemoryStore(newFixedClock(t))
	})
}

func TestLatestPerEntity(t *testing.T) {
	rows := []schema.Collection{
		buildTestCollection("a", 1, nil),
		buildTestCollection("b", 2, nil),
		buildTestCollection("a", 3, nil),
		buildTestCollection("b", 1, nil),
	}

	latest := LatestPerEntity(rows)
	require.Len(t, latest, 2)
	assert.Equal(t, "a", latest[0].CollectionID)
	assert.Equal(t, 3, latest[0].Version)
	assert.Equal(t, "b", latest[1].CollectionID)
	assert.Equal(t, 2, latest[1].Version)

	assert.True(t, Latest([]schema.Collection{}).IsZero())
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, life, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, life)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 10, time.Second, time.Second)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}
