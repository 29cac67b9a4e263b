package store

import (
	"context"
	"fmt"
)

// Attribute names one key or indexed field in both backends: Name is the
// DynamoDB attribute and Column the SQL column.
type Attribute struct {
	Name   string
	Column string
}

// TableSpec describes a key-value table: its name, partition key, optional
// sort key, secondary indexes and atomic counters.
type TableSpec struct {
	Name      string
	Partition Attribute
	Sort      *Attribute
	// Indexes maps an index name (e.g. "address-index") to the attribute it is keyed on
	Indexes map[string]Attribute
	// Counters maps a counter attribute name to its column
	Counters map[string]Attribute
}

func (s TableSpec) index(name string) (Attribute, error) {
	attr, ok := s.Indexes[name]
	if !ok {
		return Attribute{}, fmt.Errorf("table %s has no index %q", s.Name, name)
	}
	return attr, nil
}

func (s TableSpec) counter(field string) (Attribute, error) {
	attr, ok := s.Counters[field]
	if !ok {
		return Attribute{}, fmt.Errorf("table %s has no counter %q", s.Name, field)
	}
	return attr, nil
}

// Table is a partition+sort key table with equality lookups on secondary indexes.
// sk is ignored by tables without a sort key.
type Table[T any] interface {
	// Put inserts or overwrites the row with item's key
	Put(ctx context.Context, item *T) error
	// Get returns the row for the key, or nil when absent
	Get(ctx context.Context, pk string, sk any) (*T, error)
	// Delete removes the row for the key. Deleting a missing row is not an error.
	Delete(ctx context.Context, pk string, sk any) error
	// QueryPartition returns every row sharing the partition key
	QueryPartition(ctx context.Context, pk string) ([]T, error)
	// QueryIndex returns every row whose indexed attribute equals value
	QueryIndex(ctx context.Context, index string, value any) ([]T, error)
	// Scan returns every row of the table, following continuations until exhausted
	Scan(ctx context.Context) ([]T, error)
	// Increment atomically adds delta to a counter attribute of an existing row
	Increment(ctx context.Context, pk string, sk any, field string, delta int64) error
}

// Index names
const (
	IndexAddress           = "address-index"
	IndexCategory          = "category-index"
	IndexCreatorAddress    = "creatorAddress-index"
	IndexDotID             = "dotId-index"
	IndexCollectionID      = "collectionId-index"
	IndexCollectionAddress = "collectionAddress-index"
	IndexNFTID             = "nftId-index"
	IndexUserID            = "userId-index"
	IndexUserTag           = "userTag-index"
)

// Counter attribute names
const (
	CounterScanCount = "scanCount"
	CounterViewCount = "viewCount"
)

var (
	versionAttr = &Attribute{Name: "version", Column: "version"}
	userIDAttr  = Attribute{Name: "userId", Column: "user_id"}
)

// CollectionsSpec describes the versioned collections table
func CollectionsSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "collectionId", Column: "collection_id"},
		Sort:      versionAttr,
		Indexes: map[string]Attribute{
			IndexAddress:        {Name: "address", Column: "address"},
			IndexCategory:       {Name: "category", Column: "category"},
			IndexCreatorAddress: {Name: "creatorAddress", Column: "creator_address"},
		},
	}
}

// NFTsSpec describes the versioned NFTs table
func NFTsSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "nftId", Column: "nft_id"},
		Sort:      versionAttr,
		Indexes: map[string]Attribute{
			IndexDotID:             {Name: "dotId", Column: "dot_id"},
			IndexCollectionID:      {Name: "collectionId", Column: "collection_id"},
			IndexCollectionAddress: {Name: "collectionAddress", Column: "collection_address"},
		},
		Counters: map[string]Attribute{
			CounterScanCount: {Name: "scanCount", Column: "scan_count"},
			CounterViewCount: {Name: "viewCount", Column: "view_count"},
		},
	}
}

// AssetsSpec describes the assets table
func AssetsSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "assetId", Column: "asset_id"},
		Indexes: map[string]Attribute{
			IndexNFTID: {Name: "nftId", Column: "nft_id"},
		},
	}
}

// CollectionLikesSpec describes the collection likes table
func CollectionLikesSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "collectionId", Column: "collection_id"},
		Sort:      &userIDAttr,
		Indexes:   map[string]Attribute{IndexUserID: userIDAttr},
	}
}

// NFTLikesSpec describes the NFT likes table
func NFTLikesSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "nftId", Column: "nft_id"},
		Sort:      &userIDAttr,
		Indexes:   map[string]Attribute{IndexUserID: userIDAttr},
	}
}

// WalletsSpec describes the wallets table
func WalletsSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "address", Column: "address"},
		Sort:      &Attribute{Name: "chain", Column: "chain"},
		Indexes:   map[string]Attribute{IndexUserID: userIDAttr},
	}
}

// UsersSpec describes the users table
func UsersSpec(name string) TableSpec {
	return TableSpec{
		Name:      name,
		Partition: Attribute{Name: "userId", Column: "user_id"},
		Indexes: map[string]Attribute{
			IndexUserTag: {Name: "userTag", Column: "user_tag"},
		},
	}
}
