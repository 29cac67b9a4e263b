package store

import (
	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

// Store groups every catalog table. All persistence goes through it.
type Store struct {
	Collections     *VersionedStore[schema.Collection]
	NFTs            *VersionedStore[schema.NFT]
	Assets          Table[schema.Asset]
	Wallets         Table[schema.Wallet]
	Users           Table[schema.User]
	CollectionLikes *RelationStore[schema.CollectionLike]
	NFTLikes        *RelationStore[schema.NFTLike]
}

// TableNames holds the physical table names. Empty names fall back to the
// gorm model table names.
type TableNames struct {
	Collections     string
	NFTs            string
	Assets          string
	CollectionLikes string
	NFTLikes        string
	Wallets         string
	Users           string
}

// WithDefaults fills empty names from the schema models
func (n TableNames) WithDefaults() TableNames {
	if n.Collections == "" {
		n.Collections = schema.Collection{}.TableName()
	}
	if n.NFTs == "" {
		n.NFTs = schema.NFT{}.TableName()
	}
	if n.Assets == "" {
		n.Assets = schema.Asset{}.TableName()
	}
	if n.CollectionLikes == "" {
		n.CollectionLikes = schema.CollectionLike{}.TableName()
	}
	if n.NFTLikes == "" {
		n.NFTLikes = schema.NFTLike{}.TableName()
	}
	if n.Wallets == "" {
		n.Wallets = schema.Wallet{}.TableName()
	}
	if n.Users == "" {
		n.Users = schema.User{}.TableName()
	}
	return n
}

// tableFactory creates a backend table for a spec
type tableFactory interface {
	collections(spec TableSpec) Table[schema.Collection]
	nfts(spec TableSpec) Table[schema.NFT]
	assets(spec TableSpec) Table[schema.Asset]
	collectionLikes(spec TableSpec) Table[schema.CollectionLike]
	nftLikes(spec TableSpec) Table[schema.NFTLike]
	wallets(spec TableSpec) Table[schema.Wallet]
	users(spec TableSpec) Table[schema.User]
}

func newStore(f tableFactory, names TableNames, clock adapter.Clock) *Store {
	names = names.WithDefaults()
	return &Store{
		Collections: NewVersionedStore(f.collections(CollectionsSpec(names.Collections)), clock),
		NFTs:        NewVersionedStore(f.nfts(NFTsSpec(names.NFTs)), clock),
		Assets:      f.assets(AssetsSpec(names.Assets)),
		Wallets:     f.wallets(WalletsSpec(names.Wallets)),
		Users:       f.users(UsersSpec(names.Users)),
		CollectionLikes: NewRelationStore(f.collectionLikes(CollectionLikesSpec(names.CollectionLikes)), clock,
			func(subjectID, userID string, createdAt int64) schema.CollectionLike {
				return schema.CollectionLike{CollectionID: subjectID, UserID: userID, CreatedAt: createdAt}
			}),
		NFTLikes: NewRelationStore(f.nftLikes(NFTLikesSpec(names.NFTLikes)), clock,
			func(subjectID, userID string, createdAt int64) schema.NFTLike {
				return schema.NFTLike{NFTID: subjectID, UserID: userID, CreatedAt: createdAt}
			}),
	}
}
