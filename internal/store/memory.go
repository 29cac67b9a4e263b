package store

import (
	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

type memoryFactory struct{}

func (memoryFactory) collections(spec TableSpec) Table[schema.Collection] {
	return NewMemoryTable[schema.Collection](spec)
}

func (memoryFactory) nfts(spec TableSpec) Table[schema.NFT] {
	return NewMemoryTable[schema.NFT](spec)
}

func (memoryFactory) assets(spec TableSpec) Table[schema.Asset] {
	return NewMemoryTable[schema.Asset](spec)
}

func (memoryFactory) collectionLikes(spec TableSpec) Table[schema.CollectionLike] {
	return NewMemoryTable[schema.CollectionLike](spec)
}

func (memoryFactory) nftLikes(spec TableSpec) Table[schema.NFTLike] {
	return NewMemoryTable[schema.NFTLike](spec)
}

func (memoryFactory) wallets(spec TableSpec) Table[schema.Wallet] {
	return NewMemoryTable[schema.Wallet](spec)
}

func (memoryFactory) users(spec TableSpec) Table[schema.User] {
	return NewMemoryTable[schema.User](spec)
}

// NewMemoryStore creates a store held entirely in process memory
func NewMemoryStore(clock adapter.Clock) *Store {
	return newStore(memoryFactory{}, TableNames{}, clock)
}
