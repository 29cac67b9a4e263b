package store

import (
	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

type dynamoFactory struct {
	client adapter.DynamoDBClient
}

func (f dynamoFactory) collections(spec TableSpec) Table[schema.Collection] {
	return NewDynamoTable[schema.Collection](f.client, spec)
}

func (f dynamoFactory) nfts(spec TableSpec) Table[schema.NFT] {
	return NewDynamoTable[schema.NFT](f.client, spec)
}

func (f dynamoFactory) assets(spec TableSpec) Table[schema.Asset] {
	return NewDynamoTable[schema.Asset](f.client, spec)
}

func (f dynamoFactory) collectionLikes(spec TableSpec) Table[schema.CollectionLike] {
	return NewDynamoTable[schema.CollectionLike](f.client, spec)
}

func (f dynamoFactory) nftLikes(spec TableSpec) Table[schema.NFTLike] {
	return NewDynamoTable[schema.NFTLike](f.client, spec)
}

func (f dynamoFactory) wallets(spec TableSpec) Table[schema.Wallet] {
	return NewDynamoTable[schema.Wallet](f.client, spec)
}

func (f dynamoFactory) users(spec TableSpec) Table[schema.User] {
	return NewDynamoTable[schema.User](f.client, spec)
}

// NewDynamoStore creates a store backed by DynamoDB tables
func NewDynamoStore(client adapter.DynamoDBClient, names TableNames, clock adapter.Clock) *Store {
	return newStore(dynamoFactory{client: client}, names, clock)
}
