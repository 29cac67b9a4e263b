package catalog

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/domain"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/store/schema"
	"github.com/feral-file/ff-catalog/internal/worker"
)

// Relation reports whether a user likes a subject
type Relation struct {
	IsLiked bool `json:"isLiked"`
}

func requireLikePair(subject, subjectID, userID string) error {
	if subjectID == "" || userID == "" {
		return domain.Validationf("%s and userId must be present", subject)
	}
	return nil
}

func (e *Engine) LikeCollection(ctx context.Context, collectionID, userID string) error {
	if err := requireLikePair("collectionId", collectionID, userID); err != nil {
		return err
	}
	_, err := e.store.CollectionLikes.Like(ctx, collectionID, userID)
	return err
}

func (e *Engine) UnlikeCollection(ctx context.Context, collectionID, userID string) error {
	if err := requireLikePair("collectionId", collectionID, userID); err != nil {
		return err
	}
	return e.store.CollectionLikes.Unlike(ctx, collectionID, userID)
}

func (e *Engine) CollectionRelation(ctx context.Context, collectionID, userID string) (Relation, error) {
	if err := requireLikePair("collectionId", collectionID, userID); err != nil {
		return Relation{}, err
	}
	rel, err := e.store.CollectionLikes.GetRelation(ctx, collectionID, userID)
	if err != nil {
		return Relation{}, err
	}
	return Relation{IsLiked: rel != nil}, nil
}

// LikedCollections dereferences every collection liked by userID, optionally
// restricted to one chain
func (e *Engine) LikedCollections(ctx context.Context, userID, chain string) ([]schema.Collection, error) {
	rels, err := e.store.CollectionLikes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	collections, err := dereference(ctx, e, rels, e.store.Collections)
	if err != nil {
		return nil, err
	}
	if chain != "" {
		collections = keep(collections, func(c schema.Collection) bool { return c.Chain == chain })
	}
	return collections, nil
}

func (e *Engine) LikeNFT(ctx context.Context, nftID, userID string) error {
	if err := requireLikePair("nftId", nftID, userID); err != nil {
		return err
	}
	_, err := e.store.NFTLikes.Like(ctx, nftID, userID)
	return err
}

func (e *Engine) UnlikeNFT(ctx context.Context, nftID, userID string) error {
	if err := requireLikePair("nftId", nftID, userID); err != nil {
		return err
	}
	return e.store.NFTLikes.Unlike(ctx, nftID, userID)
}

func (e *Engine) NFTRelation(ctx context.Context, nftID, userID string) (Relation, error) {
	if err := requireLikePair("nftId", nftID, userID); err != nil {
		return Relation{}, err
	}
	rel, err := e.store.NFTLikes.GetRelation(ctx, nftID, userID)
	if err != nil {
		return Relation{}, err
	}
	return Relation{IsLiked: rel != nil}, nil
}

// LikedNFTs dereferences every NFT liked by userID, optionally restricted to one chain
func (e *Engine) LikedNFTs(ctx context.Context, userID, chain string) ([]schema.NFT, error) {
	rels, err := e.store.NFTLikes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	nfts, err := dereference(ctx, e, rels, e.store.NFTs)
	if err != nil {
		return nil, err
	}
	if chain != "" {
		nfts = keep(nfts, func(n schema.NFT) bool { return n.Chain == chain })
	}
	return nfts, nil
}

// dereference fetches the current version of each liked subject, one lookup
// per relation. Subjects that no longer exist are dropped.
func dereference[T store.Versioned, R store.Relation](ctx context.Context, e *Engine, rels []R, versions *store.VersionedStore[T]) ([]T, error) {
	entities, err := worker.FanOut(ctx, e.pool, rels, func(ctx context.Context, rel R) (T, error) {
		return versions.GetLatest(ctx, rel.SubjectID())
	})
	if err != nil {
		return nil, err
	}
	return keep(entities, func(v T) bool { return v.EntityID() != "" }), nil
}
