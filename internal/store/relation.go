package store

import (
	"context"

	"github.com/feral-file/ff-catalog/internal/adapter"
)

// Relation is a (subject, user) pair whose existence is the relation itself
type Relation interface {
	SubjectID() string
	LikedBy() string
}

// RelationStore keeps like relations keyed by (subjectId, userId) with a reverse
// index on userId. Both Like and Unlike are idempotent.
type RelationStore[T Relation] struct {
	table Table[T]
	clock adapter.Clock
	build func(subjectID, userID string, createdAt int64) T
}

// NewRelationStore wraps table. build constructs a relation row for a pair.
func NewRelationStore[T Relation](table Table[T], clock adapter.Clock, build func(subjectID, userID string, createdAt int64) T) *RelationStore[T] {
	return &RelationStore[T]{table: table, clock: clock, build: build}
}

// Like records the relation. Liking again overwrites the row with a new timestamp.
func (s *RelationStore[T]) Like(ctx context.Context, subjectID, userID string) (T, error) {
	rel := s.build(subjectID, userID, adapter.Millis(s.clock.Now()))
	if err := s.table.Put(ctx, &rel); err != nil {
		var zero T
		return zero, err
	}
	return rel, nil
}

// Unlike removes the relation if present
func (s *RelationStore[T]) Unlike(ctx context.Context, subjectID, userID string) error {
	return s.table.Delete(ctx, subjectID, userID)
}

// GetRelation returns the relation, or nil if the user has not liked the subject
func (s *RelationStore[T]) GetRelation(ctx context.Context, subjectID, userID string) (*T, error) {
	return s.table.Get(ctx, subjectID, userID)
}

// ListByUser returns every relation made by userID
func (s *RelationStore[T]) ListByUser(ctx context.Context, userID string) ([]T, error) {
	return s.table.QueryIndex(ctx, IndexUserID, userID)
}
