package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/domain"
)

// Versioned is an entity stored as immutable (id, version) rows
type Versioned interface {
	EntityID() string
	EntityVersion() int
}

// stamper is implemented by pointer receivers of versioned schema types
type stamper interface {
	Stamp(version int, at int64)
}

// VersionedStore is an append-only store of entity versions. The current version
// of an entity is always its maximum version; the isLatest flag carried by rows
// is informational and never demoted.
type VersionedStore[T Versioned] struct {
	table Table[T]
	clock adapter.Clock
}

// NewVersionedStore wraps table as a versioned store
func NewVersionedStore[T Versioned](table Table[T], clock adapter.Clock) *VersionedStore[T] {
	return &VersionedStore[T]{table: table, clock: clock}
}

// Put writes entity as-is. Writing an existing (id, version) silently overwrites it.
func (s *VersionedStore[T]) Put(ctx context.Context, entity T) error {
	return s.table.Put(ctx, &entity)
}

// GetLatest returns the highest version of id, or the zero value when id has no rows
func (s *VersionedStore[T]) GetLatest(ctx context.Context, id string) (T, error) {
	var zero T
	rows, err := s.table.QueryPartition(ctx, id)
	if err != nil {
		return zero, err
	}
	return Latest(rows), nil
}

// GetVersion returns one specific version of id, or the zero value
func (s *VersionedStore[T]) GetVersion(ctx context.Context, id string, version int) (T, error) {
	var zero T
	row, err := s.table.Get(ctx, id, version)
	if err != nil || row == nil {
		return zero, err
	}
	return *row, nil
}

// GetByIndex returns every row matching value on index, all versions included
func (s *VersionedStore[T]) GetByIndex(ctx context.Context, index string, value string) ([]T, error) {
	return s.table.QueryIndex(ctx, index, value)
}

// GetLatestByIndex returns the highest-versioned row matching value on index
func (s *VersionedStore[T]) GetLatestByIndex(ctx context.Context, index string, value string) (T, error) {
	var zero T
	rows, err := s.table.QueryIndex(ctx, index, value)
	if err != nil {
		return zero, err
	}
	return Latest(rows), nil
}

// ScanAll returns every row of every entity
func (s *VersionedStore[T]) ScanAll(ctx context.Context) ([]T, error) {
	return s.table.Scan(ctx)
}

// Delete removes one version. Used by fixtures and maintenance only.
func (s *VersionedStore[T]) Delete(ctx context.Context, id string, version int) error {
	return s.table.Delete(ctx, id, version)
}

// Increment adds delta to a counter on the current version of id
func (s *VersionedStore[T]) Increment(ctx context.Context, id string, field string, delta int64) error {
	latest, err := s.GetLatest(ctx, id)
	if err != nil {
		return err
	}
	if latest.EntityID() == "" {
		return domain.NotFoundf("entity %s", id)
	}
	return s.table.Increment(ctx, id, latest.EntityVersion(), field, delta)
}

// AppendVersion reads the current version of id, applies mutate to a copy and
// writes it as version+1 with isLatest set. Earlier rows are left untouched.
func (s *VersionedStore[T]) AppendVersion(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	latest, err := s.GetLatest(ctx, id)
	if err != nil {
		return zero, err
	}
	if latest.EntityID() == "" {
		return zero, domain.NotFoundf("entity %s", id)
	}

	next := latest
	if mutate != nil {
		if err := mutate(&next); err != nil {
			return zero, err
		}
	}

	if next.EntityID() != id {
		return zero, domain.Validationf("mutation changed entity id from %s to %s", id, next.EntityID())
	}

	st, ok := any(&next).(stamper)
	if !ok {
		return zero, fmt.Errorf("%T cannot be stamped with a version", next)
	}
	st.Stamp(latest.EntityVersion()+1, adapter.Millis(s.clock.Now()))

	if err := s.table.Put(ctx, &next); err != nil {
		return zero, err
	}
	return next, nil
}

// Latest returns the row with the highest version, or the zero value for no rows.
// Rows are sorted by version descending; ties keep their fetched order.
func Latest[T Versioned](rows []T) T {
	var zero T
	if len(rows) == 0 {
		return zero
	}
	sorted := make([]T, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntityVersion() > sorted[j].EntityVersion()
	})
	return sorted[0]
}

// LatestPerEntity collapses rows to the highest version of each entity id,
// keeping the order in which ids first appear.
func LatestPerEntity[T Versioned](rows []T) []T {
	best := make(map[string]int, len(rows))
	var out []T
	for _, row := range rows {
		i, seen := best[row.EntityID()]
		if !seen {
			best[row.EntityID()] = len(out)
			out = append(out, row)
			continue
		}
		if row.EntityVersion() > out[i].EntityVersion() {
			out[i] = row
		}
	}
	return out
}
