package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-catalog/internal/domain"
)

// scanPageSize is the number of rows fetched per page during a full scan
const scanPageSize = 500

type gormTable[T any] struct {
	db   *gorm.DB
	spec TableSpec
}

// NewGormTable creates a PostgreSQL-backed table. T must be a gorm model whose
// primary key matches spec's partition and sort keys.
func NewGormTable[T any](db *gorm.DB, spec TableSpec) Table[T] {
	return &gormTable[T]{db: db, spec: spec}
}

func (t *gormTable[T]) keyed(ctx context.Context, pk string, sk any) *gorm.DB {
	q := t.db.WithContext(ctx).Where(t.spec.Partition.Column+" = ?", pk)
	if t.spec.Sort != nil {
		q = q.Where(t.spec.Sort.Column+" = ?", sk)
	}
	return q
}

func (t *gormTable[T]) orderByKey(q *gorm.DB) *gorm.DB {
	q = q.Order(t.spec.Partition.Column)
	if t.spec.Sort != nil {
		q = q.Order(t.spec.Sort.Column)
	}
	return q
}

func (t *gormTable[T]) Put(ctx context.Context, item *T) error {
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to put into %s: %w", t.spec.Name, err)
	}
	return nil
}

func (t *gormTable[T]) Get(ctx context.Context, pk string, sk any) (*T, error) {
	var item T
	err := t.keyed(ctx, pk, sk).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get from %s: %w", t.spec.Name, err)
	}
	return &item, nil
}

func (t *gormTable[T]) Delete(ctx context.Context, pk string, sk any) error {
	var item T
	if err := t.keyed(ctx, pk, sk).Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.spec.Name, err)
	}
	return nil
}

func (t *gormTable[T]) QueryPartition(ctx context.Context, pk string) ([]T, error) {
	var items []T
	q := t.db.WithContext(ctx).Where(t.spec.Partition.Column+" = ?", pk)
	if err := t.orderByKey(q).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.spec.Name, err)
	}
	return items, nil
}

func (t *gormTable[T]) QueryIndex(ctx context.Context, index string, value any) ([]T, error) {
	attr, err := t.spec.index(index)
	if err != nil {
		return nil, err
	}

	var items []T
	q := t.db.WithContext(ctx).Where(attr.Column+" = ?", value)
	if err := t.orderByKey(q).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s on %s: %w", t.spec.Name, index, err)
	}
	return items, nil
}

func (t *gormTable[T]) Scan(ctx context.Context) ([]T, error) {
	var all []T
	for offset := 0; ; offset += scanPageSize {
		var page []T
		q := t.orderByKey(t.db.WithContext(ctx)).Limit(scanPageSize).Offset(offset)
		if err := q.Find(&page).Error; err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.spec.Name, err)
		}
		all = append(all, page...)
		if len(page) < scanPageSize {
			return all, nil
		}
	}
}

func (t *gormTable[T]) Increment(ctx context.Context, pk string, sk any, field string, delta int64) error {
	attr, err := t.spec.counter(field)
	if err != nil {
		return err
	}

	var model T
	result := t.keyed(ctx, pk, sk).
		Model(&model).
		UpdateColumn(attr.Column, gorm.Expr(attr.Column+" + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment %s on %s: %w", field, t.spec.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("%s row %s", t.spec.Name, pk)
	}
	return nil
}
