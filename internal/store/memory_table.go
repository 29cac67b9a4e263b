package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/feral-file/ff-catalog/internal/domain"
)

// memoryTable keeps items in their DynamoDB attribute form so that key and
// index matching follow the same `dynamodbav` mapping as the DynamoDB backend.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	spec  TableSpec
	items map[string]map[string]types.AttributeValue
	order []string
}

// NewMemoryTable creates an in-process table for local runs and tests
func NewMemoryTable[T any](spec TableSpec) Table[T] {
	return &memoryTable[T]{
		spec:  spec,
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (t *memoryTable[T]) rowKey(pk string, sk any) string {
	if t.spec.Sort == nil {
		return pk
	}
	return fmt.Sprintf("%s\x00%v", pk, sk)
}

func (t *memoryTable[T]) itemKey(item map[string]types.AttributeValue) (string, error) {
	pk, ok := item[t.spec.Partition.Name].(*types.AttributeValueMemberS)
	if !ok || pk.Value == "" {
		return "", fmt.Errorf("item for %s is missing partition key %s", t.spec.Name, t.spec.Partition.Name)
	}
	if t.spec.Sort == nil {
		return pk.Value, nil
	}

	switch sk := item[t.spec.Sort.Name].(type) {
	case *types.AttributeValueMemberS:
		return t.rowKey(pk.Value, sk.Value), nil
	case *types.AttributeValueMemberN:
		n, err := strconv.ParseInt(sk.Value, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid numeric sort key %q: %w", sk.Value, err)
		}
		return t.rowKey(pk.Value, n), nil
	default:
		return "", fmt.Errorf("item for %s is missing sort key %s", t.spec.Name, t.spec.Sort.Name)
	}
}

func (t *memoryTable[T]) decode(av map[string]types.AttributeValue) (T, error) {
	var item T
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return item, fmt.Errorf("failed to unmarshal %s item: %w", t.spec.Name, err)
	}
	return item, nil
}

func (t *memoryTable[T]) Put(_ context.Context, item *T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal %s item: %w", t.spec.Name, err)
	}
	key, err := t.itemKey(av)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[key]; !exists {
		t.order = append(t.order, key)
	}
	t.items[key] = av
	return nil
}

func (t *memoryTable[T]) Get(_ context.Context, pk string, sk any) (*T, error) {
	t.mu.RLock()
	av, ok := t.items[t.rowKey(pk, sk)]
	t.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	item, err := t.decode(av)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *memoryTable[T]) Delete(_ context.Context, pk string, sk any) error {
	key := t.rowKey(pk, sk)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[key]; !ok {
		return nil
	}
	delete(t.items, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *memoryTable[T]) QueryPartition(_ context.Context, pk string) ([]T, error) {
	return t.filter(t.spec.Partition.Name, &types.AttributeValueMemberS{Value: pk})
}

func (t *memoryTable[T]) QueryIndex(_ context.Context, index string, value any) ([]T, error) {
	attr, err := t.spec.index(index)
	if err != nil {
		return nil, err
	}
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal index value: %w", err)
	}
	return t.filter(attr.Name, av)
}

func (t *memoryTable[T]) Scan(_ context.Context) ([]T, error) {
	return t.filter("", nil)
}

// filter returns items whose attr equals want, or all items when attr is empty
func (t *memoryTable[T]) filter(attr string, want types.AttributeValue) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []T
	for _, key := range t.order {
		av := t.items[key]
		if attr != "" && !attributeEqual(av[attr], want) {
			continue
		}
		item, err := t.decode(av)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (t *memoryTable[T]) Increment(_ context.Context, pk string, sk any, field string, delta int64) error {
	attr, err := t.spec.counter(field)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	av, ok := t.items[t.rowKey(pk, sk)]
	if !ok {
		return domain.NotFoundf("%s row %s", t.spec.Name, pk)
	}

	var current int64
	if n, ok := av[attr.Name].(*types.AttributeValueMemberN); ok {
		current, err = strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid counter %s: %w", field, err)
		}
	}
	av[attr.Name] = &types.AttributeValueMemberN{Value: strconv.FormatInt(current+delta, 10)}
	return nil
}

func attributeEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}
