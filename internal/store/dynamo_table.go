package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/domain"
)

type dynamoTable[T any] struct {
	client adapter.DynamoDBClient
	spec   TableSpec
}

// NewDynamoTable creates a DynamoDB-backed table. Items are (un)marshalled
// through their `dynamodbav` tags.
func NewDynamoTable[T any](client adapter.DynamoDBClient, spec TableSpec) Table[T] {
	return &dynamoTable[T]{client: client, spec: spec}
}

func (t *dynamoTable[T]) key(pk string, sk any) (map[string]types.AttributeValue, error) {
	key := map[string]types.AttributeValue{
		t.spec.Partition.Name: &types.AttributeValueMemberS{Value: pk},
	}
	if t.spec.Sort != nil {
		av, err := attributevalue.Marshal(sk)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal sort key: %w", err)
		}
		key[t.spec.Sort.Name] = av
	}
	return key, nil
}

func (t *dynamoTable[T]) Put(ctx context.Context, item *T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal %s item: %w", t.spec.Name, err)
	}

	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.spec.Name),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put into %s: %w", t.spec.Name, err)
	}
	return nil
}

func (t *dynamoTable[T]) Get(ctx context.Context, pk string, sk any) (*T, error) {
	key, err := t.key(pk, sk)
	if err != nil {
		return nil, err
	}

	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.spec.Name),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get from %s: %w", t.spec.Name, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s item: %w", t.spec.Name, err)
	}
	return &item, nil
}

func (t *dynamoTable[T]) Delete(ctx context.Context, pk string, sk any) error {
	key, err := t.key(pk, sk)
	if err != nil {
		return err
	}

	_, err = t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.spec.Name),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.spec.Name, err)
	}
	return nil
}

func (t *dynamoTable[T]) QueryPartition(ctx context.Context, pk string) ([]T, error) {
	return t.query(ctx, nil, t.spec.Partition.Name, pk)
}

func (t *dynamoTable[T]) QueryIndex(ctx context.Context, index string, value any) ([]T, error) {
	attr, err := t.spec.index(index)
	if err != nil {
		return nil, err
	}
	return t.query(ctx, aws.String(index), attr.Name, value)
}

func (t *dynamoTable[T]) query(ctx context.Context, index *string, attr string, value any) ([]T, error) {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key condition value: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(t.spec.Name),
		IndexName:                 index,
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": av},
	}

	var items []T
	for {
		out, err := t.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", t.spec.Name, err)
		}

		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s items: %w", t.spec.Name, err)
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (t *dynamoTable[T]) Scan(ctx context.Context) ([]T, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(t.spec.Name),
	}

	var items []T
	for {
		out, err := t.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.spec.Name, err)
		}

		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s items: %w", t.spec.Name, err)
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (t *dynamoTable[T]) Increment(ctx context.Context, pk string, sk any, field string, delta int64) error {
	attr, err := t.spec.counter(field)
	if err != nil {
		return err
	}
	key, err := t.key(pk, sk)
	if err != nil {
		return err
	}
	d, err := attributevalue.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to marshal delta: %w", err)
	}

	// attribute_exists keeps ADD from materialising a row for a missing key
	_, err = t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.spec.Name),
		Key:                       key,
		UpdateExpression:          aws.String("ADD #f :d"),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  map[string]string{"#f": attr.Name, "#pk": t.spec.Partition.Name},
		ExpressionAttributeValues: map[string]types.AttributeValue{":d": d},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return domain.NotFoundf("%s row %s", t.spec.Name, pk)
		}
		return fmt.Errorf("failed to increment %s on %s: %w", field, t.spec.Name, err)
	}
	return nil
}
