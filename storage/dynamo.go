package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// ErrPreconditionFailed is returned when a conditional write was rejected
// because the target record's existence assumption was violated. Handlers map
// it to a domain-specific 404, never a generic failure.
var ErrPreconditionFailed = errors.New("storage: precondition failed")

// Item is a raw DynamoDB item.
type Item = map[string]*dynamodb.AttributeValue

// DynamoAPI is the subset of the DynamoDB client used by Table. The real
// *dynamodb.DynamoDB satisfies it; tests substitute a mock.
type DynamoAPI interface {
	GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error)
	PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error)
	UpdateItemWithContext(ctx aws.Context, in *dynamodb.UpdateItemInput, opts ...request.Option) (*dynamodb.UpdateItemOutput, error)
	DeleteItemWithContext(ctx aws.Context, in *dynamodb.DeleteItemInput, opts ...request.Option) (*dynamodb.DeleteItemOutput, error)
	QueryWithContext(ctx aws.Context, in *dynamodb.QueryInput, opts ...request.Option) (*dynamodb.QueryOutput, error)
	ScanWithContext(ctx aws.Context, in *dynamodb.ScanInput, opts ...request.Option) (*dynamodb.ScanOutput, error)
}

// Table wraps one DynamoDB table behind the narrow contract the handlers
// consume: get/put/update/delete plus query and scan with transparent
// pagination into a single in-memory collection.
type Table struct {
	api  DynamoAPI
	name string
	log  *slog.Logger
}

// NewTable creates a Table accessor for the named DynamoDB table.
func NewTable(api DynamoAPI, name string, log *slog.Logger) *Table {
	return &Table{api: api, name: name, log: log}
}

// Name returns the underlying table name.
func (t *Table) Name() string { return t.name }

// Get fetches the item stored under key, or nil when absent.
func (t *Table) Get(ctx context.Context, key Item) (Item, error) {
	out, err := t.api.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get from %s: %w", t.name, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// Put upserts item.
func (t *Table) Put(ctx context.Context, item Item) error {
	_, err := t.api.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put into %s: %w", t.name, err)
	}
	return nil
}

// UpdateSpec describes one conditional or unconditional update.
type UpdateSpec struct {
	Key        Item
	Expression string
	Names      map[string]*string
	Values     Item

	// RequireExists, when set, adds an attribute_exists condition on the named
	// attribute. A violated condition surfaces as ErrPreconditionFailed.
	RequireExists string
}

// Update applies spec to the item stored under spec.Key.
func (t *Table) Update(ctx context.Context, spec UpdateSpec) error {
	in := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       spec.Key,
		UpdateExpression:          aws.String(spec.Expression),
		ExpressionAttributeValues: spec.Values,
	}
	if len(spec.Names) > 0 {
		in.ExpressionAttributeNames = spec.Names
	}
	if spec.RequireExists != "" {
		in.ConditionExpression = aws.String("attribute_exists(" + spec.RequireExists + ")")
	}
	if _, err := t.api.UpdateItemWithContext(ctx, in); err != nil {
		if isConditionalCheckFailed(err) {
			return ErrPreconditionFailed
		}
		return fmt.Errorf("update in %s: %w", t.name, err)
	}
	return nil
}

// Delete removes the item stored under key. Deleting an absent item is not an
// error.
func (t *Table) Delete(ctx context.Context, key Item) error {
	_, err := t.api.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", t.name, err)
	}
	return nil
}

// QueryAll runs in against the table and follows LastEvaluatedKey until the
// result set is exhausted. in.TableName is set by the wrapper.
func (t *Table) QueryAll(ctx context.Context, in *dynamodb.QueryInput) ([]Item, error) {
	in.TableName = aws.String(t.name)
	var items []Item
	for {
		out, err := t.api.QueryWithContext(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", t.name, err)
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// ScanAll runs in against the table and follows LastEvaluatedKey until the
// result set is exhausted. in.TableName is set by the wrapper.
func (t *Table) ScanAll(ctx context.Context, in *dynamodb.ScanInput) ([]Item, error) {
	in.TableName = aws.String(t.name)
	var items []Item
	for {
		out, err := t.api.ScanWithContext(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func isConditionalCheckFailed(err error) bool {
	var awsErr awserr.Error
	return errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}
