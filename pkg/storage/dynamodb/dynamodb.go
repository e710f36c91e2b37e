// Package dynamodb implements the [storage.Table] boundary on AWS DynamoDB
// using a single-table layout: partition key pk, sort key sk, and a local
// secondary index byText over the text attribute for prefix search.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/sentinote/sentinote/pkg/storage"
)

// API is the slice of the DynamoDB client the table depends on, narrowed so
// tests can substitute a stub.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Table implements storage.Table on DynamoDB.
type Table struct {
	client API
	name   string
}

var _ storage.Table = (*Table)(nil)

// New wraps an existing client. Most callers want Connect instead.
func New(client API, tableName string) *Table {
	return &Table{client: client, name: tableName}
}

// Connect loads AWS configuration from the environment and returns a Table
// bound to tableName. A non-empty endpoint overrides the resolved service
// endpoint, which is how local DynamoDB instances are targeted.
func Connect(ctx context.Context, tableName, region, endpoint string) (*Table, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return New(client, tableName), nil
}

func (t *Table) Get(ctx context.Context, key storage.Key) (storage.Item, error) {
	avKey, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: marshal key: %w", err)
	}
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       avKey,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return unmarshalItem(out.Item)
}

func (t *Table) Put(ctx context.Context, item storage.Item) error {
	avItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamodb: marshal item: %w", err)
	}
	if _, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      avItem,
	}); err != nil {
		return fmt.Errorf("dynamodb: put item: %w", err)
	}
	return nil
}

func (t *Table) Query(ctx context.Context, q storage.Query) (*storage.Page, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("dynamodb: query limit must be positive, got %d", q.Limit)
	}

	sortAttr := storage.SortAttribute(q.Index)
	keyCondition := "#pk = :pk"
	names := map[string]string{"#pk": storage.AttrPartition}
	values := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: q.Partition},
	}
	if q.SortPrefix != "" {
		keyCondition += " AND begins_with(#sort, :prefix)"
		names["#sort"] = sortAttr
		values[":prefix"] = &types.AttributeValueMemberS{Value: q.SortPrefix}
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(t.name),
		KeyConditionExpression:    aws.String(keyCondition),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(q.Ascending),
		// One extra item decides whether a resume key is warranted; DynamoDB
		// alone would report a LastEvaluatedKey even when the final page
		// happens to be full.
		Limit: aws.Int32(int32(q.Limit) + 1),
	}
	if q.Index != "" {
		in.IndexName = aws.String(q.Index)
	}
	if q.StartKey != nil {
		avStart, err := attributevalue.MarshalMap(q.StartKey)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: marshal start key: %w", err)
		}
		in.ExclusiveStartKey = avStart
	}

	out, err := t.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: query: %w", err)
	}

	items := make([]storage.Item, 0, len(out.Items))
	for _, av := range out.Items {
		item, err := unmarshalItem(av)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	page := &storage.Page{}
	switch {
	case len(items) > q.Limit:
		page.Items = items[:q.Limit]
		page.LastKey = resumeKey(page.Items[q.Limit-1], q.Index)
	case out.LastEvaluatedKey != nil:
		// The service paged early (size cap); resume where it stopped.
		page.Items = items
		lastKey, err := unmarshalItem(out.LastEvaluatedKey)
		if err != nil {
			return nil, err
		}
		page.LastKey = storage.Key(lastKey)
	default:
		page.Items = items
	}
	return page, nil
}

func (t *Table) Close() error { return nil }

// EnsureTable creates the table with the byText local secondary index,
// matching the deployed definition: pk HASH, sk RANGE, and an LSI re-sorting
// the partition by the text attribute. Safe to call when the table already
// exists.
func (t *Table) EnsureTable(ctx context.Context) error {
	_, err := t.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(t.name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(storage.AttrPartition), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(storage.AttrSort), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(storage.AttrText), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(storage.AttrPartition), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(storage.AttrSort), KeyType: types.KeyTypeRange},
		},
		LocalSecondaryIndexes: []types.LocalSecondaryIndex{
			{
				IndexName: aws.String(storage.IndexByText),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(storage.AttrPartition), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String(storage.AttrText), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("dynamodb: create table %s: %w", t.name, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(t.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(t.name)}, 2*time.Minute); err != nil {
		return fmt.Errorf("dynamodb: wait for table %s: %w", t.name, err)
	}
	return nil
}

func unmarshalItem(av map[string]types.AttributeValue) (storage.Item, error) {
	var item storage.Item
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("dynamodb: unmarshal item: %w", err)
	}
	return item, nil
}

func resumeKey(item storage.Item, index string) storage.Key {
	key := storage.Key{
		storage.AttrPartition: item[storage.AttrPartition],
		storage.AttrSort:      item[storage.AttrSort],
	}
	if index == storage.IndexByText {
		key[storage.AttrText] = item[storage.AttrText]
	}
	return key
}
