package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinote/sentinote/pkg/storage"
)

type stubAPI struct {
	API
	getOut    *awssdk.GetItemOutput
	queryIn   *awssdk.QueryInput
	queryOut  *awssdk.QueryOutput
	createErr error
	created   bool
}

func (s *stubAPI) GetItem(ctx context.Context, in *awssdk.GetItemInput, _ ...func(*awssdk.Options)) (*awssdk.GetItemOutput, error) {
	return s.getOut, nil
}

func (s *stubAPI) Query(ctx context.Context, in *awssdk.QueryInput, _ ...func(*awssdk.Options)) (*awssdk.QueryOutput, error) {
	s.queryIn = in
	return s.queryOut, nil
}

func (s *stubAPI) CreateTable(ctx context.Context, in *awssdk.CreateTableInput, _ ...func(*awssdk.Options)) (*awssdk.CreateTableOutput, error) {
	s.created = true
	return nil, s.createErr
}

func avItem(pk, sk, text string) map[string]types.AttributeValue {
	m := map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: pk},
		"sk": &types.AttributeValueMemberS{Value: sk},
	}
	if text != "" {
		m["text"] = &types.AttributeValueMemberS{Value: text}
	}
	return m
}

func TestGetAbsent(t *testing.T) {
	tbl := New(&stubAPI{getOut: &awssdk.GetItemOutput{}}, "notes")
	item, err := tbl.Get(context.Background(), storage.Key{"pk": "NOTE", "sk": "NOTE#01A"})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestQueryTrimsExtraItemAndSynthesizesResumeKey(t *testing.T) {
	stub := &stubAPI{queryOut: &awssdk.QueryOutput{
		Items: []map[string]types.AttributeValue{
			avItem("NOTE", "NOTE#01C", ""),
			avItem("NOTE", "NOTE#01B", ""),
			avItem("NOTE", "NOTE#01A", ""),
		},
	}}
	tbl := New(stub, "notes")

	page, err := tbl.Query(context.Background(), storage.Query{Partition: "NOTE", SortPrefix: "NOTE#", Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "NOTE#01B", page.Items[1][storage.AttrSort])
	require.NotNil(t, page.LastKey)
	assert.Equal(t, storage.Key{"pk": "NOTE", "sk": "NOTE#01B"}, page.LastKey)

	// The service must have been asked for one extra item.
	require.NotNil(t, stub.queryIn)
	assert.Equal(t, int32(3), aws.ToInt32(stub.queryIn.Limit))
	assert.False(t, aws.ToBool(stub.queryIn.ScanIndexForward))
}

func TestQueryExhaustedOmitsResumeKey(t *testing.T) {
	stub := &stubAPI{queryOut: &awssdk.QueryOutput{
		Items: []map[string]types.AttributeValue{avItem("NOTE", "NOTE#01A", "")},
	}}
	tbl := New(stub, "notes")

	page, err := tbl.Query(context.Background(), storage.Query{Partition: "NOTE", SortPrefix: "NOTE#", Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.LastKey)
}

func TestQueryByTextResumeKeyCarriesText(t *testing.T) {
	stub := &stubAPI{queryOut: &awssdk.QueryOutput{
		Items: []map[string]types.AttributeValue{
			avItem("NOTE", "NOTE#01B", "hello there#01B"),
			avItem("NOTE", "NOTE#01A", "hello world#01A"),
		},
	}}
	tbl := New(stub, "notes")

	page, err := tbl.Query(context.Background(), storage.Query{
		Index:      storage.IndexByText,
		Partition:  "NOTE",
		SortPrefix: "hello",
		Ascending:  true,
		Limit:      1,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, storage.Key{
		"pk":   "NOTE",
		"sk":   "NOTE#01B",
		"text": "hello there#01B",
	}, page.LastKey)
	assert.Equal(t, "byText", aws.ToString(stub.queryIn.IndexName))
	assert.True(t, aws.ToBool(stub.queryIn.ScanIndexForward))
}

func TestQueryPassesThroughServicePaging(t *testing.T) {
	stub := &stubAPI{queryOut: &awssdk.QueryOutput{
		Items:            []map[string]types.AttributeValue{avItem("NOTE", "NOTE#01B", "")},
		LastEvaluatedKey: avItem("NOTE", "NOTE#01B", ""),
	}}
	tbl := New(stub, "notes")

	page, err := tbl.Query(context.Background(), storage.Query{Partition: "NOTE", SortPrefix: "NOTE#", Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, storage.Key{"pk": "NOTE", "sk": "NOTE#01B"}, page.LastKey)
}

func TestQueryRejectsNonPositiveLimit(t *testing.T) {
	tbl := New(&stubAPI{}, "notes")
	_, err := tbl.Query(context.Background(), storage.Query{Partition: "NOTE"})
	assert.Error(t, err)
}

func TestEnsureTableToleratesExisting(t *testing.T) {
	stub := &stubAPI{createErr: &types.ResourceInUseException{}}
	tbl := New(stub, "notes")
	require.NoError(t, tbl.EnsureTable(context.Background()))
	assert.True(t, stub.created)
}
