package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// fakeDynamo records inputs and returns canned outputs. Methods not
// overridden panic through the nil embedded interface.
type fakeDynamo struct {
	store.DynamoAPI

	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteErr  error
	putErr     error

	puts    []*dynamodb.PutItemInput
	updates []*dynamodb.UpdateItemInput
	deletes []*dynamodb.DeleteItemInput
	queries []*dynamodb.QueryInput
}

func (f *fakeDynamo) GetItem(
	_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.GetItemOutput, error) {
	return f.getItem(in)
}

func (f *fakeDynamo) PutItem(
	_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(
	_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateItem == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateItem(in)
}

func (f *fakeDynamo) DeleteItem(
	_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.DeleteItemOutput, error) {
	f.deletes = append(f.deletes, in)
	return &dynamodb.DeleteItemOutput{}, f.deleteErr
}

func (f *fakeDynamo) Query(
	_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options),
) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	return f.query(in)
}

var testTables = store.DynamoTables{
	Watches:     "faredrop-watches",
	Snapshots:   "faredrop-price-snapshots",
	ActiveIndex: "active-watches-index",
}

func marshalItem(t *testing.T, v map[string]any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func rawWatch(watchID, updatedAt, active string) map[string]any {
	return map[string]any{
		"userId":         "user-1",
		"watchId":        watchID,
		"origin":         "JFK",
		"destination":    "LAX",
		"departureDate":  "2099-01-01",
		"priceThreshold": 500.0,
		"currency":       "USD",
		"isActive":       active,
		"createdAt":      "2026-10-01T00:00:00Z",
		"updatedAt":      updatedAt,
	}
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func TestDynamoStore_GetWatch(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "faredrop-watches", aws.ToString(in.TableName))
			return &dynamodb.GetItemOutput{
				Item: marshalItem(t, rawWatch("w-1", "2026-10-02T00:00:00Z", "false")),
			}, nil
		}}
		s := store.NewDynamoStore(fake, testTables)

		w, err := s.GetWatch(context.Background(), "user-1", "w-1")
		require.NoError(t, err)
		assert.Equal(t, "w-1", w.WatchID)
		assert.False(t, w.IsActive)
		assert.Nil(t, w.LastAlertSent)
		assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), w.UpdatedAt)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		}}
		s := store.NewDynamoStore(fake, testTables)

		_, err := s.GetWatch(context.Background(), "user-2", "w-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDynamoStore_CreateWatch(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{}
	s := store.NewDynamoStore(fake, testTables)

	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	err := s.CreateWatch(context.Background(), &domain.Watch{
		WatchID:        "w-1",
		UserID:         "user-1",
		Origin:         "JFK",
		Destination:    "LAX",
		DepartureDate:  "2099-01-01",
		PriceThreshold: 500,
		Currency:       "USD",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)

	put := fake.puts[0]
	assert.Equal(t, "attribute_not_exists(watchId)", aws.ToString(put.ConditionExpression))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "true"}, put.Item["isActive"])
	assert.NotContains(t, put.Item, "returnDate")
	assert.NotContains(t, put.Item, "lastPrice")
}

func TestDynamoStore_UpdateWatch(t *testing.T) {
	t.Parallel()

	updatedAt := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)

	t.Run("sets only provided fields", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			raw := rawWatch("w-1", "2026-10-03T00:00:00Z", "false")
			raw["priceThreshold"] = 400.0
			return &dynamodb.UpdateItemOutput{Attributes: marshalItem(t, raw)}, nil
		}}
		s := store.NewDynamoStore(fake, testTables)

		threshold := 400.0
		active := false
		w, err := s.UpdateWatch(context.Background(), "user-1", "w-1",
			&domain.WatchPatch{PriceThreshold: &threshold, IsActive: &active}, updatedAt)
		require.NoError(t, err)
		assert.InDelta(t, 400.0, w.PriceThreshold, 0.001)
		assert.False(t, w.IsActive)

		require.Len(t, fake.updates, 1)
		in := fake.updates[0]
		assert.Equal(t,
			"SET #priceThreshold = :priceThreshold, #isActive = :isActive, #updatedAt = :updatedAt",
			aws.ToString(in.UpdateExpression),
		)
		assert.Equal(t, "attribute_exists(userId)", aws.ToString(in.ConditionExpression))
		assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "false"}, in.ExpressionAttributeValues[":isActive"])
		assert.NotContains(t, in.ExpressionAttributeValues, ":departureDate")
	})

	t.Run("condition failure is not found", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionFailed()
		}}
		s := store.NewDynamoStore(fake, testTables)

		threshold := 400.0
		_, err := s.UpdateWatch(context.Background(), "user-2", "w-1",
			&domain.WatchPatch{PriceThreshold: &threshold}, updatedAt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, errors.New("throttled")
		}}
		s := store.NewDynamoStore(fake, testTables)

		threshold := 400.0
		_, err := s.UpdateWatch(context.Background(), "user-1", "w-1",
			&domain.WatchPatch{PriceThreshold: &threshold}, updatedAt)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "updating watch: throttled")
	})
}

func TestDynamoStore_DeleteWatch(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{}
	s := store.NewDynamoStore(fake, testTables)
	require.NoError(t, s.DeleteWatch(context.Background(), "user-1", "w-1"))
	assert.Equal(t, "attribute_exists(userId)", aws.ToString(fake.deletes[0].ConditionExpression))

	fake.deleteErr = conditionFailed()
	err := s.DeleteWatch(context.Background(), "user-1", "w-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDynamoStore_ListWatches_NewestFirst(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			marshalItem(t, rawWatch("older", "2026-10-01T00:00:00Z", "true")),
			marshalItem(t, rawWatch("newest", "2026-10-05T00:00:00Z", "true")),
			marshalItem(t, rawWatch("middle", "2026-10-03T00:00:00Z", "false")),
		}}, nil
	}}
	s := store.NewDynamoStore(fake, testTables)

	watches, err := s.ListWatches(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, watches, 3)
	assert.Equal(t, "newest", watches[0].WatchID)
	assert.Equal(t, "middle", watches[1].WatchID)
	assert.Equal(t, "older", watches[2].WatchID)
	assert.Equal(t, "userId = :userId", aws.ToString(fake.queries[0].KeyConditionExpression))
}

func TestDynamoStore_ListActiveWatches_UsesIndex(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			marshalItem(t, rawWatch("w-1", "2026-10-01T00:00:00Z", "true")),
		}}, nil
	}}
	s := store.NewDynamoStore(fake, testTables)

	asOf := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	watches, err := s.ListActiveWatches(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, watches, 1)
	assert.True(t, watches[0].IsActive)

	in := fake.queries[0]
	assert.Equal(t, "active-watches-index", aws.ToString(in.IndexName))
	assert.Equal(t, "isActive = :active", aws.ToString(in.KeyConditionExpression))
	assert.Equal(t, "departureDate >= :today", aws.ToString(in.FilterExpression))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2026-10-19"}, in.ExpressionAttributeValues[":today"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "true"}, in.ExpressionAttributeValues[":active"])
}

func TestDynamoStore_RecordSnapshot(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{}
	s := store.NewDynamoStore(fake, testTables)

	now := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)
	snap := domain.NewPriceSnapshot("w-1", &domain.PriceResult{
		Price:    450,
		Currency: "USD",
		Source:   "amadeus",
	}, now, 7*24*time.Hour)

	require.NoError(t, s.RecordSnapshot(context.Background(), snap))
	require.Len(t, fake.puts, 1)

	item := fake.puts[0].Item
	assert.Equal(t, "faredrop-price-snapshots", aws.ToString(fake.puts[0].TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2026-10-01T06:00:00.000Z"}, item["timestamp"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1791439200"}, item["ttl"])
}

func TestDynamoStore_MarkAlertSent_Missing(t *testing.T) {
	t.Parallel()

	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return nil, conditionFailed()
	}}
	s := store.NewDynamoStore(fake, testTables)

	err := s.MarkAlertSent(context.Background(), "user-1", "gone", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDynamoStore_SchedulerLock(t *testing.T) {
	t.Parallel()

	t.Run("no locks table always acquires", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDynamo{}
		s := store.NewDynamoStore(fake, testTables)

		ok, err := s.AcquireSchedulerLock(context.Background(), "price-poll", "a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, fake.puts)
		require.NoError(t, s.ReleaseSchedulerLock(context.Background(), "price-poll", "a"))
	})

	t.Run("held by another holder", func(t *testing.T) {
		t.Parallel()

		tables := testTables
		tables.Locks = "faredrop-locks"
		fake := &fakeDynamo{putErr: conditionFailed()}
		s := store.NewDynamoStore(fake, tables)

		ok, err := s.AcquireSchedulerLock(context.Background(), "price-poll", "b", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("acquired", func(t *testing.T) {
		t.Parallel()

		tables := testTables
		tables.Locks = "faredrop-locks"
		fake := &fakeDynamo{}
		s := store.NewDynamoStore(fake, tables)

		ok, err := s.AcquireSchedulerLock(context.Background(), "price-poll", "a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, fake.puts, 1)
		assert.Equal(t, "faredrop-locks", aws.ToString(fake.puts[0].TableName))
	})
}

func TestDynamoStore_DeleteExpiredSnapshots_NoOp(t *testing.T) {
	t.Parallel()

	s := store.NewDynamoStore(&fakeDynamo{}, testTables)
	n, err := s.DeleteExpiredSnapshots(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}
