package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

const tableWaitTimeout = 2 * time.Minute

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	UpdateTimeToLive(ctx context.Context, in *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

// DynamoTables names the tables used by DynamoStore.
type DynamoTables struct {
	Watches     string
	Snapshots   string
	ActiveIndex string // GSI on (isActive, updatedAt); empty falls back to Scan
	Locks       string // optional; empty disables distributed locking
}

// DynamoStore implements Store on DynamoDB. Watches are partitioned by userId
// with watchId as sort key; snapshots by watchId with timestamp as sort key
// and expire through table TTL.
type DynamoStore struct {
	client DynamoAPI
	tables DynamoTables
}

// NewDynamoStore creates a DynamoStore over an existing client.
func NewDynamoStore(client DynamoAPI, tables DynamoTables) *DynamoStore {
	return &DynamoStore{client: client, tables: tables}
}

// Ping verifies the watches table is reachable.
func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tables.Watches),
	})
	if err != nil {
		return fmt.Errorf("describing watches table: %w", err)
	}
	return nil
}

// CreateWatch stores a new watch. A watchId collision is reported as an error
// rather than overwriting the existing row.
func (s *DynamoStore) CreateWatch(ctx context.Context, w *domain.Watch) error {
	item, err := attributevalue.MarshalMap(newWatchItem(w))
	if err != nil {
		return fmt.Errorf("marshaling watch: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tables.Watches),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(watchId)"),
	})
	if err != nil {
		return fmt.Errorf("creating watch: %w", err)
	}
	return nil
}

// GetWatch retrieves a watch owned by userID.
func (s *DynamoStore) GetWatch(ctx context.Context, userID, watchID string) (*domain.Watch, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tables.Watches),
		Key:            watchKey(userID, watchID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("getting watch: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}
	return unmarshalWatch(out.Item)
}

// ListWatches returns the user's watches, most recently updated first.
func (s *DynamoStore) ListWatches(ctx context.Context, userID string) ([]domain.Watch, error) {
	p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.tables.Watches),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})

	watches := []domain.Watch{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("querying watches: %w", err)
		}
		batch, err := unmarshalWatches(page.Items)
		if err != nil {
			return nil, err
		}
		watches = append(watches, batch...)
	}

	slices.SortStableFunc(watches, func(a, b domain.Watch) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return watches, nil
}

// ListActiveWatches returns active watches departing on or after asOf, across
// all users. It queries the active-watches GSI when configured and scans the
// table otherwise.
func (s *DynamoStore) ListActiveWatches(ctx context.Context, asOf time.Time) ([]domain.Watch, error) {
	values := map[string]types.AttributeValue{
		":active": &types.AttributeValueMemberS{Value: activeFlag(true)},
		":today":  &types.AttributeValueMemberS{Value: domain.FormatDate(asOf)},
	}

	var watches []domain.Watch
	collect := func(items []map[string]types.AttributeValue) error {
		batch, err := unmarshalWatches(items)
		if err != nil {
			return err
		}
		watches = append(watches, batch...)
		return nil
	}

	if s.tables.ActiveIndex != "" {
		p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
			TableName:                 aws.String(s.tables.Watches),
			IndexName:                 aws.String(s.tables.ActiveIndex),
			KeyConditionExpression:    aws.String("isActive = :active"),
			FilterExpression:          aws.String("departureDate >= :today"),
			ExpressionAttributeValues: values,
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("querying active watches: %w", err)
			}
			if err := collect(page.Items); err != nil {
				return nil, err
			}
		}
		return watches, nil
	}

	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(s.tables.Watches),
		FilterExpression:          aws.String("isActive = :active AND departureDate >= :today"),
		ExpressionAttributeValues: values,
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning active watches: %w", err)
		}
		if err := collect(page.Items); err != nil {
			return nil, err
		}
	}
	return watches, nil
}

// UpdateWatch applies patch to an existing watch owned by userID.
func (s *DynamoStore) UpdateWatch(
	ctx context.Context,
	userID, watchID string,
	patch *domain.WatchPatch,
	updatedAt time.Time,
) (*domain.Watch, error) {
	u := newUpdate()
	if patch.PriceThreshold != nil {
		u.set("priceThreshold", numberValue(*patch.PriceThreshold))
	}
	if patch.DepartureDate != nil {
		u.set("departureDate", &types.AttributeValueMemberS{Value: *patch.DepartureDate})
	}
	if patch.ReturnDate != nil {
		u.set("returnDate", &types.AttributeValueMemberS{Value: *patch.ReturnDate})
	}
	if patch.IsActive != nil {
		u.set("isActive", &types.AttributeValueMemberS{Value: activeFlag(*patch.IsActive)})
	}
	u.set("updatedAt", &types.AttributeValueMemberS{Value: formatTime(updatedAt)})

	out, err := s.client.UpdateItem(ctx, u.input(s.tables.Watches, userID, watchID, types.ReturnValueAllNew))
	if err != nil {
		return nil, ownedWriteError("updating watch", err)
	}
	return unmarshalWatch(out.Attributes)
}

// DeleteWatch removes a watch owned by userID.
func (s *DynamoStore) DeleteWatch(ctx context.Context, userID, watchID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tables.Watches),
		Key:                 watchKey(userID, watchID),
		ConditionExpression: aws.String("attribute_exists(userId)"),
	})
	if err != nil {
		return ownedWriteError("deleting watch", err)
	}
	return nil
}

// ApplyPollResult records the latest observed price on the watch.
func (s *DynamoStore) ApplyPollResult(
	ctx context.Context,
	userID, watchID string,
	price float64,
	checkedAt time.Time,
) error {
	ts := &types.AttributeValueMemberS{Value: formatTime(checkedAt)}

	u := newUpdate()
	u.set("lastPrice", numberValue(price))
	u.set("lastCheckedAt", ts)
	u.set("updatedAt", ts)

	if _, err := s.client.UpdateItem(ctx, u.input(s.tables.Watches, userID, watchID, types.ReturnValueNone)); err != nil {
		return ownedWriteError("applying poll result", err)
	}
	return nil
}

// MarkAlertSent stamps the time of the last delivered alert.
func (s *DynamoStore) MarkAlertSent(ctx context.Context, userID, watchID string, sentAt time.Time) error {
	u := newUpdate()
	u.set("lastAlertSent", &types.AttributeValueMemberS{Value: formatTime(sentAt)})

	if _, err := s.client.UpdateItem(ctx, u.input(s.tables.Watches, userID, watchID, types.ReturnValueNone)); err != nil {
		return ownedWriteError("marking alert sent", err)
	}
	return nil
}

// RecordSnapshot appends a price snapshot with a TTL attribute.
func (s *DynamoStore) RecordSnapshot(ctx context.Context, snap *domain.PriceSnapshot) error {
	item, err := attributevalue.MarshalMap(newSnapshotItem(snap))
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tables.Snapshots),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// GetPriceHistory returns unexpired snapshots for a watch, newest first.
// DynamoDB deletes expired items lazily, so they are filtered here as well.
func (s *DynamoStore) GetPriceHistory(
	ctx context.Context,
	watchID string,
	limit int,
) ([]domain.PriceSnapshot, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tables.Snapshots),
		KeyConditionExpression: aws.String("watchId = :watchId"),
		FilterExpression:       aws.String("#ttl > :now"),
		ExpressionAttributeNames: map[string]string{
			"#ttl": "ttl",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":watchId": &types.AttributeValueMemberS{Value: watchID},
			":now":     &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(historyLimit(limit))), //nolint:gosec // bounded by API limit
	})
	if err != nil {
		return nil, fmt.Errorf("querying price history: %w", err)
	}

	var items []snapshotItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshots: %w", err)
	}

	snaps := make([]domain.PriceSnapshot, 0, len(items))
	for i := range items {
		snap, err := items[i].toDomain()
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// DeleteExpiredSnapshots is a no-op: the snapshots table expires items
// through its TTL attribute.
func (*DynamoStore) DeleteExpiredSnapshots(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// AcquireSchedulerLock takes the named lock with a conditional put. Without a
// locks table every caller acquires the lock.
func (s *DynamoStore) AcquireSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	if s.tables.Locks == "" {
		return true, nil
	}

	now := time.Now()
	item, err := attributevalue.MarshalMap(lockItem{
		JobName:    jobName,
		LockHolder: holder,
		ExpiresAt:  now.Add(ttl).Unix(),
	})
	if err != nil {
		return false, fmt.Errorf("marshaling lock: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tables.Locks),
		Item:      item,
		ConditionExpression: aws.String(
			"attribute_not_exists(jobName) OR expiresAt < :now OR lockHolder = :holder",
		),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":    &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
			":holder": &types.AttributeValueMemberS{Value: holder},
		},
	})
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("acquiring scheduler lock: %w", err)
	}
	return true, nil
}

// ReleaseSchedulerLock deletes the lock if holder still owns it.
func (s *DynamoStore) ReleaseSchedulerLock(ctx context.Context, jobName, holder string) error {
	if s.tables.Locks == "" {
		return nil
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tables.Locks),
		Key: map[string]types.AttributeValue{
			"jobName": &types.AttributeValueMemberS{Value: jobName},
		},
		ConditionExpression: aws.String("lockHolder = :holder"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":holder": &types.AttributeValueMemberS{Value: holder},
		},
	})
	if err != nil && !isConditionFailed(err) {
		return fmt.Errorf("releasing scheduler lock: %w", err)
	}
	return nil
}

// Migrate creates any missing tables with on-demand billing. TTL is enabled
// on the snapshots table when it is created.
func (s *DynamoStore) Migrate(ctx context.Context) error {
	watches := &dynamodb.CreateTableInput{
		TableName:   aws.String(s.tables.Watches),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("userId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("watchId"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("userId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("watchId"), KeyType: types.KeyTypeRange},
		},
	}
	if s.tables.ActiveIndex != "" {
		watches.AttributeDefinitions = append(watches.AttributeDefinitions,
			types.AttributeDefinition{AttributeName: aws.String("isActive"), AttributeType: types.ScalarAttributeTypeS},
			types.AttributeDefinition{AttributeName: aws.String("updatedAt"), AttributeType: types.ScalarAttributeTypeS},
		)
		watches.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
			IndexName: aws.String(s.tables.ActiveIndex),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("isActive"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("updatedAt"), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}}
	}
	if _, err := s.createTable(ctx, watches); err != nil {
		return err
	}

	created, err := s.createTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.tables.Snapshots),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("watchId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("timestamp"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("watchId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("timestamp"), KeyType: types.KeyTypeRange},
		},
	})
	if err != nil {
		return err
	}
	if created {
		if _, err := s.client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
			TableName: aws.String(s.tables.Snapshots),
			TimeToLiveSpecification: &types.TimeToLiveSpecification{
				AttributeName: aws.String("ttl"),
				Enabled:       aws.Bool(true),
			},
		}); err != nil {
			return fmt.Errorf("enabling snapshot TTL: %w", err)
		}
	}

	if s.tables.Locks != "" {
		if _, err := s.createTable(ctx, &dynamodb.CreateTableInput{
			TableName:   aws.String(s.tables.Locks),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("jobName"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("jobName"), KeyType: types.KeyTypeHash},
			},
		}); err != nil {
			return err
		}
	}

	return nil
}

// createTable creates the table and waits for it to become active. It
// reports false when the table already exists.
func (s *DynamoStore) createTable(ctx context.Context, in *dynamodb.CreateTableInput) (bool, error) {
	_, err := s.client.CreateTable(ctx, in)
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating table %s: %w", aws.ToString(in.TableName), err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: in.TableName}, tableWaitTimeout); err != nil {
		return false, fmt.Errorf("waiting for table %s: %w", aws.ToString(in.TableName), err)
	}
	return true, nil
}

// update accumulates SET clauses for an existence-conditioned UpdateItem.
type update struct {
	sets   []string
	names  map[string]string
	values map[string]types.AttributeValue
}

func newUpdate() *update {
	return &update{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

func (u *update) set(attr string, v types.AttributeValue) {
	u.sets = append(u.sets, "#"+attr+" = :"+attr)
	u.names["#"+attr] = attr
	u.values[":"+attr] = v
}

func (u *update) input(table, userID, watchID string, rv types.ReturnValue) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       watchKey(userID, watchID),
		UpdateExpression:          aws.String("SET " + strings.Join(u.sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(userId)"),
		ExpressionAttributeNames:  u.names,
		ExpressionAttributeValues: u.values,
		ReturnValues:              rv,
	}
}

func watchKey(userID, watchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"watchId": &types.AttributeValueMemberS{Value: watchID},
	}
}

func numberValue(f float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, 64)}
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func ownedWriteError(op string, err error) error {
	if isConditionFailed(err) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func unmarshalWatch(av map[string]types.AttributeValue) (*domain.Watch, error) {
	var it watchItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return nil, fmt.Errorf("unmarshaling watch: %w", err)
	}
	return it.toDomain()
}

func unmarshalWatches(items []map[string]types.AttributeValue) ([]domain.Watch, error) {
	var raw []watchItem
	if err := attributevalue.UnmarshalListOfMaps(items, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling watches: %w", err)
	}

	watches := make([]domain.Watch, 0, len(raw))
	for i := range raw {
		w, err := raw[i].toDomain()
		if err != nil {
			return nil, err
		}
		watches = append(watches, *w)
	}
	return watches, nil
}
