package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/config"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
)

// OpenStore connects to the configured storage driver. The returned func
// releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverDynamoDB:
		client, err := newDynamoClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		st := store.NewDynamoStore(client, store.DynamoTables{
			Watches:     cfg.DynamoDB.WatchesTable,
			Snapshots:   cfg.DynamoDB.SnapshotsTable,
			ActiveIndex: cfg.DynamoDB.ActiveIndex,
			Locks:       cfg.DynamoDB.LocksTable,
		})
		return st, func() {}, nil
	default:
		st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(),
			store.WithMaxConns(int32(cfg.Database.PoolSize)), //nolint:gosec // small configured value
		)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		return st, st.Close, nil
	}
}

// newDynamoClient loads the default AWS credential chain. A custom endpoint
// (DynamoDB Local) gets static dummy credentials.
func newDynamoClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
