//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
)

func setupDynamo(t *testing.T) *store.DynamoStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "amazon/dynamodb-local:2.5.2",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb"},
			WaitingFor:   wait.ForListeningPort("8000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	endpoint, err := container.PortEndpoint(ctx, "8000/tcp", "http")
	require.NoError(t, err)

	client := dynamodb.NewFromConfig(aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("local", "local", ""),
	}, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	s := store.NewDynamoStore(client, store.DynamoTables{
		Watches:     fmt.Sprintf("watches-%d", time.Now().UnixNano()),
		Snapshots:   fmt.Sprintf("snapshots-%d", time.Now().UnixNano()),
		ActiveIndex: "active-watches-index",
		Locks:       "locks",
	})
	require.NoError(t, s.Migrate(ctx))
	// Existing tables are left alone.
	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestDynamoStore_Ping(t *testing.T) {
	s := setupDynamo(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestDynamoStore_Contract(t *testing.T) {
	runStoreContract(t, setupDynamo(t))
}
