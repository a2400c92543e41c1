package storage_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shopfront/storefront/internal/db"
	"github.com/shopfront/storefront/internal/storage"
)

func TestPostgresStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_USER": "postgres", "POSTGRES_PASSWORD": "postgres", "POSTGRES_DB": "storefront"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() {
		_ = container.Terminate(context.Background())
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/storefront?sslmode=disable", host, mappedPort.Port())

	logger := log.New(io.Discard, "", log.LstdFlags)
	require.NoError(t, db.RunMigrations(dsn, logger))

	database, err := db.Open(dsn)
	require.NoError(t, err)
	defer database.Close()

	store := storage.NewPostgres(database)

	_, ok, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, "cart", []byte(`[{"id":1,"quantity":2}]`)))

	v, ok, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":1,"quantity":2}]`, string(v))

	// overwrite keeps a single row per key
	require.NoError(t, store.Put(ctx, "cart", []byte(`[]`)))
	v, ok, err = store.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[]`, string(v))

	require.NoError(t, store.Delete(ctx, "cart"))
	_, ok, err = store.Get(ctx, "cart")
	require.NoError(t, err)
	require.False(t, ok)
}
