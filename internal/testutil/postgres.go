package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SetupPostgresTest connects to the test database named by
// POSTGRES_TEST_DSN. The test is skipped when the variable is unset.
func SetupPostgresTest(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err, "failed to create pgx pool")

	CleanPostgres(t, pool)

	cleanup := func() {
		CleanPostgres(t, pool)
		pool.Close()
	}

	return pool, cleanup
}

// CleanPostgres truncates all tables for test isolation.
func CleanPostgres(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE outbox_events, products`)
	require.NoError(t, err, "failed to clean database")
}

// AssertPostgresRowCount asserts the number of rows in a table.
func AssertPostgresRowCount(t *testing.T, pool *pgxpool.Pool, table string, expectedCount int) {
	t.Helper()

	var count int64
	err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count)
	require.NoError(t, err, "failed to query row count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
