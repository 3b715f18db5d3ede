package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect("mysql", "whatever", time.Second)
	assert.Error(t, err)
}

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	conn, err := Connect(DriverSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, conn, DriverSQLite))
	require.NoError(t, Migrate(ctx, conn, DriverSQLite))

	var tables int
	require.NoError(t, conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('tournaments', 'matches')`,
	).Scan(&tables))
	assert.Equal(t, 2, tables)

	var fk int
	require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_UnknownDriver(t *testing.T) {
	conn, err := Connect(DriverSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	defer conn.Close()

	assert.Error(t, Migrate(context.Background(), conn, "oracle"))
}
