package testutil_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netways/checkinlist-export/migrations"
	"github.com/netways/checkinlist-export/testutil"
)

var schemaTables = []string{
	"events", "subevents", "items", "item_variations", "vouchers", "orders",
	"order_positions", "questions", "question_answers", "checkin_lists", "checkin_list_items",
}

// TestMigrations verifies against a real Postgres database that the embedded
// migrations create every table and that a second run is a no-op.
// The schema is never rolled back because other packages' integration tests
// may share the database concurrently.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	db := testutil.MustOpenSQLDB(dsn)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()

	_, err := migrations.Up(ctx, db)
	require.NoError(t, err, "first up")

	for _, table := range schemaTables {
		assertTableExists(t, db, table)
	}

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err, "second up")
	assert.Zero(t, applied, "second run must not apply anything")
}

// assertTableExists fails the test if the named table does not exist in the
// public schema of the connected database.
func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	assert.True(t, exists, "expected table %q to exist", table)
}
