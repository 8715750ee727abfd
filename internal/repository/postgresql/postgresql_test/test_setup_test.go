package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-sync/internal/repository/postgresql"
)

// TestDatabaseSetup holds the connection used by repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// It returns ErrNoTestDatabase when the variable is unset.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, ErrNoTestDatabase
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &TestDatabaseSetup{DB: db}, nil
}

var ErrNoTestDatabase = fmt.Errorf("TEST_DATABASE_URL is not set")

// TruncateAllTables removes every row written by the tests.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_records",
		"attendance_collections",
		"roster_assignments",
		"shift_templates",
		"employees",
		"system_configs",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
