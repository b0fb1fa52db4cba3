package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		passcode TEXT NOT NULL,
		balance_cents INTEGER NOT NULL DEFAULT 0 CHECK (balance_cents >= 0)
	);
`

// Migrate creates the registry schema. The single table makes a migration
// directory overkill; new statements go here when the schema grows.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
