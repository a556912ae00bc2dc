package db

import (
	"context"
	"fmt"
)

// schema is shared by both drivers; only the surrogate key differs.
func schema(driver string) []string {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		idColumn = "id SERIAL PRIMARY KEY"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS folders (
    name     TEXT PRIMARY KEY,
    position INTEGER NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
    ` + idColumn + `,
    folder_name TEXT NOT NULL REFERENCES folders(name) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    name        TEXT NOT NULL DEFAULT '',
    feed_url    TEXT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_folder_position ON subscriptions(folder_name, position)`,
	}
}

// MigrateUp creates the mirror tables when they do not exist yet.
func MigrateUp(ctx context.Context, db Conn, driver string) error {
	if driver != DriverSQLite && driver != DriverPostgres {
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}
	for _, stmt := range schema(driver) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
