package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add lookup indices on shortcut_usage",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_usage_combo ON shortcut_usage(combo);
			CREATE INDEX IF NOT EXISTS idx_usage_action ON shortcut_usage(action);
			CREATE INDEX IF NOT EXISTS idx_usage_timestamp ON shortcut_usage(timestamp DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_usage_combo;
			DROP INDEX IF EXISTS idx_usage_action;
			DROP INDEX IF EXISTS idx_usage_timestamp;
		`,
	},
	{
		Version: 2,
		Name:    "Add composite index for per-combo stats",
		Up: `
			-- Covers GROUP BY combo, action with the aggregated columns
			CREATE INDEX IF NOT EXISTS idx_usage_grouping ON shortcut_usage(combo, action, source, prevented, timestamp);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_usage_grouping;
		`,
	},
}

// InitSchema creates all tables required across all modules
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS shortcut_usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		combo TEXT NOT NULL,
		action TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		target_tag TEXT NOT NULL DEFAULT '',
		prevented INTEGER NOT NULL DEFAULT 0,
		timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Create migrations tracking table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	// Apply pending migrations
	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := db.Exec(migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
