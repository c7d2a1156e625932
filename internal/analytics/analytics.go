package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/migrations"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one fired shortcut
type Entry struct {
	ID        int64
	Combo     string
	Action    string
	Source    string // "tui", "bridge", ...
	TargetTag string
	Prevented bool
	Timestamp time.Time
}

// Stats aggregates fires of one combo/action pair
type Stats struct {
	Combo          string
	Action         string
	TotalFires     int
	PreventedCount int
	Sources        map[string]int
	LastUsed       time.Time
}

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO shortcut_usage (combo, action, source, target_tag, prevented, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := m.db.Exec(query,
		entry.Combo,
		entry.Action,
		entry.Source,
		entry.TargetTag,
		entry.Prevented,
		entry.Timestamp.Local().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save usage entry: %w", err)
	}

	return nil
}

// LoadRecent returns the latest entries, newest first
func (m *Manager) LoadRecent(limit int) ([]Entry, error) {
	query := `
		SELECT id, combo, action, source, target_tag, prevented, timestamp
		FROM shortcut_usage
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestamp string

		if err := rows.Scan(&e.ID, &e.Combo, &e.Action, &e.Source, &e.TargetTag, &e.Prevented, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan usage entry: %w", err)
		}
		e.Timestamp = parseTimestamp(timestamp)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetStatsPerCombo aggregates usage per combo and action, most used first
func (m *Manager) GetStatsPerCombo() ([]Stats, error) {
	// Per-source counts come back as one JSON object per group
	query := `
		WITH sources_agg AS (
			SELECT combo, action, json_group_object(source, count) AS sources_json
			FROM (
				SELECT combo, action, source, COUNT(*) AS count
				FROM shortcut_usage
				GROUP BY combo, action, source
			)
			GROUP BY combo, action
		)
		SELECT
			u.combo,
			u.action,
			COUNT(*) AS total_fires,
			SUM(u.prevented) AS prevented_count,
			MAX(u.timestamp) AS last_used,
			COALESCE(s.sources_json, '{}') AS sources_json
		FROM shortcut_usage u
		LEFT JOIN sources_agg s ON u.combo = s.combo AND u.action = s.action
		GROUP BY u.combo, u.action
		ORDER BY total_fires DESC, u.combo ASC
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats per combo: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var lastUsed sql.NullString
		var sourcesJSON string

		if err := rows.Scan(&s.Combo, &s.Action, &s.TotalFires, &s.PreventedCount, &lastUsed, &sourcesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if lastUsed.Valid {
			s.LastUsed = parseTimestamp(lastUsed.String)
		}

		s.Sources = make(map[string]int)
		if err := json.Unmarshal([]byte(sourcesJSON), &s.Sources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
		}

		statsList = append(statsList, s)
	}

	return statsList, rows.Err()
}

// Observer returns a dispatcher observer that records every fired shortcut.
// actionFor may be nil when combos are not mapped to named actions.
func (m *Manager) Observer(source string, actionFor func(shortcut.Shortcut) string) shortcut.Observer {
	return func(s shortcut.Shortcut, event *shortcut.KeyEvent) {
		entry := Entry{
			Combo:     s.Combo,
			Source:    source,
			Prevented: event.DefaultPrevented(),
			Timestamp: time.Now(),
		}
		if actionFor != nil {
			entry.Action = actionFor(s)
		}
		if event.Target != nil {
			entry.TargetTag = event.Target.TagName()
		}
		if err := m.Save(entry); err != nil {
			log.Printf("usage tracking: %v", err)
		}
	}
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM shortcut_usage")
	if err != nil {
		return fmt.Errorf("failed to clear usage: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// parseTimestamp reads SQLite local timestamps, falling back to RFC3339
func parseTimestamp(value string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, value, time.Local)
	if err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
