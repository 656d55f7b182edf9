package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/rnwolfe/fuhl/internal/candidate"
	"github.com/rnwolfe/fuhl/internal/ui"
	_ "modernc.org/sqlite"
)

// Schema is the kind of history database.
type Schema int

const (
	SchemaUnknown Schema = iota
	SchemaChromium
	SchemaFirefox
)

func (s Schema) String() string {
	switch s {
	case SchemaChromium:
		return "chromium"
	case SchemaFirefox:
		return "firefox"
	default:
		return "unknown"
	}
}

// Options filters and caps the rows read from history.
type Options struct {
	// MaxURLLength keeps only URLs shorter than this. 0 keeps everything.
	MaxURLLength  int
	Limit         int // 0 = no limit
	IncludeHidden bool
}

// Most recent visits first, then most visited.
const chromiumQuery = `SELECT COALESCE(title, ''), COALESCE(url, '') FROM urls
	WHERE (? = 0 OR length(url) < ?) AND (? = 1 OR hidden = 0)
	ORDER BY last_visit_time DESC, visit_count DESC
	LIMIT ?`

const firefoxQuery = `SELECT COALESCE(title, ''), COALESCE(url, '') FROM moz_places
	WHERE (? = 0 OR length(url) < ?) AND (? = 1 OR hidden = 0)
	ORDER BY last_visit_date DESC, visit_count DESC
	LIMIT ?`

// DB wraps a SQLite connection to a history snapshot.
type DB struct {
	conn *sql.DB
}

// Open opens a history database read-only.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Pragmas are per connection.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA query_only=ON",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA cache_size=-16000", // 16MB cache
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// DetectSchema reports which browser wrote the database.
func (db *DB) DetectSchema(ctx context.Context) (Schema, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('urls', 'moz_places')`)
	if err != nil {
		return SchemaUnknown, fmt.Errorf("reading schema: %w", err)
	}
	defer rows.Close()

	schema := SchemaUnknown
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return SchemaUnknown, fmt.Errorf("reading schema: %w", err)
		}
		switch name {
		case "urls":
			schema = SchemaChromium
		case "moz_places":
			if schema == SchemaUnknown {
				schema = SchemaFirefox
			}
		}
	}
	if err := rows.Err(); err != nil {
		return SchemaUnknown, fmt.Errorf("reading schema: %w", err)
	}
	return schema, nil
}

// Load returns history entries as candidate records, most recent first.
// Rows that fail to scan are skipped with a warning.
func (db *DB) Load(ctx context.Context, opts Options) ([]candidate.Record, error) {
	schema, err := db.DetectSchema(ctx)
	if err != nil {
		return nil, err
	}

	var query string
	switch schema {
	case SchemaChromium:
		query = chromiumQuery
	case SchemaFirefox:
		query = firefoxQuery
	default:
		return nil, ErrUnknownSchema
	}

	limit := -1 // SQLite: negative LIMIT means no limit
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	rows, err := db.conn.QueryContext(ctx, query,
		opts.MaxURLLength, opts.MaxURLLength, boolInt(opts.IncludeHidden), limit)
	if err != nil {
		return nil, fmt.Errorf("querying %s history: %w", schema, err)
	}
	defer rows.Close()

	var records []candidate.Record
	skipped := 0
	for rows.Next() {
		var r candidate.Record
		if err := rows.Scan(&r.Label, &r.Locator); err != nil {
			log.Printf("warning: reading row: %v", err)
			skipped++
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying %s history: %w", schema, err)
	}
	reportSkipped(skipped)
	return records, nil
}

// reportSkipped tells the user how many rows were dropped. History loads
// before the picker takes the screen, so this goes straight to stderr.
func reportSkipped(n int) {
	if n > 0 {
		ui.Warn(fmt.Sprintf("skipped %d unreadable history rows", n))
	}
}

// Read snapshots the database at path into cacheDir, loads it, and removes
// the snapshot.
func Read(ctx context.Context, path, cacheDir string, opts Options) ([]candidate.Record, error) {
	snap, cleanup, err := Snapshot(path, cacheDir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := Open(snap)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Load(ctx, opts)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
