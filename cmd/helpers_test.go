package cmd

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rnwolfe/fuhl/internal/ui"
)

// configTestEnv points every XDG directory into a temp dir.
func configTestEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("FUHL_DB", "")
	t.Setenv("NO_COLOR", "1")
	ui.SetColor(false)
	return tmpDir
}

// captureOutput swaps the ui writers for buffers for the duration of the test.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := ui.Stdout, ui.Stderr
	ui.Stdout, ui.Stderr = stdout, stderr
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr = oldOut, oldErr
	})
	return stdout, stderr
}

type historyRow struct {
	title, url string
	lastVisit  int64
}

// writeHistory creates a Chromium-style History database at path.
func writeHistory(t *testing.T, path string, rows ...historyRow) {
	t.Helper()
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER NOT NULL,
		hidden INTEGER DEFAULT 0 NOT NULL
	)`); err != nil {
		t.Fatalf("create urls: %v", err)
	}
	for _, r := range rows {
		if _, err := conn.Exec(`INSERT INTO urls (url, title, last_visit_time) VALUES (?, ?, ?)`,
			r.url, r.title, r.lastVisit); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}
