package cmd

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rnwolfe/fuhl/internal/config"
	"github.com/rnwolfe/fuhl/internal/history"
	"github.com/rnwolfe/fuhl/internal/launch"
	"github.com/spf13/pflag"
)

func pickFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("fuhl", pflag.ContinueOnError)
	registerPickFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs
}

func TestLoadConfig_Precedence(t *testing.T) {
	configTestEnv(t)

	cfg, _ := config.Load()
	cfg.History.DB = "/from/file"
	cfg.History.Limit = 10
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := loadConfig(pickFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.History.DB != "/from/file" || got.History.Limit != 10 {
		t.Fatalf("file values should apply, got %+v", got.History)
	}
	if got.History.MaxURLLength != config.DefaultMaxURLLength {
		t.Fatalf("unset flags should not override, got %d", got.History.MaxURLLength)
	}

	t.Setenv("FUHL_DB", "/from/env")
	got, err = loadConfig(pickFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.History.DB != "/from/env" {
		t.Fatalf("env should beat the file, got %q", got.History.DB)
	}

	got, err = loadConfig(pickFlags(t, "--db", "/from/flag", "--limit", "3", "--print"))
	if err != nil {
		t.Fatal(err)
	}
	if got.History.DB != "/from/flag" || got.History.Limit != 3 || got.Launch.Mode != config.ModePrint {
		t.Fatalf("flags should win, got %+v %+v", got.History, got.Launch)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	configTestEnv(t)
	if _, err := loadConfig(pickFlags(t, "--limit=-1")); err == nil {
		t.Fatal("negative limit should be rejected")
	}
}

func TestPick_FilterPrintsRankedView(t *testing.T) {
	dir := configTestEnv(t)
	db := filepath.Join(dir, "History")
	writeHistory(t, db,
		historyRow{"GitHub", "https://github.com", 30},
		historyRow{"Go", "https://go.dev", 20},
		historyRow{"Gitea", "https://gitea.io", 10},
	)

	cfg, _ := config.Load()
	cfg.History.DB = db
	stdout, _ := captureOutput(t)

	query := "git"
	if err := pick(context.Background(), cfg, &query); err != nil {
		t.Fatalf("pick: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	want := []string{"GitHub - https://github.com", "Gitea - https://gitea.io"}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Fatalf("ranked output = %q, want %q", lines, want)
	}

	// An empty filter lists everything in history order.
	stdout.Reset()
	query = ""
	if err := pick(context.Background(), cfg, &query); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got := strings.Count(stdout.String(), "\n"); got != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", got, stdout.String())
	}
}

func TestPick_HiddenRowsShownByDefault(t *testing.T) {
	dir := configTestEnv(t)
	db := filepath.Join(dir, "History")
	writeHistory(t, db, historyRow{"Visible", "https://visible.example", 20})

	conn, err := sql.Open("sqlite", db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Exec(`INSERT INTO urls (url, title, last_visit_time, hidden) VALUES (?, ?, ?, 1)`,
		"https://hidden.example", "Hidden", 10); err != nil {
		t.Fatal(err)
	}
	conn.Close()

	cfg, err := loadConfig(pickFlags(t, "--db", db))
	if err != nil {
		t.Fatal(err)
	}
	stdout, _ := captureOutput(t)
	query := ""
	if err := pick(context.Background(), cfg, &query); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if !strings.Contains(stdout.String(), "Hidden - https://hidden.example") {
		t.Fatalf("hidden rows should be listed by default:\n%s", stdout.String())
	}

	cfg, err = loadConfig(pickFlags(t, "--db", db, "--include-hidden=false"))
	if err != nil {
		t.Fatal(err)
	}
	stdout.Reset()
	if err := pick(context.Background(), cfg, &query); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if strings.Contains(stdout.String(), "hidden.example") {
		t.Fatalf("--include-hidden=false should drop hidden rows:\n%s", stdout.String())
	}
}

func TestPick_EmptyHistory(t *testing.T) {
	dir := configTestEnv(t)
	db := filepath.Join(dir, "History")
	writeHistory(t, db)

	cfg, _ := config.Load()
	cfg.History.DB = db
	stdout, stderr := captureOutput(t)

	if err := pick(context.Background(), cfg, nil); err != nil {
		t.Fatalf("empty history should not be an error, got %v", err)
	}
	if !strings.Contains(stderr.String(), "No URLs found") {
		t.Fatalf("expected 'No URLs found', got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout should stay empty, got %q", stdout.String())
	}
}

func TestPick_MissingDatabase(t *testing.T) {
	dir := configTestEnv(t)
	cfg, _ := config.Load()
	cfg.History.DB = filepath.Join(dir, "nope")

	err := pick(context.Background(), cfg, nil)
	if !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "at path "+cfg.History.DB) {
		t.Fatalf("error should name the path, got %v", err)
	}
}

type failingSink struct{ err error }

func (f failingSink) Accept(string) error { return f.err }

func TestDeliver_FallsBackToPrinting(t *testing.T) {
	stdout, stderr := captureOutput(t)

	deliver(failingSink{errors.New("no browser")}, config.ModeOpen, "https://a.org")

	if !strings.Contains(stderr.String(), "Failed to open URL https://a.org: no browser") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
	if stdout.String() != "https://a.org\n" {
		t.Fatalf("URL should be printed as a fallback, got %q", stdout.String())
	}
}

func TestDeliver_Print(t *testing.T) {
	stdout, stderr := captureOutput(t)

	deliver(newSink(config.LaunchConfig{Mode: config.ModePrint}), config.ModePrint, "https://a.org")

	if stdout.String() != "https://a.org\n" || stderr.Len() != 0 {
		t.Fatalf("stdout %q stderr %q", stdout.String(), stderr.String())
	}
}

func TestNewSink(t *testing.T) {
	if _, ok := newSink(config.LaunchConfig{Mode: config.ModeOpen, Command: "firefox"}).(*launch.Browser); !ok {
		t.Fatal("open mode should use the browser")
	}
	if _, ok := newSink(config.LaunchConfig{Mode: config.ModeCopy}).(*launch.Clipboard); !ok {
		t.Fatal("copy mode should use the clipboard")
	}
	if _, ok := newSink(config.LaunchConfig{Mode: config.ModePrint}).(launch.Printer); !ok {
		t.Fatal("print mode should use the printer")
	}
}

func TestDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	t.Setenv(envDebug, path)

	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	closeLog, err := debugLog()
	if err != nil {
		t.Fatalf("debugLog: %v", err)
	}
	log.Printf("hello")
	closeLog()
	if data, err := os.ReadFile(path); err != nil || !strings.Contains(string(data), "hello") {
		t.Fatalf("debug log should hold the message: %q, %v", data, err)
	}
}
