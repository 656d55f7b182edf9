// Package history reads browser history databases into candidate records.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when the history database does not exist.
	ErrNotFound = errors.New("history DB not found")
	// ErrUnknownSchema is returned for a SQLite file with no known history table.
	ErrUnknownSchema = errors.New("unrecognized history schema")
)

// DefaultPath returns the Chrome history location for goos, or "" when there
// is no known default.
func DefaultPath(goos, home string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "History")
	case "linux":
		return filepath.Join(home, ".config", "google-chrome", "Default", "History")
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, "Google", "Chrome", "User Data", "Default", "History")
	}
	return ""
}

// Locate resolves the database path: override if set, else the platform
// default. The result must exist.
func Locate(override, goos string) (string, error) {
	home, _ := os.UserHomeDir()

	path := override
	if path == "" {
		path = DefaultPath(goos, home)
	}
	if path == "" {
		return "", fmt.Errorf("%w: no default location on %s, set FUHL_DB", ErrNotFound, goos)
	}
	path = expandHome(path, home)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w at path %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w at path %s (is a directory)", ErrNotFound, path)
	}
	return path, nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
