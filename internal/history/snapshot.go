package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Snapshot copies the database at src into dir under a unique name. Browsers
// keep the live file locked while running, so it is never opened directly.
// A write-ahead log next to src (Firefox keeps recent visits there) is copied
// alongside so SQLite replays it on open.
// The returned cleanup removes the copies and is safe to call more than once.
func Snapshot(src, dir string) (path string, cleanup func(), err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	path = filepath.Join(dir, "history-"+uuid.New().String()+".db")
	cleanup = func() {
		for _, suffix := range []string{"", "-wal", "-shm", "-journal"} {
			os.Remove(path + suffix)
		}
	}

	if err := copyFile(src, path); err != nil {
		cleanup()
		return "", nil, err
	}
	if _, err := os.Stat(src + "-wal"); err == nil {
		if err := copyFile(src+"-wal", path+"-wal"); err != nil {
			cleanup()
			return "", nil, err
		}
	}
	return path, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
