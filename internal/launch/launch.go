// Package launch hands the chosen URL to the outside world.
package launch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Sink receives the final selection. It is called at most once per session.
type Sink interface {
	Accept(text string) error
}

// Browser opens URLs with a configured command, $BROWSER, or the OS opener.
type Browser struct {
	// Command overrides the opener, e.g. "firefox --new-tab".
	Command string
	goos    string
	run     func(*exec.Cmd) error
}

// NewBrowser returns a Browser for the current platform.
func NewBrowser(command string) *Browser {
	return &Browser{Command: command, goos: runtime.GOOS, run: runDetached}
}

// Accept opens url.
func (b *Browser) Accept(url string) error {
	cmd, err := openCommand(b.goos, b.Command, url)
	if err != nil {
		return err
	}
	return b.run(cmd)
}

// openCommand builds the command that opens url on goos.
func openCommand(goos, command, url string) (*exec.Cmd, error) {
	if command == "" {
		command = os.Getenv("BROWSER")
	}
	if fields := strings.Fields(command); len(fields) > 0 {
		return exec.Command(fields[0], append(fields[1:], url)...), nil
	}

	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	}
	return nil, fmt.Errorf("opening URLs not supported on %s (set launch.command)", goos)
}

// runDetached starts cmd without waiting for the browser to exit.
func runDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Printer writes the selection to a writer, one per line.
type Printer struct {
	W io.Writer
}

func (p Printer) Accept(text string) error {
	_, err := fmt.Fprintln(p.W, text)
	return err
}

// Clipboard copies the selection to the system clipboard.
type Clipboard struct{}

// NewClipboard returns a Clipboard backed by the platform clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Accept copies text to the system clipboard.
func (c *Clipboard) Accept(text string) error {
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

var clipboardWrite = clipboard.WriteAll
