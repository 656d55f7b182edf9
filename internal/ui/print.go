package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output targets. Tests swap these out.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Puts prints a line to stdout.
func Puts(s string) {
	fmt.Fprintln(Stdout, s)
}

// Warn prints a warning message to stderr.
func Warn(msg string) {
	fmt.Fprintln(Stderr, Warning.Render(IconWarn+msg))
}

// Err prints an error message to stderr.
func Err(msg string) {
	fmt.Fprintln(Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Fprintln(Stdout, Success.Render(IconOk+msg))
}

// Inf prints an info message to stderr, keeping stdout clean for results.
func Inf(msg string) {
	fmt.Fprintln(Stderr, Info.Render("  "+msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Fprintln(Stdout)
	fmt.Fprintln(Stdout, Title.Render(s))
	fmt.Fprintln(Stdout, Muted.Render(strings.Repeat("─", len(s)+2)))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Fprintln(Stdout)
	fmt.Fprintln(Stdout, Muted.Render("  tip: "+msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-24s", key))
	v := ValueStyle.Render(value)
	fmt.Fprintf(Stdout, "%s %s\n", k, v)
}
