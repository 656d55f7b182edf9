package cmd

import (
	"strings"
	"testing"

	"github.com/rnwolfe/fuhl/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut string
	}{
		{
			name:    "default version output",
			args:    []string{},
			wantOut: "fuhl " + version.Full(),
		},
		{
			name:    "short flag version output",
			args:    []string{"--short"},
			wantOut: version.Short(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset the flag to default state
			versionShort = false
			versionCmd.ResetFlags()
			versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")

			if err := versionCmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("flag parsing failed: %v", err)
			}

			stdout, _ := captureOutput(t)
			versionCmd.Run(nil, nil)

			if output := strings.TrimSpace(stdout.String()); output != tt.wantOut {
				t.Errorf("output mismatch\nWant: %s\nGot: %s", tt.wantOut, output)
			}
		})
	}
}
