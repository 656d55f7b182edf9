package cmd

import (
	"github.com/rnwolfe/fuhl/internal/ui"
	"github.com/rnwolfe/fuhl/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print fuhl version",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func runVersion(_ *cobra.Command, _ []string) {
	if versionShort {
		ui.Puts(version.Short())
	} else {
		ui.Puts("fuhl " + version.Full())
	}
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
