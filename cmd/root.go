package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/fuhl/internal/candidate"
	"github.com/rnwolfe/fuhl/internal/config"
	"github.com/rnwolfe/fuhl/internal/fuzzy"
	"github.com/rnwolfe/fuhl/internal/history"
	"github.com/rnwolfe/fuhl/internal/launch"
	"github.com/rnwolfe/fuhl/internal/tui"
	"github.com/rnwolfe/fuhl/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envDebug names a file that receives debug logs while the picker owns the
// terminal.
const envDebug = "FUHL_DEBUG"

var rootCmd = &cobra.Command{
	Use:   "fuhl",
	Short: "Fuzzy-find a URL in your browser history and open it",
	Long: `fuhl reads your browser history, lets you narrow it down with a fuzzy
query, and opens the URL you pick.

The history database defaults to Chrome's profile; override it with --db,
$FUHL_DB, or history.db in the config file.`,
	Args: cobra.NoArgs,
	RunE: runPick,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	registerPickFlags(rootCmd.Flags())
	rootCmd.MarkFlagsMutuallyExclusive("print", "copy")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// registerPickFlags declares the flags that overlay the config file. Their
// names line up with config.ApplyFlags.
func registerPickFlags(fs *pflag.FlagSet) {
	fs.String("db", "", "history database (default: browser profile, or $"+config.EnvDB+")")
	fs.String("filter", "", "print matches for a query in rank order and exit")
	fs.Bool("print", false, "print the chosen URL instead of opening it")
	fs.Bool("copy", false, "copy the chosen URL to the clipboard")
	fs.Int("limit", 0, "read at most this many history rows (0 = all)")
	fs.Int("max-url-length", config.DefaultMaxURLLength, "skip URLs this long or longer (0 = keep all)")
	fs.Bool("include-hidden", true, "include rows the browser marks as hidden")
	fs.Int("height", 0, "visible rows in the picker (0 = fit the terminal)")
	fs.Bool("no-color", false, "disable styled output")
}

// loadConfig resolves settings: flags, then environment, then the config
// file, then defaults.
func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.ApplyFlags(fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPick(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	ui.SetColor(cfg.UI.ColorEnabled())

	closeLog, err := debugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	var filter *string
	if cmd.Flags().Changed("filter") {
		q, _ := cmd.Flags().GetString("filter")
		filter = &q
	}
	return pick(cmd.Context(), cfg, filter)
}

// pick loads the history, lets the user choose, and hands the URL to the
// configured sink. With a filter it ranks non-interactively instead.
func pick(ctx context.Context, cfg *config.Config, filter *string) error {
	store, err := loadHistory(ctx, cfg.History)
	if errors.Is(err, candidate.ErrNoCandidates) {
		ui.Inf("No URLs found")
		return nil
	}
	if err != nil {
		return err
	}

	if filter != nil {
		printRanked(*filter, store)
		return nil
	}

	if !tui.IsTTY() {
		return fmt.Errorf("the picker needs a terminal (try %s)", ui.Accent.Render("fuhl --filter <query>"))
	}

	res, err := tui.Run(store,
		tui.WithPrompt(cfg.Picker.Prompt),
		tui.WithHeight(cfg.Picker.Height),
		tui.WithPollInterval(cfg.Picker.PollInterval()),
	)
	if err != nil {
		return err
	}
	if !res.Selected {
		ui.Inf("No selection made")
		return nil
	}

	// The sink gets the URL behind the chosen line, not the display string.
	url := store.Record(res.Index).Locator
	log.Printf("selected %d: %s", res.Index, url)
	deliver(newSink(cfg.Launch), cfg.Launch.Mode, url)
	return nil
}

func loadHistory(ctx context.Context, hc config.HistoryConfig) (*candidate.Store, error) {
	path, err := history.Locate(hc.DB, runtime.GOOS)
	if err != nil {
		return nil, err
	}

	records, err := history.Read(ctx, path, config.GetPaths().CacheDir, history.Options{
		MaxURLLength:  hc.MaxURLLength,
		Limit:         hc.Limit,
		IncludeHidden: hc.IncludeHidden,
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Printf("loaded %d history entries from %s", len(records), path)

	store := candidate.New(records)
	if err := store.Check(); err != nil {
		return nil, err
	}
	return store, nil
}

func printRanked(query string, store *candidate.Store) {
	for _, idx := range fuzzy.Rank(query, store).Indices() {
		ui.Puts(store.Display(idx))
	}
}

func newSink(lc config.LaunchConfig) launch.Sink {
	switch lc.Mode {
	case config.ModePrint:
		return launch.Printer{W: ui.Stdout}
	case config.ModeCopy:
		return launch.NewClipboard()
	default:
		return launch.NewBrowser(lc.Command)
	}
}

// deliver hands url to sink. When that fails the URL is printed so it is
// never lost.
func deliver(sink launch.Sink, mode, url string) {
	if err := sink.Accept(url); err != nil {
		ui.Err(fmt.Sprintf("Failed to open URL %s: %v", url, err))
		ui.Puts(url)
		return
	}
	if mode == config.ModeCopy {
		ui.Ok("Copied " + url)
	}
}

// debugLog routes the standard logger to $FUHL_DEBUG, or discards it when
// unset so nothing is written over the picker.
func debugLog() (func(), error) {
	path := os.Getenv(envDebug)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "fuhl")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	return func() { f.Close() }, nil
}
