package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"urlcheck/internal/check"
	"urlcheck/internal/config"
	core "urlcheck/internal/core"
	"urlcheck/internal/logger"
	"urlcheck/internal/providers"
	"urlcheck/internal/store"
	ui "urlcheck/internal/ui"
	verinfo "urlcheck/internal/version"
)

func usage() {
	fmt.Fprintf(os.Stderr, "urlcheck - check whether a URL is in the known list\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  urlcheck [tui] [--config <file>]\n")
	fmt.Fprintf(os.Stderr, "  urlcheck check [--config <file>] <url>\n")
	fmt.Fprintf(os.Stderr, "  urlcheck list [--config <file>]\n")
	fmt.Fprintf(os.Stderr, "  urlcheck snapshot --out <file> [--config <file>]\n")
	fmt.Fprintf(os.Stderr, "  urlcheck version\n")
	fmt.Fprintf(os.Stderr, "\nFlags may appear before or after the url.\n")
}

func main() {
	// Default: TUI when no args
	if len(os.Args) == 1 {
		os.Exit(tuiCmd(nil))
	}

	cmd := os.Args[1]
	switch cmd {
	case "tui":
		os.Exit(tuiCmd(os.Args[2:]))
	case "check":
		os.Exit(checkCmd(os.Args[2:], os.Stdout))
	case "list":
		os.Exit(listCmd(os.Args[2:], os.Stdout))
	case "snapshot":
		os.Exit(snapshotCmd(os.Args[2:], os.Stdout))
	case "version", "--version":
		fmt.Printf("%s %s\n", verinfo.Name, verinfo.Version)
	case "-h", "--help", "help":
		usage()
	default:
		if len(cmd) > 0 && cmd[0] == '-' {
			os.Exit(tuiCmd(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(2)
	}
}

// env bundles what every subcommand needs.
type env struct {
	cfg    *config.Config
	log    *logger.Logger
	logger zerolog.Logger
	prov   providers.Provider
}

func (e *env) close() {
	if e.log != nil {
		_ = e.log.Close()
	}
}

// setup loads config, builds the logger and the provider. console is where
// log lines go besides the log file; nil keeps the terminal clean for the TUI.
func setup(configPath string, console io.Writer) (*env, error) {
	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return nil, err
	}
	l, err := logger.NewBuilder().
		WithConfig(cfg.Log).
		WithConsole(console).
		WithConsoleLevel(zerolog.WarnLevel).
		Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	lg := l.Zerolog()
	prov, err := providers.NewProvider(cfg.Provider, lg)
	if err != nil {
		_ = l.Close()
		return nil, err
	}
	lg.Debug().Str("provider", prov.Name()).Int("debounce_ms", cfg.DebounceMS).Msg("Configuration loaded")
	return &env{cfg: cfg, log: l, logger: lg, prov: prov}, nil
}

func (e *env) fetchContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.cfg.Provider.Timeout())
}

// parseArgs parses fs over args, allowing flags after positional arguments.
// Everything after a "--" terminator is positional.
func parseArgs(fs *flag.FlagSet, args []string) []string {
	var pos []string
	for {
		_ = fs.Parse(args)
		rest := fs.Args()
		if len(rest) == 0 {
			return pos
		}
		if i := len(args) - len(rest) - 1; i >= 0 && args[i] == "--" {
			return append(pos, rest...)
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

func tuiCmd(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (yaml)")
	_ = parseArgs(fs, args)

	e, err := setup(*configPath, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer e.close()

	err = ui.Run(e.prov, ui.Options{
		Delay:        e.cfg.Debounce(),
		FetchTimeout: e.cfg.Provider.Timeout(),
		Logger:       e.logger,
	})
	if err != nil {
		e.logger.Error().Err(err).Msg("TUI exited with error")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func checkCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (yaml)")
	urlFlag := fs.String("url", "", "url to check (alternative to positional arg)")
	pos := parseArgs(fs, args)

	raw := *urlFlag
	if raw == "" && len(pos) > 0 {
		raw = pos[0]
	}

	e, err := setup(*configPath, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer e.close()

	ctrl := check.New(e.prov, check.WithLogger(e.logger))
	defer ctrl.Close()

	ctx, cancel := e.fetchContext()
	defer cancel()
	_, err = ctrl.Verify(ctx, raw)
	snap := ctrl.Snapshot()
	switch {
	case err == nil:
		fmt.Fprintln(out, snap.State.Message(snap.Input))
		return 0
	case errors.Is(err, core.ErrEmptyInput):
		fmt.Fprintln(os.Stderr, "a url is required")
		usage()
		return 2
	case errors.Is(err, core.ErrInvalidFormat):
		fmt.Fprintln(out, snap.State.Message(snap.Input))
		return 2
	default:
		fmt.Fprintln(out, snap.State.Message(snap.Input))
		return 1
	}
}

func listCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (yaml)")
	_ = parseArgs(fs, args)

	e, err := setup(*configPath, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer e.close()

	ctrl := check.New(e.prov, check.WithLogger(e.logger))
	defer ctrl.Close()

	ctx, cancel := e.fetchContext()
	defer cancel()
	// a failed fetch is logged by the controller and lists nothing
	_ = ctrl.LoadKnownURLs(ctx)
	for _, r := range ctrl.Snapshot().Records {
		fmt.Fprintf(out, "%s\t%s\n", r.URL, r.Type)
	}
	return 0
}

func snapshotCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (yaml)")
	outPath := fs.String("out", "", "file to write the list to")
	_ = parseArgs(fs, args)
	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		return 2
	}

	e, err := setup(*configPath, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer e.close()

	ctx, cancel := e.fetchContext()
	defer cancel()
	records, err := e.prov.Fetch(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to fetch known URLs")
		return 1
	}
	if err := store.SaveSnapshot(*outPath, records); err != nil {
		e.logger.Error().Err(err).Str("path", *outPath).Msg("Failed to write snapshot")
		return 1
	}
	fmt.Fprintf(out, "saved %d records to %s\n", len(records), *outPath)
	return 0
}
