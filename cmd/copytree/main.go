package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/copytree/internal/config"
	"github.com/bamsammich/copytree/internal/engine"
	"github.com/bamsammich/copytree/internal/event"
	"github.com/bamsammich/copytree/internal/platform"
	"github.com/bamsammich/copytree/internal/stats"
	"github.com/bamsammich/copytree/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// sizeFlag is a pflag.Value accepting human-readable sizes such as 64K or 100M.
type sizeFlag struct {
	raw string
	n   int64
}

var _ pflag.Value = (*sizeFlag)(nil)

func (f *sizeFlag) String() string { return f.raw }
func (*sizeFlag) Type() string     { return "size" }

func (f *sizeFlag) Set(val string) error {
	n, err := config.ParseSize(val)
	if err != nil {
		return err
	}
	f.raw, f.n = val, n
	return nil
}

// options collects the parsed command line.
type options struct {
	symlinks    bool
	perms       bool
	archive     bool
	verify      bool
	verbose     bool
	quiet       bool
	showVersion bool
	logFile     string
	bwLimit     sizeFlag
	bufferSize  sizeFlag
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "copytree [flags] <source> <destination>",
		Short: "Recursively copy a directory tree, optionally preserving symlinks and permissions",
		Long: `copytree mirrors the directory <source> into <destination>, creating
directories as needed. Regular files are copied byte for byte. Symlinks are
followed unless --symlinks is given, in which case they are recreated with the
same target. Devices, FIFOs and sockets are skipped. A failed entry is
reported and the rest of the tree is still copied.

Defaults for --symlinks, --perms, --verify, --bwlimit and --buffer-size are
read from $XDG_CONFIG_HOME/copytree/config.toml when it exists.

Exit status:
  0  every entry was copied
  1  some entries failed, but something was copied
  2  nothing was copied, or the command line was invalid`,
		Example: `  copytree -a src/ backup/
  copytree --verify --bwlimit 50M /data /mnt/data`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "copytree %s\n", version)
				return nil
			}
			return runCopy(cmd, opts, args[0], args[1])
		},
	}

	rootCmd.Flags().BoolVar(&opts.showVersion, "version", false, "print version and exit")
	rootCmd.Flags().
		BoolVarP(&opts.symlinks, "symlinks", "P", false, "copy symlinks as links instead of following them")
	rootCmd.Flags().
		BoolVarP(&opts.perms, "perms", "p", false, "preserve permission bits of files and directories")
	rootCmd.Flags().
		BoolVarP(&opts.archive, "archive", "a", false, "archive mode (same as -P -p)")
	rootCmd.Flags().BoolVar(&opts.verify, "verify", false, "verify checksums after copy (BLAKE3)")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().Var(&opts.bwLimit, "bwlimit", "bandwidth limit (e.g. 100M, 1G)")
	rootCmd.Flags().
		Var(&opts.bufferSize, "buffer-size", "read/write chunk size; setting it disables copy_file_range (default 4K)")

	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

func run() int {
	var opts options
	err := newRootCmd(&opts).Execute()
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exitError); ok { //nolint:errorlint // RunE returns exitError unwrapped
		return exitErr.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 2
}

//nolint:revive // cognitive-complexity: CLI entry point wires logging, presenter and engine
func runCopy(cmd *cobra.Command, opts *options, src, dst string) error {
	cfg, cfgErr := config.Load()
	if err := applyConfigDefaults(cmd, cfg.Defaults, opts); err != nil {
		return err
	}
	if opts.archive {
		opts.symlinks, opts.perms = true, true
	}

	// Configure logging.
	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	} else if !opts.quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	var logHandler slog.Handler = textHandler
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer lf.Close()
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler).With("run", uuid.NewString()))

	if cfgErr != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)

	styles := ui.Styles{}
	if ui.IsTTY(os.Stdout.Fd()) {
		styles = ui.NewStyles(cfg.Theme)
	}
	presenter := ui.NewPresenter(ui.Config{
		Writer:  os.Stdout,
		Stats:   collector,
		Styles:  styles,
		SrcRoot: src,
		DstRoot: dst,
		Quiet:   opts.quiet,
		Verbose: opts.verbose,
	})

	engineCfg := engine.Config{
		Options: engine.Options{
			PreserveSymlinks: opts.symlinks,
			PreservePerms:    opts.perms,
			BufferSize:       int(opts.bufferSize.n),
			Events:           events,
			Stats:            collector,
		},
		Src:     src,
		Dst:     dst,
		Verify:  opts.verify,
		BWLimit: opts.bwLimit.n,
	}

	slog.Debug("starting copy",
		"src", src,
		"dst", dst,
		"symlinks", opts.symlinks,
		"perms", opts.perms,
		"buffer_size", bufferSizeOrDefault(engineCfg.BufferSize),
		"bwlimit", engineCfg.BWLimit,
	)

	var presenterErr error
	var presenterWg sync.WaitGroup
	presenterWg.Add(1)
	go func() {
		defer presenterWg.Done()
		presenterErr = presenter.Run(events)
	}()

	result := engine.Run(ctx, engineCfg)
	stop()
	close(events)
	presenterWg.Wait()
	if presenterErr != nil {
		fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
	}

	if !opts.quiet {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(os.Stderr, summary)
		}
	}

	if err := result.Err(); err != nil {
		slog.Error("copy failed", "error", err)
		return &exitError{code: exitCode(result.Stats)}
	}
	return nil
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) error {
	flags := cmd.Flags()
	if !flags.Changed("symlinks") && defaults.Symlinks != nil {
		opts.symlinks = *defaults.Symlinks
	}
	if !flags.Changed("perms") && defaults.Perms != nil {
		opts.perms = *defaults.Perms
	}
	if !flags.Changed("verify") && defaults.Verify != nil {
		opts.verify = *defaults.Verify
	}
	if !flags.Changed("bwlimit") && defaults.BWLimit != nil {
		if err := opts.bwLimit.Set(*defaults.BWLimit); err != nil {
			return fmt.Errorf("config bwlimit: %w", err)
		}
	}
	if !flags.Changed("buffer-size") && defaults.BufferSize != nil {
		if err := opts.bufferSize.Set(*defaults.BufferSize); err != nil {
			return fmt.Errorf("config buffer_size: %w", err)
		}
	}
	return nil
}

func bufferSizeOrDefault(n int) int {
	if n <= 0 {
		return platform.DefaultBufferSize
	}
	return n
}

// exitCode maps a failed run to 1 when anything was copied, 2 otherwise.
func exitCode(snap stats.Snapshot) int {
	if snap.FilesCopied+snap.SymlinksCreated+snap.DirsCreated > 0 {
		return 1
	}
	return 2
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
