// Package cli provides command-line interface setup for clipbridge.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clipbridge/internal/clipboard"
	"clipbridge/internal/config"
	"clipbridge/internal/logger"
	"clipbridge/internal/output"
)

// SmokeText is round-tripped through the clipboard when clipbridge runs
// without a subcommand.
const SmokeText = "Hello, ClipboardManage!"

// App represents the clipbridge CLI application
type App struct {
	Loader  *config.Loader
	Config  *config.Config
	Printer *output.Printer

	// Native overrides the clipboard backend. Nil selects the platform
	// backend, or the in-memory one when memory is configured.
	Native clipboard.Native

	configFile string
	bridge     *clipboard.Bridge
}

// NewApp creates a new clipbridge CLI application
func NewApp() *App {
	return &App{Loader: config.NewLoader()}
}

// CreateRootCommand creates and configures the root command
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clipbridge",
		Short: "Read and write the system clipboard",
		Long: `clipbridge moves file lists (CF_HDROP), images (CF_DIB) and Unicode text
(CF_UNICODETEXT) between the command line and the system clipboard.

Without a subcommand it round-trips a short text as a smoke test.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  app.setup,
		PersistentPostRunE: app.outputErr,
		RunE:               app.runSmokeTest,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.Bool(config.KeyTestMode, false, "Run in deterministic test mode")
	flags.StringP(config.KeyOutput, "o", "auto", "Output format (auto|styled|plain|json|yaml)")
	flags.Bool(config.KeyMemory, false, "Use an in-process clipboard instead of the system one")
	flags.StringVar(&app.configFile, "config", "", "Config file [default: $XDG_CONFIG_HOME/clipbridge/config.yaml]")

	app.addSetCommand(rootCmd)
	app.addGetCommands(rootCmd)
	app.addInspectCommands(rootCmd)
	app.addVersionCommand(rootCmd)

	return rootCmd
}

// setup resolves configuration, then configures the logger and printer.
func (app *App) setup(cmd *cobra.Command, _ []string) error {
	app.Loader.ConfigFile = app.configFile
	if err := app.Loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := app.Loader.Load()
	if err != nil {
		return err
	}
	app.Config = cfg

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	printer, err := output.New(cfg.Output, cmd.OutOrStdout(), cfg.TestMode)
	if err != nil {
		return err
	}
	app.Printer = printer

	logger.Debug("Configuration loaded", "file", cfg.File, "output", cfg.Output, "memory", cfg.Memory)
	return nil
}

// outputErr reports a failed write to stdout after a command succeeded.
func (app *App) outputErr(_ *cobra.Command, _ []string) error {
	return app.Printer.Err()
}

// Clipboard returns the bridge, creating it on first use.
func (app *App) Clipboard() (*clipboard.Bridge, error) {
	if app.bridge != nil {
		return app.bridge, nil
	}

	switch {
	case app.Native != nil:
		app.bridge = clipboard.New(app.Native)
	case app.Config != nil && app.Config.Memory:
		app.bridge = clipboard.New(clipboard.NewMemory())
	default:
		b, err := clipboard.NewSystem()
		if err != nil {
			return nil, err
		}
		app.bridge = b
	}
	return app.bridge, nil
}

// ReportError prints err through the configured printer. It returns an
// error when there is no printer or the printer cannot write, so the
// caller can fall back to stderr.
func (app *App) ReportError(err error) error {
	if app.Printer == nil {
		return errors.New("no printer configured")
	}
	if app.Printer.Structured() {
		return app.Printer.Record(map[string]string{"error": err.Error()})
	}
	app.Printer.Error(err.Error())
	return app.Printer.Err()
}

func (app *App) runSmokeTest(_ *cobra.Command, _ []string) error {
	b, err := app.Clipboard()
	if err != nil {
		return err
	}

	if err := b.SetText(SmokeText); err != nil {
		return err
	}
	text, err := b.Text()
	if err != nil {
		return err
	}

	if app.Printer.Structured() {
		return app.Printer.Record(map[string]string{"text": text})
	}
	app.Printer.Println(text)
	return nil
}
