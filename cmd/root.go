package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/chasta-cli/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global

	// fsys backs every input read.
	fsys afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "chasta",
	Short: "Chasta CLI: quick statistics for delimited tables",
	Long: `Chasta reads a delimited text table (or an .xlsx sheet), guesses its delimiter and header,
and prints descriptive statistics or instance counts for the selected columns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.chasta/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug | info | warn | error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded configuration or the defaults when
// none could be loaded.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Default()
}

// newLogger builds the process logger writing text records to w.
// Precedence: --debug > --log-level > config log_level.
func newLogger(w io.Writer, c *cfgpkg.Global) (*slog.Logger, error) {
	name := c.LogLevel
	if rootCmd.PersistentFlags().Changed("log-level") {
		name = logLevel
	}
	if debug {
		name = "debug"
	}
	level, err := cfgpkg.ParseLogLevel(name)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
