package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "admindash",
		Short: "Serve the admin dashboard",
		Long: `admindash serves a multi-section admin dashboard.

Pages are addressed through a fixed route table. Slow views render a
loading placeholder first and stream the finished view into the same
response.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file or directory (default: nearest admindash.json or admindash.toml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json (default from config)")

	rootCmd.AddCommand(
		serveCmd(flags),
		routesCmd(),
		configCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration named by path, or the nearest one
// above the working directory, then applies environment overrides.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromWorkingDir()
	}

	var (
		cfg *config.Config
		err error
	)
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Flags win over cfg.
func newLogger(w io.Writer, cfg config.LogConfig, flags *globalFlags) (*slog.Logger, error) {
	level, format := cfg.Level, cfg.Format
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.logFormat != "" {
		format = flags.logFormat
	}

	if level == "" {
		level = "info"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.New("D002").WithField("log.level").WithDetail(fmt.Sprintf("Unknown log level %q", level))
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.New("D002").WithField("log.format").WithDetail(fmt.Sprintf("Unknown log format %q", format))
	}
}
