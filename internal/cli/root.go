// Package cli wires the engine, controller ports, host and persistence
// into the pushmap command.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PixPMusic/pushmap/internal/config"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type app struct {
	configPath string
	logLevel   string
	path       string // resolved config path

	cfg     *config.Config
	created bool // no config file existed
	logger  *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pushmap",
		Short: "Map controller encoders to host parameters",
		Long: `pushmap binds the pads and encoders of a MIDI controller to host
parameters in ten switchable groups, with a learn mode for creating
bindings and smoothing for every value it writes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default <user config dir>/pushmap/config.json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newRunCommand(a),
		newPortsCommand(a),
		newShowCommand(a),
		newAutostartCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) init(logOut io.Writer) error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
	}
	a.path = path
	_, statErr := os.Stat(path)
	a.created = os.IsNotExist(statErr)

	var err error
	a.cfg, err = config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: lvl})).
		With("instance", a.cfg.InstanceID)
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) save() error {
	return a.cfg.SaveTo(a.path)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pushmap %s\n", Version)
		},
	}
}
