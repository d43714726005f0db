package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/PixPMusic/pushmap/internal/config"
	"github.com/PixPMusic/pushmap/internal/console"
	"github.com/PixPMusic/pushmap/internal/engine"
	"github.com/PixPMusic/pushmap/internal/mapping"
	"github.com/PixPMusic/pushmap/internal/metrics"
	"github.com/PixPMusic/pushmap/internal/midi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type runFlags struct {
	inPort      string
	outPort     string
	device      string
	mappingFile string
	watch       bool
	metricsAddr string
	rate        float64
	noConsole   bool
}

func newRunCommand(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the controller and drive mapped parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, f)
		},
	}
	f.bind(cmd)
	return cmd
}

func (f *runFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.inPort, "in", "", "MIDI input port name")
	fl.StringVar(&f.outPort, "out", "", "MIDI output port name for lighting")
	fl.StringVar(&f.device, "device", "", "controller surface: push2 or generic")
	fl.StringVar(&f.mappingFile, "mapping-file", "", "mapping file (.json or .yaml)")
	fl.BoolVar(&f.watch, "watch", false, "reload the mapping file when it changes on disk")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fl.Float64Var(&f.rate, "rate", 0, "control update rate in Hz")
	fl.BoolVar(&f.noConsole, "no-console", false, "do not read commands from stdin (EOF on stdin stops run otherwise)")
}

// apply overlays the flags that were set onto cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("in") {
		cfg.InPort = f.inPort
	}
	if fl.Changed("out") {
		cfg.OutPort = f.outPort
	}
	if fl.Changed("device") {
		cfg.DeviceType = midi.DeviceType(f.device)
	}
	if fl.Changed("mapping-file") {
		cfg.MappingFile = f.mappingFile
	}
	if fl.Changed("watch") {
		cfg.WatchMappingFile = f.watch
	}
	if fl.Changed("metrics-addr") {
		cfg.MetricsAddr = f.metricsAddr
	}
	if fl.Changed("rate") {
		cfg.UpdateRateHz = f.rate
	}
}

func (a *app) run(cmd *cobra.Command, f *runFlags) error {
	cfg := a.cfg
	logger := a.logger

	if a.created {
		if err := a.save(); err != nil {
			logger.Warn("failed to write initial config", "path", a.path, "error", err)
		} else {
			logger.Info("wrote initial config", "path", a.path)
		}
	}
	f.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg := registryFromConfig(cfg.Modules)

	e := engine.New(reg, midi.GetDevice(midi.ParseDeviceType(string(cfg.DeviceType))), engine.Options{
		UpdateRate:   cfg.UpdateRateHz,
		TimeConstant: cfg.TimeConstantSeconds,
		EncoderScale: cfg.EncoderScale,
		Logger:       logger,
	})
	defer e.Close()

	doc, err := config.LoadDocument(cfg.MappingFile)
	switch {
	case err == nil:
		e.Load(doc)
		logger.Info("loaded mappings", "path", cfg.MappingFile)
		if doc.MIDI != nil {
			if cfg.InPort == "" {
				cfg.InPort = doc.MIDI.InPort
			}
			if cfg.OutPort == "" {
				cfg.OutPort = doc.MIDI.OutPort
			}
		}
	case errors.Is(err, os.ErrNotExist):
		logger.Info("no mapping file yet", "path", cfg.MappingFile)
	default:
		return fmt.Errorf("failed to load mappings: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := midi.NewManager()
	defer manager.Close()
	manager.SetDropHook(metrics.DroppedMessages.Inc)

	if cfg.InPort == "" {
		logger.Warn("no input port configured; use --in or set in_port (see pushmap ports)")
	} else {
		port, err := manager.Open(cfg.InPort, cfg.OutPort, midi.DefaultQueueSize)
		if err != nil {
			return fmt.Errorf("failed to open controller: %w", err)
		}
		defer port.Close()
		if err := e.Attach(port); err != nil {
			return err
		}
	}

	runner := engine.NewRunner(e)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(gctx) })

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			if err := metrics.Serve(gctx, cfg.MetricsAddr, logger); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	if cfg.WatchMappingFile {
		w, err := config.NewFileWatcher(cfg.MappingFile, config.DefaultDebounce, func() {
			a.reload(gctx, runner, cfg.MappingFile)
		}, logger)
		if err != nil {
			logger.Warn("failed to watch mapping file", "path", cfg.MappingFile, "error", err)
		} else {
			g.Go(func() error {
				w.Run(gctx)
				return nil
			})
		}
	}

	ports := &mapping.PortSettings{InPort: cfg.InPort, OutPort: cfg.OutPort}
	if !f.noConsole {
		x := console.NewExecutor(console.Env{
			Runner:      runner,
			MappingFile: cfg.MappingFile,
			InstanceID:  cfg.InstanceID,
			Ports:       ports,
		})
		// Not part of the group: a blocked stdin read must not hold up shutdown.
		go func() {
			if err := x.Run(gctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				logger.Error("console failed", "error", err)
			}
			stop()
		}()
	}

	runErr := g.Wait()

	final := e.Document()
	final.InstanceID = cfg.InstanceID
	final.MIDI = ports
	if err := config.SaveDocument(cfg.MappingFile, final); err != nil {
		logger.Error("failed to save mappings", "path", cfg.MappingFile, "error", err)
	} else {
		logger.Info("saved mappings", "path", cfg.MappingFile)
	}
	return runErr
}

// reload applies the mapping file to the running engine unless it matches
// what the engine already holds.
func (a *app) reload(ctx context.Context, runner *engine.Runner, path string) {
	doc, err := config.LoadDocument(path)
	if err != nil {
		a.logger.Warn("failed to reload mappings", "path", path, "error", err)
		return
	}
	err = runner.Do(ctx, func(e *engine.Engine) {
		cur := e.Document()
		if reflect.DeepEqual(cur.KeyGroups, doc.KeyGroups) && reflect.DeepEqual(cur.Maps, doc.Maps) {
			return
		}
		e.Load(doc)
		a.logger.Info("reloaded mappings", "path", path)
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, engine.ErrStopped) {
		a.logger.Warn("failed to apply mappings", "error", err)
	}
}
