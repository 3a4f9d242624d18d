// FILE: logpane/src/cmd/logpane-demo/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logpane/src/internal/config"
	"logpane/src/internal/tui"
	"logpane/src/internal/version"
	"logpane/src/logpane"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

var logger *log.Logger

func main() {
	args := os.Args[1:]
	CheckAndDisplayHelp(args)

	flags, cfgArgs, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flags.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if flags.ConfigFile != "" {
		os.Setenv("LOGPANE_CONFIG_FILE", flags.ConfigFile)
	}

	cfg, err := config.Load(cfgArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if flags.SaveConfig != "" {
		if err := cfg.SaveToFile(flags.SaveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", flags.SaveConfig)
		os.Exit(0)
	}

	if err := initializeLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer shutdownLogger()

	logger.Info("msg", "Logpane demo starting",
		"version", version.String(),
		"config_file", config.GetConfigPath(),
		"max_records", cfg.MaxRecords)

	if err := run(cfg); err != nil {
		logger.Error("msg", "Demo failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		shutdownLogger()
		os.Exit(1)
	}
}

func run(cfg *config.Options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := logpane.FromOptions(cfg).Logger(logger).Init(); err != nil {
		return fmt.Errorf("failed to register capture: %w", err)
	}
	defer func() {
		if err := logpane.Teardown(); err != nil {
			logger.Warn("msg", "Capture teardown failed", "error", err)
		}
	}()

	emitBurst(cfg.Demo.InitialBurst)

	gen := newGenerator(cfg.Demo, logger)
	gen.Start(ctx)
	defer gen.Stop()

	v, err := logpane.NewViewer()
	if err != nil {
		return err
	}

	interactive := !cfg.Demo.Headless && term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive {
		return runHeadless(ctx, v, cfg.Demo.HeadlessSeconds)
	}

	model := tui.New(v, 0, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("viewer exited: %w", err)
	}
	return nil
}

// runHeadless lets the writers run, then prints the captured rows
func runHeadless(ctx context.Context, v *logpane.Viewer, seconds float64) error {
	select {
	case <-time.After(time.Duration(seconds * float64(time.Second))):
	case <-ctx.Done():
	}

	// Fit the dump to the screen when printing to a terminal
	if _, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil && height > 1 {
		v.SetMaxRows(height - 1)
	}

	n, err := v.Export(os.Stdout, "text")
	if err != nil {
		return fmt.Errorf("failed to export rows: %w", err)
	}

	frame := v.Frame()
	fmt.Fprintf(os.Stderr, "%d rows shown, %d stored, %d dropped, %d evicted\n",
		n, frame.Total, frame.Dropped, frame.Evicted)
	return nil
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
		}
	}
}
