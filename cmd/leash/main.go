package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AGmitmanipal/AI-PET/internal/adapters/feed"
	"github.com/AGmitmanipal/AI-PET/internal/app"
	"github.com/AGmitmanipal/AI-PET/internal/config"
	"github.com/AGmitmanipal/AI-PET/internal/simulate"
	"github.com/AGmitmanipal/AI-PET/internal/tui"
	"github.com/AGmitmanipal/AI-PET/pkg/logger"
)

const pumpShutdownTimeout = 5 * time.Second

var (
	simGestures int
	simInterval time.Duration
	simHold     time.Duration
	simSeed     int64
	simExport   string
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "leash",
		Short: "dual virtual joystick controller for the ai-pet leash",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(ctx)
		},
	}

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "drive the controller with synthetic drag gestures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(ctx)
		},
	}
	simCmd.Flags().IntVar(&simGestures, "gestures", 6, "number of drag gestures")
	simCmd.Flags().DurationVar(&simInterval, "interval", 16*time.Millisecond, "pointer sample interval")
	simCmd.Flags().DurationVar(&simHold, "hold", 500*time.Millisecond, "hold duration at the target vector")
	simCmd.Flags().Int64Var(&simSeed, "seed", 1, "random seed for gesture targets")
	simCmd.Flags().StringVar(&simExport, "export", "", "write the final log export to this path")
	rootCmd.AddCommand(simCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Get().Error(ctx, "command failed", logger.Error(err))
		os.Exit(1)
	}
}

// runInteractive wires controller, feed, and terminal view together.
func runInteractive(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(logger.Get()),
		app.WithThrottleWindow(time.Duration(cfg.ThrottleWindowMS)*time.Millisecond),
		app.WithLogCapacity(cfg.LogCapacity),
		app.WithExportName(cfg.ExportPath),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	queue := feed.NewInMemoryQueue(feed.WithBuffer(cfg.FeedBuffer))
	pump := feed.NewPump(queue, svc)
	go pump.Run(ctx)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), pumpShutdownTimeout)
		defer cancel()
		if err := pump.Shutdown(shutdownCtx); err != nil {
			logger.Get().Warn(ctx, "pump shutdown", logger.Error(err))
		}
	}()

	return tui.Run(ctx, svc, queue, cfg.PadRadius)
}

func runSimulation(ctx context.Context) error {
	cfg := simulate.DefaultConfig()
	cfg.Gestures = simGestures
	cfg.SampleInterval = simInterval
	cfg.Hold = simHold
	cfg.Seed = simSeed
	cfg.ExportPath = simExport
	return simulate.Run(ctx, cfg)
}
