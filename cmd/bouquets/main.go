package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eugenenazirov/bouquets/internal/application"
	"github.com/eugenenazirov/bouquets/internal/config"
	"github.com/eugenenazirov/bouquets/internal/input"
	"github.com/eugenenazirov/bouquets/internal/logging"
)

var signalNotify = signal.Notify

// cliFlags holds the parsed command line.
type cliFlags struct {
	app            *kingpin.Application
	inputPath      *string
	configFile     *string
	outputPath     *string
	logLevel       *string
	serve          *bool
	port           *string
	designs        *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cliFlags {
	app := kingpin.New("bouquets", "Bouquet Allocator - builds as many bouquets as possible from a flower inventory.\n\n"+
		"Encoded bouquets are printed to stdout and written to the output file. "+
		"Progress and inventory diagnostics are JSON log entries on stderr.")
	return &cliFlags{
		app:            app,
		inputPath:      app.Arg("input", "Input file with designs and flowers (reads stdin until two blank lines when omitted)").String(),
		configFile:     app.Flag("config", "Path to YAML configuration file").String(),
		outputPath:     app.Flag("output", "File the encoded bouquets are written to").String(),
		logLevel:       app.Flag("log-level", "Level of the JSON diagnostics written to stderr (debug, info, warn, error)").String(),
		serve:          app.Flag("serve", "Serve the allocation HTTP API instead of running once").Bool(),
		port:           app.Flag("port", "HTTP port exposed by the API").String(),
		designs:        app.Flag("designs", "Comma-separated initial design catalogue for the API").String(),
		rateLimitRPS:   app.Flag("rate-limit-rps", "Allocation runs per second accepted by POST /api/bouquets (set 0 to disable)").Default("-1").Float64(),
		rateLimitBurst: app.Flag("rate-limit-burst", "Burst of allocation runs accepted by POST /api/bouquets (set 0 to disable)").Default("-1").Int(),
	}
}

// overrides maps the flags that were set onto config overrides.
func (c *cliFlags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *c.configFile,
	}

	if *c.outputPath != "" {
		overrides.OutputPath = c.outputPath
	}

	if *c.logLevel != "" {
		overrides.LogLevel = c.logLevel
	}

	if *c.port != "" {
		overrides.Port = c.port
	}

	if *c.designs != "" {
		overrides.DesignsStr = c.designs
	}

	if *c.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = c.rateLimitRPS
	}

	if *c.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = c.rateLimitBurst
	}

	return overrides
}

func main() {
	_ = godotenv.Load()

	cli := newCLI()
	kingpin.MustParse(cli.app.Parse(os.Args[1:]))
	overrides := cli.overrides()

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !*cli.serve {
		if err := runOnce(cfg, logger, *cli.inputPath, os.Stdin, os.Stdout); err != nil {
			logger.Fatal("allocation failed", zap.Error(err))
		}
		return
	}

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// runOnce performs a batch allocation. Empty input is reported to the user
// and is not an error.
func runOnce(cfg config.Config, logger *zap.Logger, path string, stdin io.Reader, stdout io.Writer) error {
	_, err := application.RunBatch(cfg, logger, path, stdin, stdout)
	if errors.Is(err, input.ErrEmptyInput) {
		_, _ = fmt.Fprintln(stdout, err.Error())
		return nil
	}
	return err
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
