package application

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/bouquets/internal/allocator"
	"github.com/eugenenazirov/bouquets/internal/api"
	"github.com/eugenenazirov/bouquets/internal/config"
	"github.com/eugenenazirov/bouquets/internal/metrics"
	"github.com/eugenenazirov/bouquets/internal/output"
	"github.com/eugenenazirov/bouquets/internal/pipeline"
	"github.com/eugenenazirov/bouquets/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	service *pipeline.Service
	metrics *metrics.Recorder
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := store.SetDesigns(cfg.InitialDesigns); err != nil {
		return nil, fmt.Errorf("failed to apply initial designs: %w", err)
	}

	svc := pipeline.New(allocator.New(), logger)
	recorder := metrics.NewRecorder()
	handler := api.NewHandler(svc, store, api.WithMetrics(recorder))
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage: store,
		service: svc,
		metrics: recorder,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and answers 404 elsewhere.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.NotFoundHandler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// RunBatch allocates the input at path (stdin when empty) and writes the
// encoded bouquets to the configured output file and stdout.
func RunBatch(cfg config.Config, logger *zap.Logger, path string, stdin io.Reader, stdout io.Writer) (pipeline.Report, error) {
	svc := pipeline.New(allocator.New(), logger)
	writer := output.NewWriter(cfg.OutputPath, stdout)

	report, err := svc.Run(path, stdin, writer)
	if err != nil {
		return report, err
	}

	logger.Info("results written",
		zap.String("run_id", report.RunID),
		zap.String("output_path", writer.Path()),
	)
	return report, nil
}
