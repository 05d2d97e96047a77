package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/bouquets/internal/allocator"
	"github.com/eugenenazirov/bouquets/internal/bouquet"
	"github.com/eugenenazirov/bouquets/internal/input"
)

// Report is the outcome of one run.
type Report struct {
	RunID          string
	Large          []string
	Small          []string
	LargeRemaining int
	SmallRemaining int
	Elapsed        time.Duration
}

// ResultWriter persists encoded bouquets.
type ResultWriter interface {
	Write(large, small []string) error
}

// Service wires the allocator and logger into a run.
type Service struct {
	allocator allocator.Allocator
	logger    *zap.Logger
	newID     func() string
}

// Option configures Service behaviour.
type Option func(*Service)

// WithIDGenerator overrides run ID generation, primarily for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// New constructs a Service.
func New(alloc allocator.Allocator, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		allocator: alloc,
		logger:    logger,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process allocates both pools of batch. Stock in batch is consumed.
func (s *Service) Process(batch input.Batch) (Report, error) {
	report := Report{RunID: s.newID()}
	logger := s.logger.With(zap.String("run_id", report.RunID))
	start := time.Now()

	logger.Info("inventory before allocation",
		zap.Any("large_flowers", batch.Large.Stock.Counts()),
		zap.Any("small_flowers", batch.Small.Stock.Counts()),
	)

	large, err := s.allocate(logger, bouquet.Large, batch.Large)
	if err != nil {
		return Report{}, err
	}
	small, err := s.allocate(logger, bouquet.Small, batch.Small)
	if err != nil {
		return Report{}, err
	}

	report.Large = bouquet.EncodeAll(large.Bouquets)
	report.Small = bouquet.EncodeAll(small.Bouquets)
	report.LargeRemaining = large.Remaining
	report.SmallRemaining = small.Remaining
	report.Elapsed = time.Since(start)

	logger.Info("inventory after allocation",
		zap.Any("large_flowers", batch.Large.Stock.Counts()),
		zap.Any("small_flowers", batch.Small.Stock.Counts()),
	)
	logger.Info("allocation completed",
		zap.Int("large_bouquets", len(report.Large)),
		zap.Int("small_bouquets", len(report.Small)),
		zap.Int("large_remaining", report.LargeRemaining),
		zap.Int("small_remaining", report.SmallRemaining),
		zap.Duration("duration", report.Elapsed),
	)

	return report, nil
}

func (s *Service) allocate(logger *zap.Logger, size bouquet.Size, pool input.Pool) (allocator.Result, error) {
	result, err := s.allocator.Allocate(pool.Designs, pool.Stock)
	if err != nil {
		return allocator.Result{}, fmt.Errorf("allocate %s bouquets: %w", size, err)
	}
	logger.Debug("pool allocated",
		zap.Stringer("pool", size),
		zap.Int("designs", len(pool.Designs)),
		zap.Int("bouquets", len(result.Bouquets)),
		zap.Int("remaining", result.Remaining),
	)
	return result, nil
}

// Run acquires input from path (or stdin when path is empty), processes it
// and hands the encoded bouquets to out. Empty input returns
// input.ErrEmptyInput before anything is written.
func (s *Service) Run(path string, stdin io.Reader, out ResultWriter) (Report, error) {
	lines, err := input.Acquire(path, stdin)
	if err != nil {
		return Report{}, err
	}

	batch, err := input.Partition(lines)
	if err != nil {
		return Report{}, fmt.Errorf("parse input: %w", err)
	}

	report, err := s.Process(batch)
	if err != nil {
		return Report{}, err
	}

	if err := out.Write(report.Large, report.Small); err != nil {
		return report, fmt.Errorf("write results: %w", err)
	}
	return report, nil
}
