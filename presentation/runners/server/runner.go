package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calcd/application/logging"
	"calcd/infrastructure/settings"
	"calcd/infrastructure/telemetry/quizstats"

	"golang.org/x/sync/errgroup"
)

const statsInterval = time.Minute

var ErrNoTransportEnabled = errors.New("no transport is enabled in server configuration")

type Runner struct {
	deps          AppDependencies
	logger        logging.Logger
	statsInterval time.Duration
}

func NewRunner(deps AppDependencies, logger logging.Logger) *Runner {
	return &Runner{
		deps:          deps,
		logger:        logger,
		statsInterval: statsInterval,
	}
}

// Run serves every enabled transport until ctx is cancelled.
// Fail-fast: the first transport returning an error cancels the others.
func (r *Runner) Run(ctx context.Context) error {
	enabled := r.deps.Configuration().EnabledSettings()
	if len(enabled) == 0 {
		return ErrNoTransportEnabled
	}

	stats := quizstats.NewCollector()
	quizstats.SetGlobal(stats)
	reportCtx, stopReport := context.WithCancel(context.Background())
	reported := make(chan struct{})
	go func() {
		defer close(reported)
		stats.Report(reportCtx, r.statsInterval, r.logger)
	}()
	defer func() {
		stopReport()
		<-reported
	}()

	eg, runCtx := errgroup.WithContext(ctx)
	for _, s := range enabled {
		eg.Go(func() error {
			if err := r.serve(runCtx, s); err != nil {
				return fmt.Errorf("%s worker failed: %w", s.Protocol, err)
			}
			return nil
		})
	}

	return eg.Wait()
}

func (r *Runner) serve(ctx context.Context, s settings.Settings) error {
	handler, err := r.deps.HandlerFactory().CreateHandler(ctx, s)
	if err != nil {
		return fmt.Errorf("error creating handler: %w", err)
	}
	if err := handler.HandleTransport(); err != nil {
		// a transport stopped by cancellation is not a failure
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
