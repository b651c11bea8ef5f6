// main.go: consumer process entry point (C8)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tradeflow/eventlog"
	"github.com/tradeflow/eventlog/metrics"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event_processor [log_path]",
		Short: "Tails an append-only event log and validates decoded frames",
		Long: "event_processor reads trade events appended to a binary event log, " +
			"feeds them through a bounded SPSC ring to a validating consumer, and " +
			"reports throughput and latency. It never writes to the log itself.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var positional string
			if len(args) == 1 {
				positional = args[0]
			}
			return run(cmd.Context(), positional)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func run(ctx context.Context, positionalLogPath string) error {
	cfg, err := loadConfig(positionalLogPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reader, err := eventlog.NewReader(cfg.LogPath)
	if err != nil {
		if errors.Is(err, eventlog.ErrIoError) {
			logger.Error("cannot open event log", zap.String("path", cfg.LogPath), zap.Error(err))
		}
		return err
	}
	defer func() { _ = reader.Close() }()

	tailer, err := eventlog.NewTailer(cfg.LogPath, logger)
	if err != nil {
		return fmt.Errorf("start tailer: %w", err)
	}
	defer func() { _ = tailer.Close() }()

	ring, err := eventlog.NewRing[eventlog.Frame](cfg.RingCapacity)
	if err != nil {
		return fmt.Errorf("allocate ring: %w", err)
	}

	validator := eventlog.NewValidator(logger)
	histogram := eventlog.NewHistogram()
	collector := metrics.NewCollector(nil)

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	var shuttingDown atomic.Bool
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	var producerErr error
	wg.Add(3)
	go func() {
		defer wg.Done()
		producerErr = runProducer(reader, tailer, ring, &shuttingDown, logger)
	}()
	go func() {
		defer wg.Done()
		runConsumer(ring, validator, histogram, collector, cfg.HistogramReportEvery, &shuttingDown, logger)
	}()
	go func() {
		defer wg.Done()
		runMonitor(ring, validator, collector, cfg.MonitorInterval, &shuttingDown, logger)
	}()

	logger.Info("event_processor started",
		zap.String("log_path", cfg.LogPath),
		zap.Uint64("ring_capacity", ring.Capacity()),
		zap.String("metrics_addr", cfg.MetricsAddr),
	)

	// workersDone closes once all three goroutines have returned, which
	// happens either because sigCtx was canceled below or because the
	// producer hit an unrecoverable error on its own and set shuttingDown
	// without any signal ever arriving. Waiting on sigCtx alone would hang
	// forever in the latter case.
	workersDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(workersDone)
	}()

	select {
	case <-sigCtx.Done():
		logger.Info("shutdown signal received, draining ring")
		shuttingDown.Store(true)
		<-workersDone
	case <-workersDone:
		logger.Warn("consumer pipeline stopped itself before any shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("event_processor stopped",
		zap.Uint64("events_processed", validator.EventsProcessed()),
		zap.Uint64("trades_validated", validator.TradesValidated()),
		zap.Uint64("validation_errors", validator.ValidationErrors()),
		zap.String("final_latency_summary", histogram.Summary()),
	)
	return producerErr
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zap.AtomicLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
