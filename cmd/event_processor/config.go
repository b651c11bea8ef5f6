// config.go: viper-backed runtime configuration for the consumer process
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/tradeflow/eventlog"
)

const envPrefix = "EVENT_PROCESSOR"

// processorConfig holds everything the consumer process needs beyond the
// log path itself (which arrives as the CLI's positional argument).
type processorConfig struct {
	LogPath              string
	RingCapacity         uint64
	MonitorInterval      time.Duration
	HistogramReportEvery uint64
	MetricsAddr          string
	LogLevel             string
}

func loadConfig(positionalLogPath string) (processorConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("log_path", "../data/event_log.bin")
	v.SetDefault("ring_capacity", uint64(4096))
	v.SetDefault("monitor_interval", 5*time.Second)
	v.SetDefault("histogram_report_every", uint64(10000))
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("log_level", "info")

	cfg := processorConfig{
		LogPath:              v.GetString("log_path"),
		RingCapacity:         v.GetUint64("ring_capacity"),
		MonitorInterval:      v.GetDuration("monitor_interval"),
		HistogramReportEvery: v.GetUint64("histogram_report_every"),
		MetricsAddr:          v.GetString("metrics_addr"),
		LogLevel:             v.GetString("log_level"),
	}

	// A positional log-path argument always wins over the environment.
	if positionalLogPath != "" {
		cfg.LogPath = positionalLogPath
	}

	if err := eventlog.ValidateRingCapacity(cfg.RingCapacity); err != nil {
		return processorConfig{}, fmt.Errorf("invalid %s_RING_CAPACITY: %w", envPrefix, err)
	}

	return cfg, nil
}
