// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"

	"husk.sh/config"
	"husk.sh/log"
)

type CliOptions struct {
	Logger        *logrus.Logger
	ConfigManager *config.ConfigManager
}

type CliOption func(*CliOptions) error

// WithDefaultConfigManager instantiates a configuration manager based on the
// default configuration file.
func WithDefaultConfigManager() CliOption {
	return func(copts *CliOptions) error {
		if copts.ConfigManager != nil {
			return nil
		}

		cfgm, err := config.NewConfigManager(
			config.WithDefaultConfigFile(),
		)
		if err != nil {
			return err
		}

		copts.ConfigManager = cfgm

		return nil
	}
}

// WithDefaultLogger sets up the built-in logger based on the configuration
// found in the ConfigManager.
func WithDefaultLogger() CliOption {
	return func(copts *CliOptions) error {
		if copts.Logger != nil {
			return nil
		}

		if copts.ConfigManager == nil {
			copts.Logger = log.L
			return nil
		}

		logger := logrus.New()
		logger.SetOutput(os.Stderr)

		cfg := copts.ConfigManager.Config

		switch log.LoggerTypeFromString(cfg.Log.Type) {
		case log.QUIET:
			formatter := new(logrus.TextFormatter)
			logger.Formatter = formatter

		case log.JSON:
			formatter := new(logrus.JSONFormatter)
			formatter.DisableTimestamp = !cfg.Log.Timestamps
			logger.Formatter = formatter

		default:
			formatter := new(log.TextFormatter)
			formatter.FullTimestamp = true
			formatter.DisableTimestamp = !cfg.Log.Timestamps
			formatter.DisableColors = cfg.NoColor
			logger.Formatter = formatter
		}

		level, ok := log.Levels()[cfg.Log.Level]
		if !ok {
			level = logrus.InfoLevel
		}
		logger.Level = level

		copts.Logger = logger

		return nil
	}
}
