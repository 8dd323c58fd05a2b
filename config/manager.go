// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Feeder provides configuration data for the manager to bind onto the Config
// structure.
type Feeder interface {
	Feed(structure interface{}) error
}

// ConfigManager uses the package facilities, there should be at least one
// instance of it.  It holds the configuration feeders and structs.
type ConfigManager struct {
	Config     *Config
	ConfigFile string
	Feeders    []Feeder
}

type ConfigManagerOption func(cm *ConfigManager) error

func WithFeeder(feeder Feeder) ConfigManagerOption {
	return func(cm *ConfigManager) error {
		cm.AddFeeder(feeder)
		return nil
	}
}

func WithFile(file string, forceCreate bool) ConfigManagerOption {
	return func(cm *ConfigManager) error {
		parts := strings.Split(file, ".")
		if len(parts) == 1 {
			return fmt.Errorf("unknown file extension for config file: %s", file)
		}

		_, err := os.Stat(file)

		switch parts[len(parts)-1] {
		case "yaml", "yml":
			yml := YamlFeeder{
				File: file,
			}
			if os.IsNotExist(err) && forceCreate {
				if err := yml.Write(cm.Config); err != nil {
					return fmt.Errorf("could not write initial config: %v", err)
				}
			}

			cm.ConfigFile = file

			return WithFeeder(yml)(cm)
		default:
			return fmt.Errorf("unsupported file extension: %s", parts[len(parts)-1])
		}
	}
}

func WithDefaultConfigFile() ConfigManagerOption {
	return func(cm *ConfigManager) error {
		return WithFile(DefaultConfigFile(), true)(cm)
	}
}

func NewConfigManager(opts ...ConfigManagerOption) (*ConfigManager, error) {
	cm := &ConfigManager{}

	c, err := NewDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("could not seed default values for config: %s", err)
	}

	cm.Config = c

	// The environment always feeds last so it takes precedence over files.
	cm.AddFeeder(EnvFeeder{})

	for _, o := range opts {
		if err := o(cm); err != nil {
			return nil, fmt.Errorf("could not apply config manager option: %v", err)
		}
	}

	// Feed the config, pass the manager anyway if this fails, we still have
	// defaults.
	if err := cm.Feed(); err != nil {
		return cm, fmt.Errorf("could not feed config: %v", err)
	}

	return cm, nil
}

// AddFeeder adds a feeder that provides configuration data.
func (cm *ConfigManager) AddFeeder(f Feeder) *ConfigManager {
	// File feeders are prepended so the environment keeps precedence.
	cm.Feeders = append([]Feeder{f}, cm.Feeders...)
	return cm
}

// Feed binds configuration data from the added feeders to the config struct.
func (cm *ConfigManager) Feed() error {
	for _, f := range cm.Feeders {
		if err := f.Feed(cm.Config); err != nil {
			return err
		}
	}

	return nil
}

// Write persists the current configuration to the manager's file.
func (cm *ConfigManager) Write() error {
	if len(cm.ConfigFile) == 0 {
		return fmt.Errorf("no config file associated with this manager")
	}

	return YamlFeeder{File: cm.ConfigFile}.Write(cm.Config)
}
