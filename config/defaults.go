// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
)

// ConfigDir returns the directory where the husk configuration file lives.
func ConfigDir() string {
	if dir := os.Getenv("HUSK_CONFIG_DIR"); len(dir) > 0 {
		return dir
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(base, "husk")
}

// DefaultConfigFile returns the path of the default YAML configuration file.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// setDefaults walks the attributes of the provided structure and populates
// zero-valued string, bool and int fields from their `default` tag.
func setDefaults(s interface{}) error {
	return setDefaultValue(reflect.ValueOf(s), "")
}

func setDefaultValue(v reflect.Value, def string) error {
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("not a pointer value")
	}

	v = reflect.Indirect(v)

	switch v.Kind() {
	case reflect.String:
		if len(def) > 0 && len(v.String()) == 0 {
			v.SetString(def)
		}

	case reflect.Bool:
		if len(def) > 0 && !v.Bool() {
			b, err := strconv.ParseBool(def)
			if err != nil {
				return fmt.Errorf("could not parse default bool value: %w", err)
			}
			v.SetBool(b)
		}

	case reflect.Int, reflect.Int64:
		if len(def) > 0 && v.Int() == 0 {
			i, err := strconv.ParseInt(def, 10, 64)
			if err != nil {
				return fmt.Errorf("could not parse default integer value: %w", err)
			}
			v.SetInt(i)
		}

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !v.Field(i).CanAddr() {
				continue
			}

			tag := v.Type().Field(i).Tag.Get("default")
			if err := setDefaultValue(v.Field(i).Addr(), tag); err != nil {
				return err
			}
		}
	}

	return nil
}
