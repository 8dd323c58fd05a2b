// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// EnvFeeder feeds from the process environment using the `env` tag of each
// configuration attribute.
type EnvFeeder struct{}

func (f EnvFeeder) Feed(structure interface{}) error {
	return feedEnvValue(reflect.ValueOf(structure))
}

func feedEnvValue(v reflect.Value) error {
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("not a pointer value")
	}

	v = reflect.Indirect(v)
	if v.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		if field.Kind() == reflect.Struct && field.CanAddr() {
			if err := feedEnvValue(field.Addr()); err != nil {
				return err
			}
			continue
		}

		tag := v.Type().Field(i).Tag.Get("env")
		if len(tag) == 0 {
			continue
		}

		val, ok := os.LookupEnv(tag)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(val)

		case reflect.Bool:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("could not parse %s: %w", tag, err)
			}
			field.SetBool(b)

		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("could not parse %s: %w", tag, err)
			}
			field.SetInt(n)
		}
	}

	return nil
}
