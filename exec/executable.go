// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package exec

import (
	"fmt"
	"reflect"
	"strings"
)

type Executable struct {
	bin  string
	args []string
}

// NewExecutable accepts an input argument bin which is the path or executable
// name to be ultimately executed.  An optional positional argument face can be
// provided which is of an interface type.  The interface can use the attribute
// annotation tags `flag:"-myarg"` to aid serialization and organization of the
// executable's command-line arguments.  The type of the attribute derives what
// is passed alongside the flag.
func NewExecutable(bin string, face interface{}, args ...string) (*Executable, error) {
	if len(bin) == 0 {
		return nil, fmt.Errorf("binary argument cannot be empty")
	}

	e := &Executable{}

	if strings.Contains(bin, " ") {
		args := strings.Split(bin, " ")
		bin = args[0]
		e.args = args[1:]
	}

	e.args = append(e.args, args...)
	e.bin = bin

	if face != nil {
		ifaceArgs, err := ParseInterfaceArgs(face)
		if err != nil {
			return nil, err
		}

		e.args = append(e.args, ifaceArgs...)
	}

	return e, nil
}

func (e *Executable) Bin() string {
	return e.bin
}

func (e *Executable) Args() []string {
	return e.args
}

// ParseInterfaceArgs returns the array of arguments detected from an interface
// with tag annotations `flag`.
func ParseInterfaceArgs(face interface{}, args ...string) ([]string, error) {
	if face != nil && reflect.ValueOf(face).Kind() == reflect.Ptr {
		return nil, fmt.Errorf("cannot derive interface arguments from pointer: passed by reference")
	}

	t := reflect.TypeOf(face)
	v := reflect.ValueOf(face)

	for i := 0; i < t.NumField(); i++ {
		flag := t.Field(i).Tag.Get("flag")

		if len(flag) > 0 {
			switch v.Field(i).Kind() {
			case reflect.Bool:
				if !v.Field(i).Bool() {
					continue
				}

				args = append(args, flag)

			case reflect.String:
				value := v.Field(i).String()
				if len(value) == 0 {
					continue
				}

				args = append(args, flag, value)

			case reflect.Slice:
				n := v.Field(i).Len()
				if n == 0 {
					continue
				}

				for j := 0; j < n; j++ {
					var str string
					if s, ok := v.Field(i).Index(j).Interface().(fmt.Stringer); ok {
						str = s.String()
					} else if v.Field(i).Index(j).Kind() == reflect.String {
						str = v.Field(i).Index(j).String()
					}

					if len(str) == 0 {
						continue
					}

					args = append(args, flag, str)
				}

			default:
				if !v.Field(i).CanInterface() {
					continue
				}

				value, ok := v.Field(i).Interface().(fmt.Stringer)
				if !ok {
					continue
				}

				str := value.String()
				if len(str) == 0 {
					continue
				}

				args = append(args, flag, str)
			}

			// Recursively iterate through embedded structures
		} else if v.Field(i).Kind() == reflect.Struct {
			structArgs, err := ParseInterfaceArgs(v.Field(i).Interface())
			if err != nil {
				return []string{}, err
			}

			args = append(args, structArgs...)
		}
	}

	return args, nil
}
