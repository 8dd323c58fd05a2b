// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const defaultTimestampFormat = time.RFC3339

var (
	baseTimestamp = time.Now()

	defaultColorScheme = &ColorScheme{
		InfoLevel: lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.AdaptiveColor{
			Light: "15",
			Dark:  "0",
		}).Render,
		WarnLevel: lipgloss.NewStyle().Background(lipgloss.Color("11")).Foreground(lipgloss.AdaptiveColor{
			Light: "15",
			Dark:  "0",
		}).Render,
		ErrorLevel: lipgloss.NewStyle().Background(lipgloss.Color("9")).Foreground(lipgloss.AdaptiveColor{
			Light: "15",
			Dark:  "0",
		}).Render,
		FatalLevel: lipgloss.NewStyle().Background(lipgloss.Color("9")).Foreground(lipgloss.AdaptiveColor{
			Light: "15",
			Dark:  "0",
		}).Render,
		DebugLevel: lipgloss.NewStyle().Background(lipgloss.Color("12")).Foreground(lipgloss.AdaptiveColor{
			Light: "15",
			Dark:  "0",
		}).Render,
		TraceLevel: lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("15")).Render,
		Timestamp:  lipgloss.NewStyle().Render,
	}

	noColorsColorScheme = &ColorScheme{
		InfoLevel:  lipgloss.NewStyle().Render,
		WarnLevel:  lipgloss.NewStyle().Render,
		ErrorLevel: lipgloss.NewStyle().Render,
		FatalLevel: lipgloss.NewStyle().Render,
		DebugLevel: lipgloss.NewStyle().Render,
		TraceLevel: lipgloss.NewStyle().Render,
		Timestamp:  lipgloss.NewStyle().Render,
	}
)

func miniTS() int {
	return int(time.Since(baseTimestamp) / time.Second)
}

type renderFunc func(...string) string

type ColorScheme struct {
	InfoLevel  renderFunc
	WarnLevel  renderFunc
	ErrorLevel renderFunc
	FatalLevel renderFunc
	DebugLevel renderFunc
	TraceLevel renderFunc
	Timestamp  renderFunc
}

type TextFormatter struct {
	// Set to true to bypass checking for a TTY before outputting colors.
	ForceColors bool

	// Force disabling colors.  For a TTY colors are enabled by default.
	DisableColors bool

	// Force formatted layout, even for non-TTY output.
	ForceFormatting bool

	// Disable timestamp logging.  Useful when output is redirected to a
	// logging system that already adds timestamps.
	DisableTimestamp bool

	// Enable logging the full timestamp when a TTY is attached instead of just
	// the time passed since beginning of execution.
	FullTimestamp bool

	// Timestamp format to use for display when a full timestamp is printed.
	TimestampFormat string

	// The fields are sorted by default for a consistent output.
	DisableSorting bool

	// Color scheme to use.
	colorScheme *ColorScheme

	// Whether the logger's out is to a terminal.
	isTerminal bool

	sync.Once
}

func (f *TextFormatter) init(entry *logrus.Entry) {
	if entry.Logger != nil {
		f.isTerminal = f.checkIfTerminal(entry.Logger.Out)
	}
}

func (f *TextFormatter) checkIfTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func (f *TextFormatter) SetColorScheme(colorScheme *ColorScheme) {
	f.colorScheme = colorScheme
}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}

	if !f.DisableSorting {
		sort.Strings(keys)
	}

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	f.Do(func() { f.init(entry) })

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if f.ForceFormatting || f.isTerminal {
		colorScheme := noColorsColorScheme
		if (f.ForceColors || f.isTerminal) && !f.DisableColors {
			colorScheme = f.colorScheme
			if colorScheme == nil {
				colorScheme = defaultColorScheme
			}
		}

		f.printFormatted(b, entry, keys, timestampFormat, colorScheme)
	} else {
		if !f.DisableTimestamp {
			f.appendKeyValue(b, "time", entry.Time.Format(timestampFormat))
		}

		f.appendKeyValue(b, "level", entry.Level.String())

		if entry.Message != "" {
			f.appendKeyValue(b, "msg", entry.Message)
		}

		for _, key := range keys {
			f.appendKeyValue(b, key, entry.Data[key])
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *TextFormatter) printFormatted(b *bytes.Buffer, entry *logrus.Entry, keys []string, timestampFormat string, colorScheme *ColorScheme) {
	var levelColor renderFunc
	var levelText string

	switch entry.Level {
	case logrus.InfoLevel:
		levelText = "i"
		levelColor = colorScheme.InfoLevel
	case logrus.WarnLevel:
		levelText = "W"
		levelColor = colorScheme.WarnLevel
	case logrus.ErrorLevel:
		levelText = "E"
		levelColor = colorScheme.ErrorLevel
	case logrus.FatalLevel, logrus.PanicLevel:
		levelText = "!"
		levelColor = colorScheme.FatalLevel
	case logrus.TraceLevel:
		levelText = "T"
		levelColor = colorScheme.TraceLevel
	default:
		levelText = "D"
		levelColor = colorScheme.DebugLevel
	}

	level := levelColor(fmt.Sprintf(" %1s ", levelText))

	if f.DisableTimestamp {
		fmt.Fprintf(b, "%s %s", level, entry.Message)
	} else {
		var timestamp string
		if !f.FullTimestamp {
			timestamp = fmt.Sprintf("[%04d]", miniTS())
		} else {
			timestamp = entry.Time.Format(timestampFormat)
		}

		fmt.Fprintf(b, "%s %s %s", level, colorScheme.Timestamp(timestamp), entry.Message)
	}

	for _, k := range keys {
		fmt.Fprintf(b, " %s=%+v", levelColor(k), entry.Data[k])
	}
}

func (f *TextFormatter) appendKeyValue(b *bytes.Buffer, key string, value interface{}) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}

	b.WriteString(key)
	b.WriteByte('=')

	switch value := value.(type) {
	case string:
		fmt.Fprintf(b, "%q", value)
	case error:
		fmt.Fprintf(b, "%q", value.Error())
	default:
		fmt.Fprint(b, value)
	}
}
