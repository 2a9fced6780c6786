// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package logging provides the structured logger used by the site generator
// and the mdhtml command.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// New returns a logger that writes to stderr at the given level.
// Valid levels are "debug", "info", "warn", and "error".
// Anything else is treated as "info".
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter returns a logger that writes to w at the given level.
// Output is formatted for humans when w is a terminal
// and as logfmt otherwise.
func NewWriter(w io.Writer, level string) *log.Logger {
	opts := log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	}
	if !isTerminal(w) {
		opts.Formatter = log.LogfmtFormatter
	}
	logger := log.NewWithOptions(w, opts)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel converts a level name to a [log.Level].
// Names are case-insensitive; unknown names map to [log.InfoLevel].
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level logger,
// creating it at info level on first use.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
