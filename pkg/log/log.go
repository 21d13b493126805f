// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for filename
	stageWidth  = 16 // Width for stage name
	labelWidth  = 24 // Width for summary labels
	countIndent = 2  // spaces to indent summary lines
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path         string // File path
	Stage        string // Stage that touched the file
	Reason       string // Why the file was skipped or changed
	IsModified   bool   // Whether the file content changed
	IsRemoved    bool   // Whether the file was removed
	DryRun       bool   // Whether the change was only reported
	Replacements int    // Number of fields matched
}

// 📊 Count is one labeled line of the run summary
type Count struct {
	Label string
	N     int
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Discard returns a logger that prints nothing
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a silent one
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.IsRemoved && op.DryRun:
		symbol, symbolColor, status = '✗', color.FgYellow, "would remove"
	case op.IsRemoved:
		symbol, symbolColor, status = '✗', color.FgRed, "removed"
	case op.IsModified && op.DryRun:
		symbol, symbolColor, status = '⟳', color.FgYellow, "would update"
	case op.IsModified:
		symbol, symbolColor, status = '⟳', color.FgBlue, "updated"
	default:
		symbol, symbolColor, status = '-', color.Faint, "unchanged"
	}
	if op.Reason != "" {
		status += " (" + op.Reason + ")"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(op.Path)),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", stageWidth, op.Stage)),
		status)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("stage", op.Stage).
		Str("reason", op.Reason).
		Bool("is_modified", op.IsModified).
		Bool("is_removed", op.IsRemoved).
		Bool("dry_run", op.DryRun).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 Diff prints a rendered diff under a file line
func (l *Logger) Diff(path, rendered string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%*s%s\n%s\n", fileIndent*2, "", color.New(color.Faint).Sprint(path), rendered)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("cgefix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Summary prints one aligned line per count
func (l *Logger) Summary(counts ...Count) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console)
	ev := l.zlog.Info()
	for _, c := range counts {
		fmt.Fprintf(l.console, "%*s%-*s %s\n",
			countIndent, "",
			labelWidth, c.Label+":",
			color.New(color.Bold).Sprint(c.N))
		ev = ev.Int(c.Label, c.N)
	}
	ev.Msg("summary")
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
