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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// 🎯 Console prints human output and mirrors every line to zerolog
type Console struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 NewConsole creates a console writing to w
func NewConsole(console io.Writer, zlog zerolog.Logger) *Console {
	return &Console{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the console from context
func FromContext(ctx context.Context) *Console {
	c, ok := ctx.Value(contextKey{}).(*Console)
	if !ok {
		panic("console not found in context")
	}
	return c
}

// 🎯 NewContext adds the console to context
func NewContext(ctx context.Context, c *Console) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// 📝 Selection lists staged files. Files in excluded are shown but greyed out.
func (c *Console) Selection(files []selection.StagedFile, excluded map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range files {
		state := status.RowIncluded
		if excluded[f.Path] {
			state = status.RowExcluded
		}
		fmt.Fprintln(c.console, status.FormatFileRow(f.Name(), f.TypeLabel(), f.HumanSize(), state))

		c.zlog.Debug().
			Str("file", f.Path).
			Str("kind", f.Kind.String()).
			Int64("size", f.SizeBytes).
			Bool("excluded", state == status.RowExcluded).
			Msg("staged file")
	}
}

// 📝 Outputs lists files a run produced
func (c *Console) Outputs(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range paths {
		fmt.Fprintf(c.console, "    %s %s\n", color.New(color.FgGreen).Sprint("→"), p)
	}
	c.zlog.Info().Strs("outputs", paths).Msg("outputs written")
}

// 📝 LogNewline logs a newline
func (c *Console) LogNewline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.console)
}

// 📝 Header logs a header
func (c *Console) Header(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("pdfops")
	fmt.Fprintf(c.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	c.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (c *Console) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	c.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (c *Console) Warning(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	c.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (c *Console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	c.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (c *Console) Info(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	c.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (c *Console) Infof(format string, args ...interface{}) {
	c.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (c *Console) Warningf(format string, args ...interface{}) {
	c.Warning(fmt.Sprintf(format, args...))
}

// 📝 Report prints a run report as success or error
func (c *Console) Report(r status.Report) {
	if r.OK {
		c.Success(r.Text)
		return
	}
	c.Error(r.Text)
}
