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

package status

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Notifier receives status events from the core
type Notifier interface {
	OperationSelected(ctx context.Context, label string)
	FilesAdded(ctx context.Context, n int)
	FilesRemoved(ctx context.Context, n int)
	ExecutionStarted(ctx context.Context, label string, files int)
	ExecutionFinished(ctx context.Context, report Report)
}

// NopNotifier drops every event
type NopNotifier struct{}

func (NopNotifier) OperationSelected(context.Context, string)     {}
func (NopNotifier) FilesAdded(context.Context, int)               {}
func (NopNotifier) FilesRemoved(context.Context, int)             {}
func (NopNotifier) ExecutionStarted(context.Context, string, int) {}
func (NopNotifier) ExecutionFinished(context.Context, Report)     {}

// 🖥️ ConsoleNotifier prints events with pterm and mirrors them to zerolog
type ConsoleNotifier struct {
	info    pterm.PrefixPrinter
	success pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

// NewConsoleNotifier creates a notifier writing to w
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{
		info:    *pterm.Info.WithPrefix(pterm.Prefix{Text: "📦", Style: pterm.Info.Prefix.Style}).WithWriter(w),
		success: *pterm.Success.WithPrefix(pterm.Prefix{Text: "✅", Style: pterm.Success.Prefix.Style}).WithWriter(w),
		failure: *pterm.Error.WithPrefix(pterm.Prefix{Text: "❌", Style: pterm.Error.Prefix.Style}).WithWriter(w),
	}
}

func (n *ConsoleNotifier) OperationSelected(ctx context.Context, label string) {
	msg := fmt.Sprintf("Selected feature: %s", label)
	n.info.Println(msg)
	zerolog.Ctx(ctx).Debug().Msg(msg)
}

func (n *ConsoleNotifier) FilesAdded(ctx context.Context, count int) {
	msg := fmt.Sprintf("Added %d file(s)", count)
	n.info.Println(msg)
	zerolog.Ctx(ctx).Debug().Int("files", count).Msg(msg)
}

func (n *ConsoleNotifier) FilesRemoved(ctx context.Context, count int) {
	msg := fmt.Sprintf("Removed %d file(s)", count)
	n.info.Println(msg)
	zerolog.Ctx(ctx).Debug().Int("files", count).Msg(msg)
}

func (n *ConsoleNotifier) ExecutionStarted(ctx context.Context, label string, files int) {
	msg := fmt.Sprintf("Processing %s...", label)
	n.info.Println(msg)
	zerolog.Ctx(ctx).Debug().Int("files", files).Msg(msg)
}

func (n *ConsoleNotifier) ExecutionFinished(ctx context.Context, report Report) {
	if report.OK {
		n.success.Println(report.Text)
		zerolog.Ctx(ctx).Info().Msg(report.Text)
		return
	}
	n.failure.Println(report.Text)
	zerolog.Ctx(ctx).Error().Msg(report.Text)
}
