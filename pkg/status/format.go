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
	"fmt"
)

// Formatter defines how run progress is rendered into log messages
type Formatter interface {
	// FormatOutput formats a published output file
	FormatOutput(path string) string

	// FormatSkipped formats an input that was left out of a run
	FormatSkipped(path, reason string) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatOutput formats a published output with an emoji
func (f *DefaultFormatter) FormatOutput(path string) string {
	return fmt.Sprintf("✨ Wrote %s", path)
}

// FormatSkipped formats a skipped input
func (f *DefaultFormatter) FormatSkipped(path, reason string) string {
	if reason == "" {
		return fmt.Sprintf("⏭️  Skipped %s", path)
	}
	return fmt.Sprintf("⏭️  Skipped %s (%s)", path, reason)
}

// FormatProgress reports how many of total items are done
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	if total <= 0 {
		return "✅ Nothing to process"
	}
	current = min(max(current, 0), total)
	pct := current * 100 / total
	if current == total {
		return fmt.Sprintf("✅ Processed %d of %d (100%%)", current, total)
	}
	return fmt.Sprintf("⏳ Processed %d of %d (%d%%)", current, total, pct)
}
