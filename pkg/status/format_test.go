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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "not_started", current: 0, total: 10, expected: "⏳ Processed 0 of 10 (0%)"},
		{name: "rounds_down", current: 2, total: 3, expected: "⏳ Processed 2 of 3 (66%)"},
		{name: "complete", current: 4, total: 4, expected: "✅ Processed 4 of 4 (100%)"},
		{name: "clamped", current: 7, total: 4, expected: "✅ Processed 4 of 4 (100%)"},
		{name: "empty_run", current: 0, total: 0, expected: "✅ Nothing to process"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewDefaultFormatter().FormatProgress(tt.current, tt.total))
		})
	}
}

func TestFormatterMessages(t *testing.T) {
	f := NewDefaultFormatter()

	assert.Equal(t, "✨ Wrote out/a.pdf", f.FormatOutput("out/a.pdf"))
	assert.Equal(t, "⏭️  Skipped notes.txt (unsupported extension)", f.FormatSkipped("notes.txt", "unsupported extension"))
	assert.Equal(t, "⏭️  Skipped notes.txt", f.FormatSkipped("notes.txt", ""))
}

func TestFormatFileRow(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct {
		name   string
		state  RowState
		prefix string
	}{
		{name: "included", state: RowIncluded, prefix: "✓"},
		{name: "excluded", state: RowExcluded, prefix: "-"},
		{name: "rejected", state: RowRejected, prefix: "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FormatFileRow("scan.png", "PNG", "2.0 kB", tt.state)
			assert.True(t, strings.HasPrefix(row, "    "+tt.prefix+" scan.png"), "row should start with indent, marker and name: %q", row)
			assert.Contains(t, row, "PNG", "row should include the type")
			assert.True(t, strings.HasSuffix(row, "2.0 kB"), "size should be right aligned at the end")
		})
	}
}

func TestFormatFileRowTruncatesLongNames(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	long := strings.Repeat("é", 50) + ".pdf"
	row := FormatFileRow(long, "PDF", "1 B", RowIncluded)

	assert.Contains(t, row, strings.Repeat("é", 34)+"… PDF")
	assert.NotContains(t, row, ".pdf")
}

func TestProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := zerolog.New(buf).WithContext(context.Background())

	p := NewProgress()
	p.Start(ctx, 3)
	p.Step(ctx)
	p.Step(ctx)
	p.Skip(ctx, "anim.gif", "unsupported extension .gif")

	assert.Equal(t, 2, p.Processed())
	assert.Contains(t, buf.String(), "Processed 2 of 3 (66%)")
	assert.Contains(t, buf.String(), "Skipped anim.gif (unsupported extension .gif)")

	p.Start(ctx, 1)
	assert.Zero(t, p.Processed(), "Start resets the count")
}
