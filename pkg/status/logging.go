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
	"unicode/utf8"

	"github.com/fatih/color"
)

// column widths of a listed input
const (
	rowIndent = "    "
	nameCols  = 35
	typeCols  = 6
	sizeCols  = 10
)

// RowState marks a listed input
type RowState int

const (
	RowIncluded RowState = iota
	RowExcluded          // staged but left out of the run
	RowRejected
)

func (s RowState) marker() string {
	switch s {
	case RowIncluded:
		return color.GreenString("✓")
	case RowExcluded:
		return color.HiBlackString("-")
	default:
		return color.RedString("✗")
	}
}

// 🎯 FormatFileRow renders one staged input as marker, name, type and right aligned size.
// Names wider than the name column are cut with an ellipsis.
func FormatFileRow(name, fileType, size string, state RowState) string {
	if utf8.RuneCountInString(name) > nameCols {
		name = string([]rune(name)[:nameCols-1]) + "…"
	}
	return fmt.Sprintf("%s%s %-*s %-*s %*s", rowIndent, state.marker(), nameCols, name, typeCols, fileType, sizeCols, size)
}
