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

package operation

import (
	"fmt"
	"strings"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// 🆔 ID names an operation
type ID string

const (
	Merge         ID = "merge"
	Split         ID = "split"
	ConvertImages ID = "convert-images"
	Compress      ID = "compress"
	ExtractImages ID = "extract-images"
	Rotate        ID = "rotate"
)

// 🔢 Cardinality bounds how many files an operation accepts
type Cardinality int

const (
	ExactlyOne Cardinality = iota
	AtLeastOne
)

func (c Cardinality) String() string {
	if c == ExactlyOne {
		return "exactly one"
	}
	return "one or more"
}

// Factory builds the operation that runs a validated plan
type Factory func(env Env, plan Plan) Operation

// 📜 Spec describes an operation's contract
type Spec struct {
	ID          ID
	Label       string // as shown in menus
	Description string
	InputKind   selection.Kind
	Cardinality Cardinality
	Target      status.TargetKind
	NeedsAngle  bool
	New         Factory
}

var order = []ID{Merge, Split, ConvertImages, Compress, ExtractImages, Rotate}

var registry = map[ID]*Spec{
	Merge: {
		ID:          Merge,
		Label:       "Merge PDFs",
		Description: "Combine PDFs into one document, in selection order",
		InputKind:   selection.Document,
		Cardinality: AtLeastOne,
		Target:      status.TargetFile,
		New:         NewMergeOperation,
	},
	Split: {
		ID:          Split,
		Label:       "Split PDF",
		Description: "Write every page of a PDF to its own file",
		InputKind:   selection.Document,
		Cardinality: ExactlyOne,
		Target:      status.TargetDirectory,
		New:         NewSplitOperation,
	},
	ConvertImages: {
		ID:          ConvertImages,
		Label:       "Convert to PDF",
		Description: "Turn images into a PDF with one page per image",
		InputKind:   selection.Image,
		Cardinality: AtLeastOne,
		Target:      status.TargetFile,
		New:         NewConvertOperation,
	},
	Compress: {
		ID:          Compress,
		Label:       "Compress PDF",
		Description: "Drop unused objects and recompress streams",
		InputKind:   selection.Document,
		Cardinality: ExactlyOne,
		Target:      status.TargetFile,
		New:         NewCompressOperation,
	},
	ExtractImages: {
		ID:          ExtractImages,
		Label:       "Extract Images",
		Description: "Save every embedded image of a PDF",
		InputKind:   selection.Document,
		Cardinality: ExactlyOne,
		Target:      status.TargetDirectory,
		New:         NewExtractOperation,
	},
	Rotate: {
		ID:          Rotate,
		Label:       "Rotate Pages",
		Description: "Set the rotation of every page to 90, 180 or 270 degrees",
		InputKind:   selection.Document,
		Cardinality: ExactlyOne,
		Target:      status.TargetFile,
		NeedsAngle:  true,
		New:         NewRotateOperation,
	},
}

// 🔍 Lookup returns the spec for id. Unknown ids are a programming error and panic.
func Lookup(id ID) *Spec {
	spec, ok := registry[id]
	if !ok {
		panic(fmt.Sprintf("operation: unknown id %q", id))
	}
	return spec
}

// ParseID resolves user input: ids, short aliases and menu labels, case insensitive
func ParseID(s string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if id, ok := aliases[key]; ok {
		return id, nil
	}
	if _, ok := registry[ID(key)]; ok {
		return ID(key), nil
	}
	for _, spec := range registry {
		if strings.ToLower(spec.Label) == key {
			return spec.ID, nil
		}
	}
	return "", failure.New(failure.InvalidParameter, "unknown operation %q", s)
}

var aliases = map[string]ID{
	"convert":  ConvertImages,
	"images":   ConvertImages,
	"extract":  ExtractImages,
	"optimize": Compress,
}

// All lists every spec in menu order
func All() []*Spec {
	out := make([]*Spec, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}
