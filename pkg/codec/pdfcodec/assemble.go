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

package pdfcodec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/codec/imagecodec"
	"github.com/walteh/pdfops/pkg/failure"
)

// 🧩 assembledDoc collects pages and materializes them on Write
type assembledDoc struct {
	codec     *Codec
	logger    *zerolog.Logger
	pages     []codec.Page
	rotations map[int]int
	done      closer
}

func (d *assembledDoc) PageCount() int {
	return len(d.pages)
}

func (d *assembledDoc) Page(i int) (codec.Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, failure.New(failure.CodecError, "page %d out of range (%d pages)", i+1, len(d.pages))
	}
	return d.pages[i], nil
}

func (d *assembledDoc) AppendPage(p codec.Page) error {
	switch p.(type) {
	case *sourcePage, *imagecodec.Page:
		d.pages = append(d.pages, p)
		return nil
	default:
		return failure.New(failure.CodecError, "unsupported page type %T", p)
	}
}

func (d *assembledDoc) SetPageRotation(i int, angle int) error {
	if i < 0 || i >= len(d.pages) {
		return failure.New(failure.CodecError, "page %d out of range (%d pages)", i+1, len(d.pages))
	}
	d.rotations[i] = angle
	return nil
}

// EmbeddedImages is only meaningful after the document is written and reopened
func (d *assembledDoc) EmbeddedImages(i int) ([]codec.EmbeddedImage, error) {
	return nil, failure.New(failure.CodecError, "images of unwritten documents are not available")
}

// Compact is a no-op since assembled output is always written with object streams
func (d *assembledDoc) Compact() error {
	return nil
}

func (d *assembledDoc) Close() error {
	return d.done.close(func() error {
		d.pages = nil
		return nil
	})
}

// run is a group of consecutive pages written with a single pdfcpu call
type run struct {
	source *sourceDoc
	nrs    []int
	images []*imagecodec.Page
}

func (d *assembledDoc) runs() []*run {
	var out []*run
	var cur *run
	for _, p := range d.pages {
		switch pg := p.(type) {
		case *sourcePage:
			if cur == nil || cur.source != pg.doc || cur.nrs[len(cur.nrs)-1] >= pg.pageNr {
				cur = &run{source: pg.doc}
				out = append(out, cur)
			}
			cur.nrs = append(cur.nrs, pg.pageNr)
		case *imagecodec.Page:
			if cur == nil || cur.source != nil {
				cur = &run{}
				out = append(out, cur)
			}
			cur.images = append(cur.images, pg)
		}
	}
	return out
}

func (d *assembledDoc) Write(path string) error {
	if len(d.pages) == 0 {
		return d.writeEmpty(path)
	}

	scratch, err := os.MkdirTemp(filepath.Dir(path), ".pdfcodec-*")
	if err != nil {
		return failure.Wrap(failure.WriteError, err, "creating scratch dir for %s", path)
	}
	defer os.RemoveAll(scratch)

	runs := d.runs()
	parts := make([]string, 0, len(runs))
	for i, r := range runs {
		part := filepath.Join(scratch, fmt.Sprintf("part-%03d.pdf", i))
		if err := d.writeRun(scratch, i, r, part); err != nil {
			return err
		}
		parts = append(parts, part)
	}

	assembled := filepath.Join(scratch, "assembled.pdf")
	if len(parts) == 1 {
		assembled = parts[0]
	} else if err := api.MergeCreateFile(parts, assembled, false, d.codec.config()); err != nil {
		return failure.Wrap(failure.WriteError, err, "merging %d parts", len(parts))
	}

	if len(d.rotations) > 0 {
		if err := d.applyRotations(assembled); err != nil {
			return err
		}
	}

	if err := os.Rename(assembled, path); err != nil {
		return failure.Wrap(failure.WriteError, err, "writing %s", path)
	}

	d.logger.Debug().
		Str("path", path).
		Int("pages", len(d.pages)).
		Int("parts", len(parts)).
		Msg("assembled document")

	return nil
}

// writeEmpty writes a catalog with an empty page tree
func (d *assembledDoc) writeEmpty(path string) error {
	pctx, err := pdfcpu.CreateContextWithXRefTable(d.codec.config(), types.PaperSize["A4"])
	if err != nil {
		return failure.Wrap(failure.CodecError, err, "creating empty document")
	}
	if err := api.WriteContextFile(pctx, path); err != nil {
		return failure.Wrap(failure.WriteError, err, "writing empty document")
	}

	d.logger.Debug().Str("path", path).Msg("wrote empty document")

	return nil
}

func (d *assembledDoc) writeRun(scratch string, idx int, r *run, out string) error {
	if r.source != nil {
		selected := make([]string, 0, len(r.nrs))
		for _, nr := range r.nrs {
			selected = append(selected, strconv.Itoa(nr))
		}
		if err := api.TrimFile(r.source.path, out, selected, d.codec.config()); err != nil {
			return failure.Wrap(failure.WriteError, err, "copying pages %v of %s", r.nrs, r.source.path)
		}
		return nil
	}

	files := make([]string, 0, len(r.images))
	for j, img := range r.images {
		f := filepath.Join(scratch, fmt.Sprintf("img-%03d-%03d.%s", idx, j, imageFileExt(img.Ext)))
		if err := os.WriteFile(f, img.Data, 0o600); err != nil {
			return failure.Wrap(failure.WriteError, err, "staging image %s", img.Name)
		}
		files = append(files, f)
	}

	imp := pdfcpu.DefaultImportConfig()
	// page size follows the image
	imp.Pos = types.Full
	if err := api.ImportImagesFile(files, out, imp, d.codec.config()); err != nil {
		return failure.Wrap(failure.WriteError, err, "importing %d images", len(files))
	}
	return nil
}

func (d *assembledDoc) applyRotations(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return failure.Wrap(failure.WriteError, err, "reopening %s", path)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, d.codec.config())
	if err != nil {
		return failure.Wrap(failure.CodecError, err, "reopening %s", path)
	}

	for i, angle := range d.rotations {
		if err := setRotation(ctx, i+1, angle); err != nil {
			return err
		}
	}

	rotated := path + ".rotated"
	if err := api.WriteContextFile(ctx, rotated); err != nil {
		return failure.Wrap(failure.WriteError, err, "writing rotated pages")
	}
	if err := os.Rename(rotated, path); err != nil {
		return failure.Wrap(failure.WriteError, err, "replacing %s", path)
	}
	return nil
}

// imageFileExt maps decoder format names to extensions pdfcpu recognizes
func imageFileExt(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return format
	}
}
