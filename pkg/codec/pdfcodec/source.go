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
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/failure"
)

// 📖 sourceDoc is a document parsed from disk
type sourceDoc struct {
	codec *Codec
	path  string
	file  *os.File
	ctx   *model.Context
	done  closer
}

func (d *sourceDoc) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

func (d *sourceDoc) checkPage(i int) error {
	if d.ctx == nil {
		return failure.New(failure.CodecError, "document %s is closed", d.path)
	}
	if i < 0 || i >= d.ctx.PageCount {
		return failure.New(failure.CodecError, "page %d out of range for %s (%d pages)", i+1, d.path, d.ctx.PageCount)
	}
	return nil
}

func (d *sourceDoc) Page(i int) (codec.Page, error) {
	if err := d.checkPage(i); err != nil {
		return nil, err
	}
	return &sourcePage{doc: d, pageNr: i + 1}, nil
}

func (d *sourceDoc) AppendPage(p codec.Page) error {
	return failure.New(failure.CodecError, "appending to %s: parsed documents are read only, use NewDocument", d.path)
}

// SetPageRotation writes /Rotate on the page dictionary, overriding inherited values
func (d *sourceDoc) SetPageRotation(i int, angle int) error {
	if err := d.checkPage(i); err != nil {
		return err
	}
	return setRotation(d.ctx, i+1, angle)
}

func setRotation(ctx *model.Context, pageNr int, angle int) error {
	dict, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return failure.Wrap(failure.CodecError, err, "reading page %d", pageNr)
	}
	if dict == nil {
		return failure.New(failure.CodecError, "page %d has no dictionary", pageNr)
	}
	dict["Rotate"] = types.Integer(angle)
	return nil
}

func (d *sourceDoc) EmbeddedImages(i int) ([]codec.EmbeddedImage, error) {
	if err := d.checkPage(i); err != nil {
		return nil, err
	}

	imgs, err := pdfcpu.ExtractPageImages(d.ctx, i+1, false)
	if err != nil {
		return nil, failure.Wrap(failure.CodecError, err, "extracting images of page %d", i+1)
	}

	// Thumbnails are page previews, not embedded content. Keys are object numbers;
	// sorting them gives a stable order that matches embedding order for files we write
	// but is only an approximation for files from other producers.
	objNrs := make([]int, 0, len(imgs))
	for nr, img := range imgs {
		if img.Thumb {
			continue
		}
		objNrs = append(objNrs, nr)
	}
	slices.Sort(objNrs)

	out := make([]codec.EmbeddedImage, 0, len(objNrs))
	for _, nr := range objNrs {
		img := imgs[nr]
		data, err := io.ReadAll(img)
		if err != nil {
			return nil, failure.Wrap(failure.CodecError, err, "reading image object %d", nr)
		}
		out = append(out, codec.EmbeddedImage{
			Data: data,
			Ext:  normalizeExt(img.FileType),
		})
	}
	return out, nil
}

func normalizeExt(fileType string) string {
	ext := strings.ToLower(strings.TrimPrefix(fileType, "."))
	if ext == "" {
		return "bin"
	}
	return ext
}

// Compact drops unreferenced objects and switches to object and xref streams
func (d *sourceDoc) Compact() error {
	if d.ctx == nil {
		return failure.New(failure.CodecError, "document %s is closed", d.path)
	}
	if d.ctx.Configuration == nil {
		d.ctx.Configuration = d.codec.config()
	}
	d.ctx.Configuration.WriteObjectStream = true
	d.ctx.Configuration.WriteXRefStream = true
	if err := api.OptimizeContext(d.ctx); err != nil {
		return failure.Wrap(failure.CodecError, err, "compacting %s", d.path)
	}
	return nil
}

func (d *sourceDoc) Write(path string) error {
	if d.ctx == nil {
		return failure.New(failure.CodecError, "document %s is closed", d.path)
	}
	if err := api.WriteContextFile(d.ctx, path); err != nil {
		return failure.Wrap(failure.WriteError, err, "writing %s", path)
	}
	return nil
}

func (d *sourceDoc) Close() error {
	return d.done.close(func() error {
		d.ctx = nil
		if err := d.file.Close(); err != nil {
			return failure.Wrap(failure.CodecError, err, "closing %s", d.path)
		}
		return nil
	})
}
