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

// Package codectest provides a fake document codec that stores documents as JSON.
// Pages carry labels so tests can assert ordering, rotation and image extraction
// without a real PDF implementation.
package codectest

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/failure"
)

// FileHeader starts every fake document so the selection prober sees a PDF
const FileHeader = "%PDF-1.7 codectest\n"

// Image is an embedded image in a fake document
type Image struct {
	Data []byte `json:"data"`
	Ext  string `json:"ext"`
}

// PageSpec is the serialized form of a page
type PageSpec struct {
	Label    string  `json:"label"`
	Rotation int     `json:"rotation"`
	Images   []Image `json:"images,omitempty"`
}

// DocSpec is the serialized form of a document
type DocSpec struct {
	Pages []PageSpec `json:"pages"`
	// Junk stands in for unreferenced objects; Compact drops it
	Junk string `json:"junk,omitempty"`
}

// Page is a fake page reference
type Page struct {
	Spec PageSpec
}

func (p *Page) Origin() string {
	return p.Spec.Label
}

// 🧪 Codec implements codec.DocumentCodec and codec.ImageCodec
type Codec struct {
	open atomic.Int64

	mu sync.Mutex
	// FailCompact makes Compact fail
	FailCompact bool
	// FailWriteContaining makes Write fail for paths containing the substring
	FailWriteContaining string
}

var (
	_ codec.DocumentCodec = (*Codec)(nil)
	_ codec.ImageCodec    = (*Codec)(nil)
)

// New creates a fake codec
func New() *Codec {
	return &Codec{}
}

// OpenHandles reports documents opened or created but not closed
func (c *Codec) OpenHandles() int64 {
	return c.open.Load()
}

func (c *Codec) Open(ctx context.Context, path string) (codec.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, failure.Wrap(failure.CodecError, err, "reading %s", path)
	}
	spec, err := Decode(raw)
	if err != nil {
		return nil, failure.Wrap(failure.CodecError, err, "parsing %s", path)
	}
	c.open.Add(1)
	return &document{codec: c, spec: spec}, nil
}

func (c *Codec) NewDocument(ctx context.Context) (codec.Document, error) {
	c.open.Add(1)
	return &document{codec: c, spec: DocSpec{}}, nil
}

// PageFromImage labels the page with name. Data starting with "bad" is undecodable.
func (c *Codec) PageFromImage(ctx context.Context, name string, data []byte) (codec.Page, error) {
	if bytes.HasPrefix(data, []byte("bad")) {
		return nil, failure.New(failure.DecodeError, "decoding %s: unknown image format", name)
	}
	return &Page{Spec: PageSpec{Label: "img:" + name}}, nil
}

type document struct {
	codec  *Codec
	spec   DocSpec
	closed bool
}

func (d *document) PageCount() int {
	return len(d.spec.Pages)
}

func (d *document) Page(i int) (codec.Page, error) {
	if i < 0 || i >= len(d.spec.Pages) {
		return nil, failure.New(failure.CodecError, "page %d out of range", i)
	}
	return &Page{Spec: d.spec.Pages[i]}, nil
}

func (d *document) AppendPage(p codec.Page) error {
	fp, ok := p.(*Page)
	if !ok {
		return failure.New(failure.CodecError, "foreign page %T", p)
	}
	d.spec.Pages = append(d.spec.Pages, fp.Spec)
	return nil
}

func (d *document) SetPageRotation(i int, angle int) error {
	if i < 0 || i >= len(d.spec.Pages) {
		return failure.New(failure.CodecError, "page %d out of range", i)
	}
	d.spec.Pages[i].Rotation = angle
	return nil
}

func (d *document) EmbeddedImages(i int) ([]codec.EmbeddedImage, error) {
	if i < 0 || i >= len(d.spec.Pages) {
		return nil, failure.New(failure.CodecError, "page %d out of range", i)
	}
	var out []codec.EmbeddedImage
	for _, img := range d.spec.Pages[i].Images {
		out = append(out, codec.EmbeddedImage{Data: img.Data, Ext: img.Ext})
	}
	return out, nil
}

func (d *document) Compact() error {
	d.codec.mu.Lock()
	fail := d.codec.FailCompact
	d.codec.mu.Unlock()
	if fail {
		return failure.New(failure.CodecError, "compacting: corrupt object stream")
	}
	d.spec.Junk = ""
	return nil
}

func (d *document) Write(path string) error {
	d.codec.mu.Lock()
	substr := d.codec.FailWriteContaining
	d.codec.mu.Unlock()
	if substr != "" && strings.Contains(path, substr) {
		return failure.New(failure.WriteError, "writing %s: no space left on device", path)
	}
	raw, err := Encode(d.spec)
	if err != nil {
		return failure.Wrap(failure.WriteError, err, "encoding %s", path)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return failure.Wrap(failure.WriteError, err, "writing %s", path)
	}
	return nil
}

func (d *document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.codec.open.Add(-1)
	return nil
}

// Encode serializes spec behind FileHeader
func Encode(spec DocSpec) ([]byte, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, errors.Errorf("marshaling document: %w", err)
	}
	return append([]byte(FileHeader), raw...), nil
}

// Decode parses bytes produced by Encode
func Decode(raw []byte) (DocSpec, error) {
	if !bytes.HasPrefix(raw, []byte(FileHeader)) {
		return DocSpec{}, errors.Errorf("missing header")
	}
	var spec DocSpec
	if err := json.Unmarshal(raw[len(FileHeader):], &spec); err != nil {
		return DocSpec{}, errors.Errorf("unmarshaling document: %w", err)
	}
	return spec, nil
}
