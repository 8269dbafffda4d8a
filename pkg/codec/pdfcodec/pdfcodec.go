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

// Package pdfcodec implements the document codec on top of pdfcpu.
//
// Opened documents wrap a parsed pdfcpu context. New documents only record the
// pages appended to them and are assembled when written:
//
//	pages ──► runs ──► part files ──► merge ──► rotate ──► target
//	          │
//	          ├─ consecutive pages of one source  → api.TrimFile
//	          └─ consecutive image pages          → api.ImportImagesFile
package pdfcodec

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/failure"
)

// 📚 Codec opens and creates pdfcpu documents
type Codec struct {
	relaxed bool
}

var _ codec.DocumentCodec = (*Codec)(nil)

// Option configures the codec
type Option func(*Codec)

// WithStrictValidation rejects documents that only pass relaxed validation
func WithStrictValidation() Option {
	return func(c *Codec) {
		c.relaxed = false
	}
}

// 🏭 New creates a codec. Validation is relaxed by default since real world files rarely pass strict mode.
func New(opts ...Option) *Codec {
	c := &Codec{relaxed: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strict reports whether documents must pass strict validation
func (c *Codec) Strict() bool {
	return !c.relaxed
}

func (c *Codec) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	// the default configuration may itself be relaxed
	conf.ValidationMode = model.ValidationStrict
	if c.relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

// Open parses path and keeps the file open until Close
func (c *Codec) Open(ctx context.Context, path string) (codec.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.Wrap(failure.CodecError, err, "opening %s", path)
	}

	pctx, err := api.ReadValidateAndOptimize(f, c.config())
	if err != nil {
		f.Close()
		return nil, failure.Wrap(failure.CodecError, err, "parsing %s", path)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("pages", pctx.PageCount).Bool("strict", c.Strict()).Msg("opened document")

	return &sourceDoc{
		codec: c,
		path:  path,
		file:  f,
		ctx:   pctx,
	}, nil
}

// NewDocument returns an empty document assembled on Write
func (c *Codec) NewDocument(ctx context.Context) (codec.Document, error) {
	return &assembledDoc{
		codec:     c,
		logger:    zerolog.Ctx(ctx),
		rotations: map[int]int{},
	}, nil
}

// 📃 sourcePage references a page of an opened document by its one based number
type sourcePage struct {
	doc    *sourceDoc
	pageNr int
}

func (p *sourcePage) Origin() string {
	return fmt.Sprintf("%s#%d", p.doc.path, p.pageNr)
}

type closer struct {
	once sync.Once
	err  error
}

func (c *closer) close(fn func() error) error {
	c.once.Do(func() {
		c.err = fn()
	})
	return c.err
}
