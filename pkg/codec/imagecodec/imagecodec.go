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

// Package imagecodec decodes raster images into pages sized to the image.
package imagecodec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/failure"
)

// 🖼️ Page is a decoded image waiting to be placed on its own page.
// Data is in a format the document writer can embed directly.
type Page struct {
	Name   string
	Data   []byte
	Ext    string // png, jpeg or tiff
	Width  int
	Height int
}

func (p *Page) Origin() string {
	return fmt.Sprintf("image %s (%dx%d)", p.Name, p.Width, p.Height)
}

// 🎨 Codec implements codec.ImageCodec
type Codec struct{}

var _ codec.ImageCodec = Codec{}

// New creates an image codec
func New() Codec {
	return Codec{}
}

func (Codec) PageFromImage(ctx context.Context, name string, data []byte) (codec.Page, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, failure.Wrap(failure.DecodeError, err, "decoding %s", name)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, failure.New(failure.DecodeError, "decoding %s: empty image %dx%d", name, cfg.Width, cfg.Height)
	}

	page := &Page{
		Name:   name,
		Data:   data,
		Ext:    format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	if format == "bmp" {
		reencoded, err := bmpToPNG(data)
		if err != nil {
			return nil, failure.Wrap(failure.DecodeError, err, "converting %s", name)
		}
		page.Data = reencoded
		page.Ext = "png"
	}

	zerolog.Ctx(ctx).Debug().
		Str("image", name).
		Str("format", format).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Msg("decoded image")

	return page, nil
}

func bmpToPNG(data []byte) ([]byte, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
