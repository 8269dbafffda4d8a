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

package imagecodec

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/walteh/pdfops/pkg/failure"
)

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 7, 3))
	for x := 0; x < 7; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 60), B: 90, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, format string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, sampleImage())
	case "jpeg":
		err = jpeg.Encode(&buf, sampleImage(), nil)
	case "bmp":
		err = bmp.Encode(&buf, sampleImage())
	case "tiff":
		err = tiff.Encode(&buf, sampleImage(), nil)
	}
	require.NoError(t, err, "encoding %s", format)
	return buf.Bytes()
}

func TestPageFromImage(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantExt string
	}{
		{name: "png", format: "png", wantExt: "png"},
		{name: "jpeg", format: "jpeg", wantExt: "jpeg"},
		{name: "tiff", format: "tiff", wantExt: "tiff"},
		{name: "bmp_becomes_png", format: "bmp", wantExt: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := New().PageFromImage(context.Background(), "sample."+tt.format, encode(t, tt.format))
			require.NoError(t, err, "decoding should succeed")

			p, ok := page.(*Page)
			require.True(t, ok, "should return an image page")
			assert.Equal(t, tt.wantExt, p.Ext, "extension should match")
			assert.Equal(t, 7, p.Width, "width should be native")
			assert.Equal(t, 3, p.Height, "height should be native")

			_, format, err := image.DecodeConfig(bytes.NewReader(p.Data))
			require.NoError(t, err, "page data should stay decodable")
			assert.Equal(t, tt.wantExt, format)
		})
	}
}

func TestPageFromImageRejectsGarbage(t *testing.T) {
	_, err := New().PageFromImage(context.Background(), "broken.png", []byte("not an image"))
	require.Error(t, err)
	assert.Equal(t, failure.DecodeError, failure.KindOf(err), "should be a decode error")
}
