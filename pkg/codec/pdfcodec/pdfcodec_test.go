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
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/pdfops/pkg/codec"
	"github.com/walteh/pdfops/pkg/codec/imagecodec"
	"github.com/walteh/pdfops/pkg/failure"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "encoding png")
	return buf.Bytes()
}

// buildPDF writes a document with one image page per color
func buildPDF(t *testing.T, ctx context.Context, path string, colors ...color.Color) string {
	t.Helper()
	c := New()
	doc, err := c.NewDocument(ctx)
	require.NoError(t, err)
	defer doc.Close()

	for i, col := range colors {
		page, err := imagecodec.New().PageFromImage(ctx, filepath.Base(path), pngBytes(t, 20+i, 10+i, col))
		require.NoError(t, err)
		require.NoError(t, doc.AppendPage(page))
	}
	require.NoError(t, doc.Write(path), "writing fixture pdf")
	return path
}

func open(t *testing.T, ctx context.Context, path string) *sourceDoc {
	t.Helper()
	doc, err := New().Open(ctx, path)
	require.NoError(t, err, "opening %s", path)
	t.Cleanup(func() { doc.Close() })
	sd, ok := doc.(*sourceDoc)
	require.True(t, ok)
	return sd
}

func rotationOf(t *testing.T, d *sourceDoc, pageNr int) int {
	t.Helper()
	dict, _, _, err := d.ctx.PageDict(pageNr, false)
	require.NoError(t, err)
	obj, found := dict.Find("Rotate")
	if !found {
		return 0
	}
	v, ok := obj.(types.Integer)
	require.True(t, ok, "rotate should be an integer")
	return int(v)
}

func TestImagesBecomePages(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	out := buildPDF(t, ctx, filepath.Join(dir, "images.pdf"), color.White, color.Black, color.RGBA{R: 255, A: 255})

	doc := open(t, ctx, out)
	assert.Equal(t, 3, doc.PageCount(), "one page per image")

	imgs, err := doc.EmbeddedImages(0)
	require.NoError(t, err)
	require.Len(t, imgs, 1, "first page should hold one image")
	assert.NotEmpty(t, imgs[0].Data, "image data should be returned")
	assert.NotEmpty(t, imgs[0].Ext, "extension should be derived")
}

func TestEmbeddedImagesSkipThumbnails(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	src := open(t, ctx, buildPDF(t, ctx, filepath.Join(dir, "src.pdf"), color.White, color.Black))

	// use the image of page 2 as the thumbnail of page 1
	thumbNrs := pdfcpu.ImageObjNrs(src.ctx, 2)
	require.Len(t, thumbNrs, 1)
	dict, _, _, err := src.ctx.PageDict(1, false)
	require.NoError(t, err)
	dict["Thumb"] = *types.NewIndirectRef(thumbNrs[0], 0)

	withThumb := filepath.Join(dir, "thumb.pdf")
	require.NoError(t, src.Write(withThumb))

	doc := open(t, ctx, withThumb)
	require.Contains(t, doc.ctx.PageThumbs, 1, "thumbnail should survive the round trip")

	imgs, err := doc.EmbeddedImages(0)
	require.NoError(t, err)
	assert.Len(t, imgs, 1, "thumbnail should not count as an embedded image")
}

func pageSizes(t *testing.T, path string) []string {
	t.Helper()
	dims, err := api.PageDimsFile(path)
	require.NoError(t, err, "reading page dims of %s", path)
	out := make([]string, 0, len(dims))
	for _, d := range dims {
		out = append(out, fmt.Sprintf("%.0fx%.0f", d.Width, d.Height))
	}
	return out
}

func appendAll(t *testing.T, ctx context.Context, dst codec.Document, paths ...string) {
	t.Helper()
	for _, p := range paths {
		src := open(t, ctx, p)
		for i := 0; i < src.PageCount(); i++ {
			page, err := src.Page(i)
			require.NoError(t, err)
			require.NoError(t, dst.AppendPage(page))
		}
	}
}

func TestMergeKeepsOrder(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	a := buildPDF(t, ctx, filepath.Join(dir, "a.pdf"), color.White, color.Black, color.White)
	b := buildPDF(t, ctx, filepath.Join(dir, "b.pdf"), color.White, color.Black)

	c := New()
	merged, err := c.NewDocument(ctx)
	require.NoError(t, err)
	defer merged.Close()

	appendAll(t, ctx, merged, b, a)

	target := filepath.Join(dir, "merged.pdf")
	require.NoError(t, merged.Write(target))

	assert.Equal(t, 5, open(t, ctx, target).PageCount(), "merged page count should be the sum")
	assert.Equal(t, []string{"20x10", "21x11", "20x10", "21x11", "22x12"}, pageSizes(t, target), "pages of b should precede pages of a")

	leftovers, err := filepath.Glob(filepath.Join(dir, ".pdfcodec-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "scratch dirs should be removed")
}

func TestEmptyDocuments(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	writeEmpty := func(name string) string {
		doc, err := New().NewDocument(ctx)
		require.NoError(t, err)
		defer doc.Close()
		path := filepath.Join(dir, name)
		require.NoError(t, doc.Write(path), "writing a document without pages")
		return path
	}

	tests := []struct {
		name   string
		inputs func() []string
		want   []string
	}{
		{
			name:   "new_document",
			inputs: func() []string { return nil },
			want:   nil,
		},
		{
			name: "merge_of_empty_documents",
			inputs: func() []string {
				return []string{writeEmpty("e1.pdf"), writeEmpty("e2.pdf")}
			},
			want: nil,
		},
		{
			name: "empty_document_between_pages",
			inputs: func() []string {
				return []string{
					buildPDF(t, ctx, filepath.Join(dir, "one.pdf"), color.White),
					writeEmpty("e3.pdf"),
					buildPDF(t, ctx, filepath.Join(dir, "two.pdf"), color.White, color.Black),
				}
			},
			want: []string{"20x10", "20x10", "21x11"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := New().NewDocument(ctx)
			require.NoError(t, err)
			defer merged.Close()

			appendAll(t, ctx, merged, tt.inputs()...)

			target := filepath.Join(dir, tt.name+".pdf")
			require.NoError(t, merged.Write(target))

			reopened := open(t, ctx, target)
			assert.Equal(t, len(tt.want), reopened.PageCount())
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, pageSizes(t, target))
			}
		})
	}
}

func TestSinglePageExtraction(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	src := open(t, ctx, buildPDF(t, ctx, filepath.Join(dir, "src.pdf"), color.White, color.Black, color.White))

	c := New()
	single, err := c.NewDocument(ctx)
	require.NoError(t, err)
	defer single.Close()

	page, err := src.Page(1)
	require.NoError(t, err)
	assert.Contains(t, page.Origin(), "#2", "origin should carry the page number")
	require.NoError(t, single.AppendPage(page))

	target := filepath.Join(dir, "page2.pdf")
	require.NoError(t, single.Write(target))
	assert.Equal(t, 1, open(t, ctx, target).PageCount())
}

func TestSetPageRotationIsAbsolute(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	src := buildPDF(t, ctx, filepath.Join(dir, "src.pdf"), color.White, color.Black)

	first := filepath.Join(dir, "rot90.pdf")
	doc := open(t, ctx, src)
	for i := 0; i < doc.PageCount(); i++ {
		require.NoError(t, doc.SetPageRotation(i, 90))
	}
	require.NoError(t, doc.Write(first))

	second := filepath.Join(dir, "rot180.pdf")
	doc = open(t, ctx, first)
	for i := 0; i < doc.PageCount(); i++ {
		require.NoError(t, doc.SetPageRotation(i, 180))
	}
	require.NoError(t, doc.Write(second))

	final := open(t, ctx, second)
	for nr := 1; nr <= final.PageCount(); nr++ {
		assert.Equal(t, 180, rotationOf(t, final, nr), "rotation should replace the prior value on page %d", nr)
	}
}

func TestCompactWrites(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	doc := open(t, ctx, buildPDF(t, ctx, filepath.Join(dir, "src.pdf"), color.White))
	require.NoError(t, doc.Compact())

	out := filepath.Join(dir, "small.pdf")
	require.NoError(t, doc.Write(out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestValidationMode(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want int
	}{
		{name: "relaxed_by_default", want: model.ValidationRelaxed},
		{name: "strict", opts: []Option{WithStrictValidation()}, want: model.ValidationStrict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts...)
			assert.Equal(t, tt.want, c.config().ValidationMode)
			assert.Equal(t, tt.want == model.ValidationStrict, c.Strict())
		})
	}
}

func TestCodecErrors(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("%PDF-1.7\nthis is not a pdf"), 0o644))

	tests := []struct {
		name string
		run  func() error
		want failure.Kind
	}{
		{
			name: "unparseable",
			run: func() error {
				_, err := New().Open(ctx, garbage)
				return err
			},
			want: failure.CodecError,
		},
		{
			name: "missing",
			run: func() error {
				_, err := New().Open(ctx, filepath.Join(dir, "missing.pdf"))
				return err
			},
			want: failure.CodecError,
		},
		{
			name: "page_out_of_range",
			run: func() error {
				doc := open(t, ctx, buildPDF(t, ctx, filepath.Join(dir, "one.pdf"), color.White))
				_, err := doc.Page(5)
				return err
			},
			want: failure.CodecError,
		},
		{
			name: "append_to_parsed_document",
			run: func() error {
				doc := open(t, ctx, buildPDF(t, ctx, filepath.Join(dir, "two.pdf"), color.White))
				page, err := doc.Page(0)
				require.NoError(t, err)
				return doc.AppendPage(page)
			},
			want: failure.CodecError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.Equal(t, tt.want, failure.KindOf(err), "error kind should match: %v", err)
		})
	}
}

var _ codec.Document = (*sourceDoc)(nil)
var _ codec.Document = (*assembledDoc)(nil)
