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

// Package codec declares the page and object model the transformations run against.
//
// Implementations:
//   - pdfcodec: pdfcpu backed documents
//   - imagecodec: raster decoding for image to page conversion
//   - codectest: an on-disk fake used by tests
package codec

import (
	"context"
)

// 📚 DocumentCodec opens and creates documents
type DocumentCodec interface {
	// Open parses the document at path. Parse failures are CodecError.
	Open(ctx context.Context, path string) (Document, error)
	// NewDocument returns an empty document ready for AppendPage
	NewDocument(ctx context.Context) (Document, error)
}

// 📄 Document is a handle owned by a single transformation. Close must be called on every exit path.
type Document interface {
	PageCount() int
	// Page returns the page at zero based index i
	Page(i int) (Page, error)
	// AppendPage copies p, which may come from another document, to the end
	AppendPage(p Page) error
	// SetPageRotation sets the absolute rotation of page i, replacing any prior value
	SetPageRotation(i int, angle int) error
	// EmbeddedImages returns the raw image streams of page i in embedding order
	EmbeddedImages(i int) ([]EmbeddedImage, error)
	// Compact drops unreferenced objects and recompresses streams
	Compact() error
	// Write serializes the document to path
	Write(path string) error
	Close() error
}

// 📃 Page is an opaque page reference
type Page interface {
	// Origin describes where the page came from, for logs
	Origin() string
}

// 🖼️ EmbeddedImage is an image stream as stored in the document
type EmbeddedImage struct {
	Data []byte
	Ext  string // file extension implied by the stream filter, no leading dot
}

// 🎨 ImageCodec turns encoded image bytes into a page
type ImageCodec interface {
	// PageFromImage decodes data into a page sized to the image. Unreadable data is DecodeError.
	PageFromImage(ctx context.Context, name string, data []byte) (Page, error)
}
