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

package selection

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/walteh/pdfops/pkg/failure"
)

const pdfMIME = "application/pdf"

// 🔍 Prober turns a path into a StagedFile
type Prober interface {
	Probe(ctx context.Context, path string) (StagedFile, error)
}

// FileProber stats the file and sniffs its content type
type FileProber struct{}

func (FileProber) Probe(ctx context.Context, path string) (StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return StagedFile{}, failure.Wrap(failure.InvalidParameter, err, "reading %s", path)
	}
	if info.IsDir() {
		return StagedFile{}, failure.New(failure.InvalidParameter, "%s is a directory", path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	mime := ""
	if mt, err := mimetype.DetectFile(path); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("mime sniffing failed, using extension")
	} else {
		mime = mt.String()
	}

	return StagedFile{
		Path:      path,
		Kind:      classify(mime, ext),
		SizeBytes: info.Size(),
		Ext:       ext,
		MIME:      mime,
	}, nil
}

func classify(mime, ext string) Kind {
	if mime == "" {
		if ext == "pdf" {
			return Document
		}
		return Image
	}
	if mt := strings.SplitN(mime, ";", 2)[0]; mt == pdfMIME {
		return Document
	}
	return Image
}
