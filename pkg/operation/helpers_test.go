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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/walteh/pdfops/pkg/codec/codectest"
	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 harness wires an engine to the fake codec inside a temp dir
type harness struct {
	t     *testing.T
	ctx   context.Context
	dir   string
	codec *codectest.Codec
	env   Env
}

func newHarness(t *testing.T, atomic bool) *harness {
	c := codectest.New()
	return &harness{
		t:     t,
		ctx:   testContext(t),
		dir:   t.TempDir(),
		codec: c,
		env: Env{
			Documents: c,
			Images:    c,
			Stager:    status.NewStager(atomic),
		},
	}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

// doc writes a fake document and returns it probed
func (h *harness) doc(name string, labels ...string) selection.StagedFile {
	h.t.Helper()
	p := codectest.WriteDoc(h.t, h.path(name), labels...)
	return h.probe(p)
}

func (h *harness) docSpec(name string, spec codectest.DocSpec) selection.StagedFile {
	h.t.Helper()
	return h.probe(codectest.WriteSpec(h.t, h.path(name), spec))
}

// image writes raw bytes that the fake image codec accepts unless they start with "bad"
func (h *harness) image(name, content string) selection.StagedFile {
	h.t.Helper()
	p := h.path(name)
	require.NoError(h.t, os.WriteFile(p, []byte(content), 0o644))
	return h.probe(p)
}

func (h *harness) probe(p string) selection.StagedFile {
	h.t.Helper()
	f, err := selection.FileProber{}.Probe(h.ctx, p)
	require.NoError(h.t, err, "probing %s", p)
	return f
}

func (h *harness) engine(opts ...EngineOption) *Engine {
	return NewEngine(h.env, NewRunner(zerolog.Ctx(h.ctx), false), opts...)
}

func (h *harness) run(id ID, files []selection.StagedFile, params Params) (status.Outcome, error) {
	return h.engine().Run(h.ctx, id, files, params)
}

func (h *harness) entries(dir string) []string {
	h.t.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(h.t, err)
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}
