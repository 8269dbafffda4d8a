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

package failure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "direct",
			err:  New(TooManyFiles, "got %d files", 2),
			want: TooManyFiles,
		},
		{
			name: "wrapped_by_errorf",
			err:  errors.Errorf("running split: %w", Wrap(WriteError, errors.New("disk full"), "writing page 3")),
			want: WriteError,
		},
		{
			name: "plain_error",
			err:  errors.New("boom"),
			want: KindUnknown,
		},
		{
			name: "nil",
			err:  nil,
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err), "kind should match")
		})
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := errors.Errorf("validating: %w", New(EmptySelection, "no files staged"))

	assert.True(t, errors.Is(err, ErrEmptySelection), "should match sentinel of same kind")
	assert.False(t, errors.Is(err, ErrTooManyFiles), "should not match other kinds")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(CodecError, nil, "opening"), "wrapping nil should stay nil")

	cause := errors.New("xref table broken")
	err := Wrap(CodecError, cause, "opening %s", "a.pdf")
	require.Error(t, err)
	assert.Equal(t, "opening a.pdf: xref table broken", err.Error())
	assert.True(t, errors.Is(err, cause), "cause should stay reachable")
}

func TestValidationKinds(t *testing.T) {
	for _, k := range []Kind{EmptySelection, TooManyFiles, WrongFileKind, NoValidInputs, InvalidParameter} {
		assert.True(t, k.Validation(), "%s should be a validation kind", k)
	}
	for _, k := range []Kind{CodecError, WriteError, DecodeError, KindUnknown} {
		assert.False(t, k.Validation(), "%s should not be a validation kind", k)
	}
}
