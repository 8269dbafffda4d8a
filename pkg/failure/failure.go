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

// Package failure defines the error kinds surfaced by the document pipeline.
package failure

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind classifies a pipeline failure
type Kind int

const (
	KindUnknown      Kind = iota
	EmptySelection        // nothing staged
	TooManyFiles          // more files than the operation accepts
	WrongFileKind         // a staged file is not the kind the operation consumes
	NoValidInputs         // filtering left nothing to process
	InvalidParameter      // bad angle, missing or unsafe output target
	CodecError            // open, parse or compact failure
	WriteError            // target unwritable, disk full
	DecodeError           // unreadable image
)

// String returns the identifier of the kind
func (k Kind) String() string {
	switch k {
	case EmptySelection:
		return "EmptySelection"
	case TooManyFiles:
		return "TooManyFiles"
	case WrongFileKind:
		return "WrongFileKind"
	case NoValidInputs:
		return "NoValidInputs"
	case InvalidParameter:
		return "InvalidParameter"
	case CodecError:
		return "CodecError"
	case WriteError:
		return "WriteError"
	case DecodeError:
		return "DecodeError"
	default:
		return "Unknown"
	}
}

// Validation reports whether the kind is raised before any filesystem mutation
func (k Kind) Validation() bool {
	switch k {
	case EmptySelection, TooManyFiles, WrongFileKind, NoValidInputs, InvalidParameter:
		return true
	default:
		return false
	}
}

// Sentinels for errors.Is comparisons. Only the kind is compared.
var (
	ErrEmptySelection   = &Error{Kind: EmptySelection}
	ErrTooManyFiles     = &Error{Kind: TooManyFiles}
	ErrWrongFileKind    = &Error{Kind: WrongFileKind}
	ErrNoValidInputs    = &Error{Kind: NoValidInputs}
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrCodec            = &Error{Kind: CodecError}
	ErrWrite            = &Error{Kind: WriteError}
	ErrDecode           = &Error{Kind: DecodeError}
)

// ❌ Error is a typed pipeline failure
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a failure of the given kind
func New(kind Kind, format string, args ...any) error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  nil,
	}
}

// Wrap attaches a kind to err. A nil err yields nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  errors.WithStack(err),
	}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
