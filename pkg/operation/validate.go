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
	"path/filepath"
	"strings"

	"github.com/walteh/pdfops/pkg/failure"
	"github.com/walteh/pdfops/pkg/selection"
	"github.com/walteh/pdfops/pkg/status"
)

// ⚙️ Params are the caller supplied knobs of a run
type Params struct {
	// Angle is only read by rotate
	Angle  int
	Target status.Target
}

// 📋 Plan is a selection that passed validation for an operation
type Plan struct {
	Spec     *Spec
	Files    []selection.StagedFile
	Excluded []selection.StagedFile
	Params   Params
}

// convertible image extensions; ".tif" is not one of them
var imageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"bmp":  true,
	"tiff": true,
}

// IsConvertible reports whether convert-images accepts f by extension
func IsConvertible(f selection.StagedFile) bool {
	return imageExtensions[strings.ToLower(f.Ext)]
}

var rotationAngles = map[int]bool{90: true, 180: true, 270: true}

// ✅ Validate gates files and params against spec. It only reads metadata and never touches the filesystem.
func Validate(spec *Spec, files []selection.StagedFile, params Params) (Plan, error) {
	if len(files) == 0 {
		return Plan{}, failure.New(failure.EmptySelection, "%s needs %s %s file, none selected", spec.ID, spec.Cardinality, spec.InputKind)
	}

	if spec.Cardinality == ExactlyOne && len(files) > 1 {
		return Plan{}, failure.New(failure.TooManyFiles, "%s takes exactly one file, got %d", spec.ID, len(files))
	}

	for _, f := range files {
		if f.Kind != spec.InputKind {
			return Plan{}, failure.New(failure.WrongFileKind, "%s is a %s, %s needs a %s", f.Name(), f.Kind, spec.ID, spec.InputKind)
		}
	}

	plan := Plan{
		Spec:   spec,
		Files:  files,
		Params: params,
	}

	if spec.ID == ConvertImages {
		plan.Files = nil
		for _, f := range files {
			if IsConvertible(f) {
				plan.Files = append(plan.Files, f)
			} else {
				plan.Excluded = append(plan.Excluded, f)
			}
		}
		if len(plan.Files) == 0 {
			return Plan{}, failure.New(failure.NoValidInputs, "none of the %d selected files is a png, jpg, jpeg, bmp or tiff image", len(files))
		}
	}

	if err := validateParams(spec, files, params); err != nil {
		return Plan{}, err
	}

	return plan, nil
}

func validateParams(spec *Spec, files []selection.StagedFile, params Params) error {
	if spec.NeedsAngle && !rotationAngles[params.Angle] {
		return failure.New(failure.InvalidParameter, "rotation angle must be 90, 180 or 270, got %d", params.Angle)
	}

	if params.Target.IsZero() {
		return failure.New(failure.InvalidParameter, "%s needs an output %s, none chosen", spec.ID, spec.Target)
	}
	if strings.TrimSpace(params.Target.Path) == "" {
		return failure.New(failure.InvalidParameter, "%s needs an output %s", spec.ID, spec.Target)
	}
	if params.Target.Kind != spec.Target {
		return failure.New(failure.InvalidParameter, "%s writes a %s, got a %s target", spec.ID, spec.Target, params.Target.Kind)
	}

	if params.Target.Kind == status.TargetFile {
		target := cleanAbs(params.Target.Path)
		for _, f := range files {
			if cleanAbs(f.Path) == target {
				return failure.New(failure.InvalidParameter, "output %s would overwrite an input", params.Target.Path)
			}
		}
	}

	return nil
}

func cleanAbs(p string) string {
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
