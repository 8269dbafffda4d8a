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

package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/cmd/pdfops/opts"
	"github.com/walteh/pdfops/pkg/operation"
	"github.com/walteh/pdfops/pkg/status"
)

// 📋 Request is one run as the command line describes it
type Request struct {
	Operation operation.ID
	Inputs    []string // paths or doublestar globs
	Output    string
	Angle     int
	// Dir resolves relative inputs and output, empty means the working directory
	Dir string
}

// command names differ from ids where the short form reads better
var commandNames = map[operation.ID]string{
	operation.ConvertImages: "convert",
}

// NewOperationCmds creates one subcommand per registered operation
func NewOperationCmds(ro *opts.RootOpts) []*cobra.Command {
	specs := operation.All()
	cmds := make([]*cobra.Command, 0, len(specs))
	for _, spec := range specs {
		cmds = append(cmds, newOperationCmd(ro, spec))
	}
	return cmds
}

func newOperationCmd(ro *opts.RootOpts, spec *operation.Spec) *cobra.Command {
	var output string
	var angle int

	use := string(spec.ID)
	var aliases []string
	if name, ok := commandNames[spec.ID]; ok {
		aliases = append(aliases, use)
		use = name
	}

	argsUse := "<input>..."
	if spec.Cardinality == operation.ExactlyOne {
		argsUse = "<input>"
	}

	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s %s -o <%s>", use, argsUse, spec.Target),
		Aliases: aliases,
		Short:   spec.Description,
		Long: fmt.Sprintf(`%s.

Takes %s %s file. Inputs may be doublestar globs such as "scans/**/*.png".
Writes to a %s.`, spec.Description, spec.Cardinality, spec.InputKind, spec.Target),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := Request{
				Operation: spec.ID,
				Inputs:    args,
				Output:    output,
				Angle:     angle,
			}
			if spec.NeedsAngle && !cmd.Flags().Changed("angle") {
				req.Angle = ro.Config.Rotate.Angle
			}

			_, err := Execute(cmd.Context(), ro, req)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", fmt.Sprintf("output %s", spec.Target))
	_ = cmd.MarkFlagRequired("output")
	if spec.NeedsAngle {
		cmd.Flags().IntVar(&angle, "angle", 90, "rotation in degrees: 90, 180 or 270 (default from config)")
	}

	return cmd
}

// 🏃 Execute stages the inputs on a fresh operator, runs the operation and prints the result
func Execute(ctx context.Context, ro *opts.RootOpts, req Request) (status.Outcome, error) {
	spec := operation.Lookup(req.Operation)
	console := ro.Console

	inputs := req.Inputs
	output := req.Output
	if req.Dir != "" {
		inputs = make([]string, len(req.Inputs))
		for i, in := range req.Inputs {
			inputs[i] = within(req.Dir, in)
		}
		output = within(req.Dir, output)
	}

	paths, err := opts.ExpandInputs(inputs)
	if err != nil {
		console.Error(err.Error())
		return status.Outcome{}, errors.Errorf("expanding inputs: %w", err)
	}

	op, err := ro.NewOperator(ctx)
	if err != nil {
		return status.Outcome{}, err
	}

	op.SetActiveOperation(ctx, spec.ID)
	if _, err := op.AddFiles(ctx, paths); err != nil {
		console.Error(err.Error())
		return status.Outcome{}, err
	}

	console.Header(spec.Label)
	files := op.Selection()
	excluded := map[string]bool{}
	if spec.ID == operation.ConvertImages {
		for _, f := range files {
			if !operation.IsConvertible(f) {
				excluded[f.Path] = true
			}
		}
	}
	console.Selection(files, excluded)
	console.LogNewline()

	target := status.FileTarget(output)
	if spec.Target == status.TargetDirectory {
		target = status.DirTarget(output)
	}

	outcome, err := op.Execute(ctx, operation.Params{Angle: req.Angle, Target: target})
	if err != nil {
		return outcome, err
	}

	console.Outputs(outcome.Outputs)
	return outcome, nil
}

func within(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
