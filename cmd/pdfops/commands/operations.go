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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/walteh/pdfops/pkg/operation"
)

// NewOperationsCmd lists the registered operations
func NewOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "OPERATION\tCOMMAND\tINPUT\tFILES\tOUTPUT")
			for _, spec := range operation.All() {
				name := string(spec.ID)
				if short, ok := commandNames[spec.ID]; ok {
					name = short
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", spec.Label, name, spec.InputKind, spec.Cardinality, spec.Target)
			}
			return w.Flush()
		},
	}
}
