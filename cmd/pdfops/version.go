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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pdfops/cmd/pdfops/opts"
	"github.com/walteh/pdfops/pkg/update"
)

// VersionInfo is what the binary knows about its own build
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Revision  string `json:"revision"`
	Time      string `json:"time"`
	Modified  bool   `json:"modified"`
}

// GetVersionInfo reads the embedded build info
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := buildInfo.Main.Version; v != "" {
		info.Version = v
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// FormatVersion renders info for humans
func FormatVersion(info *VersionInfo) string {
	rev := info.Revision
	if rev == "" {
		rev = "unknown"
	}
	if info.Modified {
		rev += " (modified)"
	}
	built := info.Time
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf(`📄 pdfops %s
Revision:  %s
Built:     %s
Go:        %s
Platform:  %s
`, info.Version, rev, built, info.GoVersion, info.Platform)
}

func newVersionCmd(ro *opts.RootOpts) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := GetVersionInfo()
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion(info))
			if !check {
				return nil
			}

			checker, err := update.NewChecker(ro.Config.Update.Owner, ro.Config.Update.Repo)
			if err != nil {
				return errors.Errorf("creating release checker: %w", err)
			}
			res, err := checker.Check(cmd.Context(), info.Version)
			if err != nil {
				return errors.Errorf("checking for updates: %w", err)
			}

			switch {
			case !res.Comparable:
				ro.Console.Infof("Latest release is %s (%s)", res.Latest, res.URL)
			case res.Newer:
				ro.Console.Warningf("A newer release is available: %s (%s)", res.Latest, res.URL)
			default:
				ro.Console.Success("pdfops is up to date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "compare with the latest GitHub release")
	return cmd
}
