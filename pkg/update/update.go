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

// Package update compares the running version with the latest GitHub release.
// It only reports; nothing is downloaded.
package update

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/mod/semver"
)

// 🔌 ReleaseClient is the slice of the GitHub API the checker needs
type ReleaseClient interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

type githubClientWrapper struct {
	client *github.Client
}

func (w *githubClientWrapper) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	return w.client.Repositories.GetLatestRelease(ctx, owner, repo)
}

// Option configures a Checker
type Option func(*Checker) error

// WithClient replaces the GitHub client
func WithClient(c ReleaseClient) Option {
	return func(ch *Checker) error {
		ch.client = c
		return nil
	}
}

// WithBaseURL points the default client at another API root, such as GitHub Enterprise
func WithBaseURL(raw string) Option {
	return func(ch *Checker) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return errors.Errorf("parsing base url: %w", err)
		}
		gh := newGitHubClient()
		gh.BaseURL = u
		ch.client = &githubClientWrapper{client: gh}
		return nil
	}
}

// 🔍 Checker looks up the latest release of one repository
type Checker struct {
	owner  string
	repo   string
	client ReleaseClient
}

func newGitHubClient() *github.Client {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

// 🏭 NewChecker creates a checker for owner/repo
func NewChecker(owner, repo string, opts ...Option) (*Checker, error) {
	if owner == "" || repo == "" {
		return nil, errors.Errorf("owner and repo are required")
	}
	ch := &Checker{
		owner:  owner,
		repo:   repo,
		client: &githubClientWrapper{client: newGitHubClient()},
	}
	for _, opt := range opts {
		if err := opt(ch); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// 📦 Result describes how the running version relates to the latest release
type Result struct {
	Current string
	Latest  string
	URL     string
	// Comparable is false when the running version is not a semantic version, e.g. a dev build
	Comparable bool
	// Newer is true when Latest is a higher version than Current
	Newer bool
}

// Check fetches the latest release and compares it with current
func (c *Checker) Check(ctx context.Context, current string) (Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("owner", c.owner).Str("repo", c.repo).Str("current", current).Msg("checking latest release")

	rel, _, err := c.client.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return Result{}, errors.Errorf("getting latest release of %s/%s: %w", c.owner, c.repo, err)
	}

	latest := canonical(rel.GetTagName())
	if latest == "" {
		return Result{}, errors.Errorf("latest release tag %q is not a semantic version", rel.GetTagName())
	}

	res := Result{
		Current: current,
		Latest:  latest,
		URL:     rel.GetHTMLURL(),
	}

	cur := canonical(current)
	if cur == "" {
		logger.Debug().Str("current", current).Msg("running version is not comparable")
		return res, nil
	}

	res.Comparable = true
	res.Newer = semver.Compare(latest, cur) > 0
	return res, nil
}

// canonical accepts versions with or without the leading v
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
