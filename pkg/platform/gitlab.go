/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
	"github.com/AlaudaDevops/toolbox/botconfig/pkg/git"
)

// DefaultGitLabURL is the public GitLab endpoint
const DefaultGitLabURL = "https://gitlab.com"

// GitLabChecker implements Checker interface for GitLab
type GitLabChecker struct {
	client *gitlab.Client
}

// NewGitLabChecker creates a new GitLab checker. An empty baseURL means gitlab.com.
func NewGitLabChecker(baseURL, token string) (*GitLabChecker, error) {
	if baseURL == "" {
		baseURL = DefaultGitLabURL
	}
	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	logrus.Debugf("Using GitLab API at %s", client.BaseURL())

	return &GitLabChecker{client: client}, nil
}

// RepositoryExists looks the project up by its full path
func (g *GitLabChecker) RepositoryExists(ctx context.Context, repo *git.Repository) error {
	_, resp, err := g.client.Projects.GetProject(repo.String(), nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrRepositoryNotFound, repo)
		}
		return fmt.Errorf("failed to get project %s: %w", repo, err)
	}
	return nil
}

// GetPlatformType returns the platform type
func (g *GitLabChecker) GetPlatformType() config.Platform {
	return config.PlatformGitLab
}
