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
	"strings"

	"github.com/google/go-github/v58/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
	"github.com/AlaudaDevops/toolbox/botconfig/pkg/git"
)

// DefaultGitHubURL is the public GitHub API endpoint
const DefaultGitHubURL = "https://api.github.com"

// GitHubChecker implements Checker interface for GitHub using the GitHub SDK
type GitHubChecker struct {
	// client is the GitHub API client
	client *github.Client
}

// NewGitHubChecker creates a new GitHub checker. An empty baseURL means github.com.
func NewGitHubChecker(baseURL, token string) (*GitHubChecker, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(httpClient)

	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL != "" && baseURL != DefaultGitHubURL {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to set enterprise URLs: %w", err)
		}
	}
	logrus.Debugf("Using GitHub API at %s", client.BaseURL)

	return &GitHubChecker{client: client}, nil
}

// RepositoryExists checks the repository with the repos API
func (g *GitHubChecker) RepositoryExists(ctx context.Context, repo *git.Repository) error {
	if strings.Contains(repo.Group, "/") {
		return fmt.Errorf("invalid GitHub repository %s: expected owner/name", repo)
	}
	_, resp, err := g.client.Repositories.Get(ctx, repo.Owner(), repo.Repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrRepositoryNotFound, repo)
		}
		return fmt.Errorf("failed to get repository %s: %w", repo, err)
	}
	return nil
}

// GetPlatformType returns the platform type
func (g *GitHubChecker) GetPlatformType() config.Platform {
	return config.PlatformGitHub
}
