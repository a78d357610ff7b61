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

// Package platform checks configured repositories against the hosting platform
package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
	"github.com/AlaudaDevops/toolbox/botconfig/pkg/git"
)

// ErrRepositoryNotFound is returned when the platform reports no such repository
var ErrRepositoryNotFound = errors.New("repository not found")

// Checker defines the interface for verifying repositories on a platform
type Checker interface {
	// RepositoryExists returns nil when the repository is reachable with the configured token
	RepositoryExists(ctx context.Context, repo *git.Repository) error

	// GetPlatformType returns the platform type
	GetPlatformType() config.Platform
}

// NewChecker creates a checker for the given platform
func NewChecker(platform config.Platform, baseURL, token string) (Checker, error) {
	switch platform {
	case config.PlatformGitHub:
		return NewGitHubChecker(baseURL, token)
	case config.PlatformGitLab:
		return NewGitLabChecker(baseURL, token)
	default:
		return nil, fmt.Errorf("unsupported platform type for verification: %s", platform)
	}
}
