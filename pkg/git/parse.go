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

// Package git parses the repository identifiers the bot is pointed at
package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParseRepository parses a repository identifier as written in the bot's
// repositories list. It supports various formats including:
// - example/toolbox => group: example, repo: toolbox
// - group/subgroup/repo => group: group/subgroup, repo: repo
// - https://github.com/example/toolbox.git => group: example, repo: toolbox
// - git@gitlab.com:group/repo.git => group: group, repo: repo
func ParseRepository(identifier string) (*Repository, error) {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return nil, errors.New("invalid repository: empty identifier")
	}
	if strings.Contains(s, "://") {
		return ParseRepoURL(s)
	}
	if at := strings.Index(s, "@"); at >= 0 {
		if colon := strings.Index(s[at:], ":"); colon >= 0 {
			s = s[at+colon+1:]
		}
	}
	return fromPath(s)
}

// ParseRepoURL extracts the repository name and owner from a Git repository URL.
// It supports various formats including:
// - https://github.com/example/toolbox.git => group: example, repo: toolbox
// - https://gitlab.com/group/repo.git => group: group, repo: repo
// - https://gitlab.example.com/group/subgroup/repo.git => group: group/subgroup, repo: repo
func ParseRepoURL(repoURL string) (*Repository, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return nil, err
	}
	return fromPath(u.Path)
}

func fromPath(path string) (*Repository, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return nil, errors.New("invalid repository: expected owner/name")
	}
	segments[len(segments)-1] = strings.TrimSuffix(segments[len(segments)-1], ".git")
	for _, segment := range segments {
		if err := validateSegment(segment); err != nil {
			return nil, err
		}
	}

	return &Repository{
		Group: strings.Join(segments[:len(segments)-1], "/"),
		Repo:  segments[len(segments)-1],
	}, nil
}

func validateSegment(segment string) error {
	if segment == "" || segment == "." || segment == ".." {
		return fmt.Errorf("invalid repository: bad path segment %q", segment)
	}
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("invalid repository: unexpected character %q in %q", r, segment)
		}
	}
	return nil
}
