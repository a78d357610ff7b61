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

// Package update classifies dependency version changes into update types
package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
)

var (
	// ErrNoChange is returned when current and next are the same release
	ErrNoChange = errors.New("versions are identical")
	// ErrDowngrade is returned when next is older than current
	ErrDowngrade = errors.New("next version is older than current version")
)

// Classify returns the update type of moving a dependency from current to next.
// Versions may carry a "v" prefix and an "@digest" suffix:
// - ^1.2.0 => 1.2.3 is a pin (range replaced by an exact version)
// - 1.2.3@sha256:aaa => 1.2.3@sha256:bbb is a digest update
// - 1.2.3 => 1.2.4 / 1.3.0 / 2.0.0 is a patch / minor / major update
func Classify(current, next string) (config.UpdateType, error) {
	currentVersion, currentDigest := splitDigest(current)
	nextVersion, nextDigest := splitDigest(next)
	if nextVersion == "" {
		return "", fmt.Errorf("next version is empty")
	}

	to, err := semver.NewVersion(normalizeVersionForSemver(nextVersion))
	if err != nil {
		return "", fmt.Errorf("invalid next version %q: %w", next, err)
	}

	from, err := semver.NewVersion(normalizeVersionForSemver(currentVersion))
	if err != nil {
		constraint, cerr := semver.NewConstraint(currentVersion)
		if cerr != nil {
			return "", fmt.Errorf("invalid current version %q: %w", current, err)
		}
		if !constraint.Check(to) {
			return "", fmt.Errorf("%s does not satisfy range %s, cannot pin", next, current)
		}
		return config.UpdateTypePin, nil
	}

	switch cmp := from.Compare(to); {
	case cmp > 0:
		return "", fmt.Errorf("%w: %s -> %s", ErrDowngrade, current, next)
	case cmp == 0:
		if currentDigest != nextDigest && nextDigest != "" {
			return config.UpdateTypeDigest, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNoChange, next)
	}

	switch {
	case to.Major() != from.Major():
		return config.UpdateTypeMajor, nil
	case to.Minor() != from.Minor():
		return config.UpdateTypeMinor, nil
	default:
		return config.UpdateTypePatch, nil
	}
}

func splitDigest(version string) (string, string) {
	v, digest, _ := strings.Cut(strings.TrimSpace(version), "@")
	return v, digest
}

// normalizeVersionForSemver normalizes version strings for semantic version parsing
func normalizeVersionForSemver(version string) string {
	if version == "" {
		return version
	}

	// Remove "v" prefix for semver parsing (semver library handles this automatically)
	// but we need to handle some edge cases
	normalized := strings.TrimPrefix(version, "v")

	// Handle versions that might not be strictly semver (e.g., "1.0" -> "1.0.0")
	parts := strings.Split(normalized, ".")

	if len(parts) == 1 {
		// Version like "1" -> "1.0.0"
		normalized = normalized + ".0.0"
	} else if len(parts) == 2 {
		// Version like "1.2" -> "1.2.0"
		normalized = normalized + ".0"
	}

	return normalized
}
