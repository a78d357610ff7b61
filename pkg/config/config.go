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

// Package config provides loading, validation and rendering of the
// dependency-update bot configuration
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBranchPrefix is used when the document does not set branchPrefix
const DefaultBranchPrefix = "renovate/"

// Platform is the hosting platform the bot talks to
type Platform string

const (
	PlatformGitHub          Platform = "github"
	PlatformGitLab          Platform = "gitlab"
	PlatformGitea           Platform = "gitea"
	PlatformForgejo         Platform = "forgejo"
	PlatformBitbucket       Platform = "bitbucket"
	PlatformBitbucketServer Platform = "bitbucket-server"
	PlatformAzure           Platform = "azure"
	PlatformCodeCommit      Platform = "codecommit"
	PlatformGerrit          Platform = "gerrit"
	PlatformLocal           Platform = "local"
)

// Platforms lists every recognized platform
var Platforms = []Platform{
	PlatformGitHub, PlatformGitLab, PlatformGitea, PlatformForgejo, PlatformBitbucket,
	PlatformBitbucketServer, PlatformAzure, PlatformCodeCommit, PlatformGerrit, PlatformLocal,
}

// ForkProcessing controls whether forked repositories are processed
type ForkProcessing string

const (
	ForkProcessingEnabled  ForkProcessing = "enabled"
	ForkProcessingDisabled ForkProcessing = "disabled"
)

// DryRun controls which side effects the engine suppresses
type DryRun string

const (
	// DryRunNone performs every side effect
	DryRunNone DryRun = "none"
	// DryRunLookup resolves updates but creates no branches or PRs
	DryRunLookup DryRun = "lookup"
	// DryRunFull computes everything a real run would, without writing
	DryRunFull DryRun = "full"
)

// UpdateType classifies a dependency update
type UpdateType string

const (
	UpdateTypePin                 UpdateType = "pin"
	UpdateTypeDigest              UpdateType = "digest"
	UpdateTypePatch               UpdateType = "patch"
	UpdateTypeMinor               UpdateType = "minor"
	UpdateTypeMajor               UpdateType = "major"
	UpdateTypeLockFileMaintenance UpdateType = "lockFileMaintenance"
)

// UpdateTypes lists every recognized update type
var UpdateTypes = []UpdateType{
	UpdateTypePin, UpdateTypeDigest, UpdateTypePatch,
	UpdateTypeMinor, UpdateTypeMajor, UpdateTypeLockFileMaintenance,
}

// ParseUpdateType returns the update type named by s
func ParseUpdateType(s string) (UpdateType, bool) {
	for _, t := range UpdateTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// BotConfig is the validated bot configuration. It is never mutated after Load.
type BotConfig struct {
	// BranchPrefix is the literal prefix of generated branch names
	BranchPrefix string `json:"branchPrefix"`
	// Username is the identity used for authored commits and PRs
	Username string `json:"username"`
	// GitAuthorName is the display name of the commit author
	GitAuthorName string `json:"gitAuthorName,omitempty"`
	// GitAuthorEmail is the email of the commit author
	GitAuthorEmail string `json:"gitAuthorEmail,omitempty"`
	// Onboarding creates an onboarding PR for new repositories
	Onboarding bool `json:"onboarding"`
	// Platform is the target hosting platform
	Platform Platform `json:"platform"`
	// ForkProcessing is the fork policy, written as forkProcessing or includeForks
	ForkProcessing ForkSetting `json:"forkProcessing"`
	// DryRun suppresses side effects
	DryRun DryRunSetting `json:"dryRun"`
	// Repositories are the target repository identifiers, in order
	Repositories []string `json:"repositories"`
	// PackageRules are applied in order, later rules override earlier ones
	PackageRules []PackageRule `json:"packageRules,omitempty"`
}

// ForkSetting is the fork policy together with the key it was written with
type ForkSetting struct {
	Value ForkProcessing `json:"value"`
	// Legacy is set when the document used the boolean includeForks key
	Legacy bool `json:"legacy,omitempty"`
	// Set is false when neither key was present
	Set bool `json:"set,omitempty"`
}

// DryRunSetting is the dry-run mode together with its boolean legacy form
type DryRunSetting struct {
	Value  DryRun `json:"value"`
	Legacy bool   `json:"legacy,omitempty"`
}

// PackageRule overrides the default policy for the update types it matches
type PackageRule struct {
	// Description is a human readable label
	Description string `json:"description,omitempty"`
	// MatchUpdateTypes is the non-empty set of matched update types
	MatchUpdateTypes []UpdateType `json:"matchUpdateTypes"`
	// DependencyDashboardApproval is nil when the rule does not override approval
	DependencyDashboardApproval *bool `json:"dependencyDashboardApproval,omitempty"`
	// StabilityGate is the minimum release age override
	StabilityGate StabilityGate `json:"stabilityGate"`
}

// Matches reports whether the rule applies to updateType
func (r *PackageRule) Matches(updateType UpdateType) bool {
	for _, t := range r.MatchUpdateTypes {
		if t == updateType {
			return true
		}
	}
	return false
}

// StabilityGate is the minimum wait after a release before it is proposed.
// minimumReleaseAge: null and stabilityDays: 0 both mean no minimum wait.
type StabilityGate struct {
	// Set is false when the rule carries neither minimumReleaseAge nor stabilityDays
	Set bool `json:"set"`
	// Age is the minimum release age, zero means no minimum wait
	Age time.Duration `json:"age"`
	// Raw is the minimumReleaseAge text, empty when it was null
	Raw string `json:"raw,omitempty"`
	// Legacy is set when the gate was written as stabilityDays
	Legacy bool `json:"legacy,omitempty"`
}

// NoMinimumWait reports whether the gate lets releases through immediately
func (g StabilityGate) NoMinimumWait() bool {
	return g.Age <= 0
}

// Days returns the gate in whole days, as stabilityDays expresses it
func (g StabilityGate) Days() int {
	return int(g.Age / (24 * time.Hour))
}

// String describes the gate for humans
func (g StabilityGate) String() string {
	switch {
	case !g.Set:
		return "unset"
	case g.NoMinimumWait():
		return "no minimum wait"
	case g.Legacy:
		return fmt.Sprintf("%d days (stabilityDays)", g.Days())
	default:
		return g.Raw
	}
}

// GitAuthor returns the author in "Name <email>" form
func (c *BotConfig) GitAuthor() string {
	return formatAuthor(c.GitAuthorName, c.GitAuthorEmail)
}

// IsLegacy reports whether any legacy representation is in use
func (c *BotConfig) IsLegacy() bool {
	if c.ForkProcessing.Legacy || c.DryRun.Legacy {
		return true
	}
	for _, rule := range c.PackageRules {
		if rule.StabilityGate.Legacy {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer interface for better debugging experience
func (c *BotConfig) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logrus.Errorf("Failed to marshal config to JSON: %v", err)
		return fmt.Sprintf("%+v", *c)
	}
	return string(data)
}
