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

// Package policy resolves the effective update policy from package rules
package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
)

// Policy is the effective treatment of one update type
type Policy struct {
	UpdateType config.UpdateType `json:"updateType"`
	// DependencyDashboardApproval requires manual approval before the PR is opened
	DependencyDashboardApproval bool `json:"dependencyDashboardApproval"`
	// StabilityGate is the minimum release age, unset means no minimum wait
	StabilityGate config.StabilityGate `json:"stabilityGate"`
	// MatchedRules are the indexes of the rules that matched, in order
	MatchedRules []int `json:"matchedRules,omitempty"`
}

// Resolve applies the package rules of cfg in order. Every matching rule
// overrides the fields it sets, so later rules win.
func Resolve(cfg *config.BotConfig, updateType config.UpdateType) Policy {
	p := Policy{UpdateType: updateType}
	for i := range cfg.PackageRules {
		rule := &cfg.PackageRules[i]
		if !rule.Matches(updateType) {
			continue
		}
		p.MatchedRules = append(p.MatchedRules, i)
		if rule.DependencyDashboardApproval != nil {
			p.DependencyDashboardApproval = *rule.DependencyDashboardApproval
		}
		if rule.StabilityGate.Set {
			p.StabilityGate = rule.StabilityGate
		}
	}
	return p
}

// Summarize resolves every known update type
func Summarize(cfg *config.BotConfig) []Policy {
	policies := make([]Policy, 0, len(config.UpdateTypes))
	for _, t := range config.UpdateTypes {
		policies = append(policies, Resolve(cfg, t))
	}
	return policies
}

// Remaining returns how long a release published at releasedAt still has to
// wait at now. It is zero once the gate is satisfied.
func (p Policy) Remaining(releasedAt, now time.Time) time.Duration {
	if p.StabilityGate.NoMinimumWait() {
		return 0
	}
	if left := releasedAt.Add(p.StabilityGate.Age).Sub(now); left > 0 {
		return left
	}
	return 0
}

// ReleaseAllowed reports whether a release published at releasedAt passes the
// stability gate at now. Approval is not considered.
func (p Policy) ReleaseAllowed(releasedAt, now time.Time) bool {
	return p.Remaining(releasedAt, now) == 0
}

// BypassesGate reports whether updates of this type skip both the approval
// and the stability gate
func (p Policy) BypassesGate() bool {
	return !p.DependencyDashboardApproval && p.StabilityGate.NoMinimumWait()
}

// String describes the policy on one line
func (p Policy) String() string {
	approval := "no approval"
	if p.DependencyDashboardApproval {
		approval = "dashboard approval"
	}
	gate := "no minimum wait"
	if !p.StabilityGate.NoMinimumWait() {
		gate = "minimum age " + p.StabilityGate.String()
	}
	rules := "default"
	if len(p.MatchedRules) > 0 {
		parts := make([]string, len(p.MatchedRules))
		for i, idx := range p.MatchedRules {
			parts[i] = fmt.Sprintf("#%d", idx)
		}
		rules = "rules " + strings.Join(parts, ",")
	}
	return fmt.Sprintf("%s: %s, %s (%s)", p.UpdateType, approval, gate, rules)
}
