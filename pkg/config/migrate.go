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

package config

// Migrate returns a copy of c that uses only current representations:
// includeForks becomes forkProcessing, boolean dryRun becomes its enum and
// stabilityDays becomes minimumReleaseAge (0 days becomes null).
func (c *BotConfig) Migrate() *BotConfig {
	out := *c
	out.Repositories = append([]string(nil), c.Repositories...)
	out.ForkProcessing.Legacy = false
	out.DryRun.Legacy = false

	if c.PackageRules != nil {
		out.PackageRules = make([]PackageRule, len(c.PackageRules))
	}
	for i, rule := range c.PackageRules {
		rule.MatchUpdateTypes = append([]UpdateType(nil), rule.MatchUpdateTypes...)
		if rule.DependencyDashboardApproval != nil {
			approval := *rule.DependencyDashboardApproval
			rule.DependencyDashboardApproval = &approval
		}
		if rule.StabilityGate.Legacy {
			rule.StabilityGate.Legacy = false
			rule.StabilityGate.Raw = ""
			if days := rule.StabilityGate.Days(); days > 0 {
				rule.StabilityGate.Raw = FormatDays(days)
			}
		}
		out.PackageRules[i] = rule
	}
	return &out
}
