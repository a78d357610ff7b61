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

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/git"
)

// document keys
const (
	keyBranchPrefix      = "branchPrefix"
	keyUsername          = "username"
	keyGitAuthor         = "gitAuthor"
	keyOnboarding        = "onboarding"
	keyPlatform          = "platform"
	keyForkProcessing    = "forkProcessing"
	keyIncludeForks      = "includeForks"
	keyDryRun            = "dryRun"
	keyRepositories      = "repositories"
	keyPackageRules      = "packageRules"
	keyDescription       = "description"
	keyMatchUpdateTypes  = "matchUpdateTypes"
	keyDashboardApproval = "dependencyDashboardApproval"
	keyMinimumReleaseAge = "minimumReleaseAge"
	keyStabilityDays     = "stabilityDays"
)

var topLevelKeys = map[string]bool{
	keyBranchPrefix: true, keyUsername: true, keyGitAuthor: true, keyOnboarding: true,
	keyPlatform: true, keyForkProcessing: true, keyIncludeForks: true, keyDryRun: true,
	keyRepositories: true, keyPackageRules: true,
	// editor hint in renovate.json, carries no configuration
	"$schema": true,
}

var ruleKeys = map[string]bool{
	keyDescription: true, keyMatchUpdateTypes: true, keyDashboardApproval: true,
	keyMinimumReleaseAge: true, keyStabilityDays: true,
}

type decoder struct {
	warnf func(format string, args ...interface{})
}

func (d *decoder) decode(doc map[string]interface{}) (*BotConfig, error) {
	d.warnUnknown(doc, topLevelKeys, "")

	for _, key := range []string{keyRepositories, keyPlatform, keyUsername} {
		if doc[key] == nil {
			return nil, missingField(key)
		}
	}

	cfg := &BotConfig{BranchPrefix: DefaultBranchPrefix, Onboarding: true}
	var err error

	if prefix, ok, err := stringField(doc, keyBranchPrefix, keyBranchPrefix); err != nil {
		return nil, err
	} else if ok {
		if prefix == "" {
			return nil, invalidValue(keyBranchPrefix, prefix, "must not be empty")
		}
		cfg.BranchPrefix = prefix
	}

	if cfg.Username, _, err = stringField(doc, keyUsername, keyUsername); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Username) == "" {
		return nil, invalidValue(keyUsername, cfg.Username, "must not be empty")
	}

	if author, ok, err := stringField(doc, keyGitAuthor, keyGitAuthor); err != nil {
		return nil, err
	} else if ok {
		if cfg.GitAuthorName, cfg.GitAuthorEmail, err = parseAuthor(author); err != nil {
			return nil, invalidValue(keyGitAuthor, author, "must be \"Name <email>\": %v", err)
		}
	}

	if onboarding, ok, err := boolField(doc, keyOnboarding, keyOnboarding); err != nil {
		return nil, err
	} else if ok {
		cfg.Onboarding = onboarding
	}

	platform, _, err := stringField(doc, keyPlatform, keyPlatform)
	if err != nil {
		return nil, err
	}
	if cfg.Platform, err = parsePlatform(platform); err != nil {
		return nil, err
	}

	if cfg.ForkProcessing, err = d.decodeForks(doc); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = d.decodeDryRun(doc); err != nil {
		return nil, err
	}
	if cfg.Repositories, err = d.decodeRepositories(doc[keyRepositories]); err != nil {
		return nil, err
	}
	if cfg.PackageRules, err = d.decodeRules(doc[keyPackageRules]); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d *decoder) warnUnknown(m map[string]interface{}, known map[string]bool, prefix string) {
	var unknown []string
	for key := range m {
		if !known[key] {
			unknown = append(unknown, prefix+key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		d.warnf("Ignoring unknown configuration key %q", key)
	}
}

func parsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", invalidEnum(keyPlatform, s, Platforms)
}

func (d *decoder) decodeForks(doc map[string]interface{}) (ForkSetting, error) {
	_, hasCurrent := doc[keyForkProcessing]
	_, hasLegacy := doc[keyIncludeForks]
	switch {
	case hasCurrent && hasLegacy:
		return ForkSetting{}, ambiguous(keyForkProcessing, keyForkProcessing, keyIncludeForks)
	case hasLegacy:
		include, _, err := boolField(doc, keyIncludeForks, keyIncludeForks)
		if err != nil {
			return ForkSetting{}, err
		}
		d.warnf("%q is deprecated, use %q", keyIncludeForks, keyForkProcessing)
		setting := ForkSetting{Value: ForkProcessingDisabled, Legacy: true, Set: true}
		if include {
			setting.Value = ForkProcessingEnabled
		}
		return setting, nil
	case hasCurrent:
		value, _, err := stringField(doc, keyForkProcessing, keyForkProcessing)
		if err != nil {
			return ForkSetting{}, err
		}
		switch ForkProcessing(value) {
		case ForkProcessingEnabled, ForkProcessingDisabled:
			return ForkSetting{Value: ForkProcessing(value), Set: true}, nil
		}
		return ForkSetting{}, invalidEnum(keyForkProcessing, value,
			[]ForkProcessing{ForkProcessingEnabled, ForkProcessingDisabled})
	}
	return ForkSetting{Value: ForkProcessingDisabled}, nil
}

func (d *decoder) decodeDryRun(doc map[string]interface{}) (DryRunSetting, error) {
	switch v := doc[keyDryRun].(type) {
	case nil:
		return DryRunSetting{Value: DryRunNone}, nil
	case bool:
		d.warnf("boolean %q is deprecated, use one of %q, %q or %q", keyDryRun, DryRunNone, DryRunLookup, DryRunFull)
		if v {
			return DryRunSetting{Value: DryRunFull, Legacy: true}, nil
		}
		return DryRunSetting{Value: DryRunNone, Legacy: true}, nil
	case string:
		switch DryRun(v) {
		case DryRunNone, DryRunLookup, DryRunFull:
			return DryRunSetting{Value: DryRun(v)}, nil
		}
		return DryRunSetting{}, invalidEnum(keyDryRun, v, []DryRun{DryRunNone, DryRunLookup, DryRunFull})
	default:
		return DryRunSetting{}, invalidValue(keyDryRun, v, "must be a string or boolean, got %T", v)
	}
}

func (d *decoder) decodeRepositories(raw interface{}) ([]string, error) {
	items, err := listValue(raw, keyRepositories)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalidValue(keyRepositories, items, "must list at least one repository")
	}
	repos := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", keyRepositories, i)
		name, ok := item.(string)
		if !ok {
			return nil, invalidValue(path, item, "must be a string, got %T", item)
		}
		if _, err := git.ParseRepository(name); err != nil {
			return nil, invalidValue(path, name, "%v", err)
		}
		if seen[name] {
			d.warnf("Repository %q is listed more than once", name)
		}
		seen[name] = true
		repos = append(repos, name)
	}
	return repos, nil
}

func (d *decoder) decodeRules(raw interface{}) ([]PackageRule, error) {
	if raw == nil {
		return nil, nil
	}
	items, err := listValue(raw, keyPackageRules)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	rules := make([]PackageRule, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", keyPackageRules, i)
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, invalidValue(path, item, "must be an object, got %T", item)
		}
		rule, err := d.decodeRule(m, path)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (d *decoder) decodeRule(m map[string]interface{}, path string) (PackageRule, error) {
	d.warnUnknown(m, ruleKeys, path+".")
	var rule PackageRule
	var err error

	if rule.Description, _, err = stringField(m, keyDescription, path+"."+keyDescription); err != nil {
		return rule, err
	}

	typesPath := path + "." + keyMatchUpdateTypes
	if m[keyMatchUpdateTypes] == nil {
		return rule, missingField(typesPath)
	}
	if rule.MatchUpdateTypes, err = decodeUpdateTypes(m[keyMatchUpdateTypes], typesPath); err != nil {
		return rule, err
	}

	if approval, ok, err := boolField(m, keyDashboardApproval, path+"."+keyDashboardApproval); err != nil {
		return rule, err
	} else if ok {
		rule.DependencyDashboardApproval = &approval
	}

	if rule.StabilityGate, err = d.decodeGate(m, path); err != nil {
		return rule, err
	}
	return rule, nil
}

func decodeUpdateTypes(raw interface{}, path string) ([]UpdateType, error) {
	items, err := listValue(raw, path)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &SchemaError{
			Kind:    KindInvalidEnumValue,
			Field:   path,
			Value:   items,
			Message: fmt.Sprintf("must contain at least one of %v", UpdateTypes),
		}
	}
	types := make([]UpdateType, 0, len(items))
	seen := make(map[UpdateType]bool, len(items))
	for i, item := range items {
		s, _ := item.(string)
		t, ok := ParseUpdateType(s)
		if !ok {
			return nil, invalidEnum(fmt.Sprintf("%s[%d]", path, i), item, UpdateTypes)
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types, nil
}

func (d *decoder) decodeGate(m map[string]interface{}, path string) (StabilityGate, error) {
	ageRaw, hasAge := m[keyMinimumReleaseAge]
	daysRaw, hasDays := m[keyStabilityDays]
	switch {
	case hasAge && hasDays:
		return StabilityGate{}, ambiguous(path+"."+keyMinimumReleaseAge, keyMinimumReleaseAge, keyStabilityDays)
	case hasAge:
		field := path + "." + keyMinimumReleaseAge
		if ageRaw == nil {
			return StabilityGate{Set: true}, nil
		}
		text, ok := ageRaw.(string)
		if !ok {
			return StabilityGate{}, invalidValue(field, ageRaw, "must be a duration string or null, got %T", ageRaw)
		}
		age, err := ParseReleaseAge(text)
		if err != nil {
			return StabilityGate{}, invalidValue(field, text, "%v", err)
		}
		return StabilityGate{Set: true, Age: age, Raw: text}, nil
	case hasDays:
		field := path + "." + keyStabilityDays
		days, ok := integerValue(daysRaw)
		if !ok || days < 0 {
			return StabilityGate{}, invalidValue(field, daysRaw, "must be an integer >= 0")
		}
		if int64(days) > MaxStabilityDays {
			return StabilityGate{}, invalidValue(field, daysRaw, "must not exceed %d", MaxStabilityDays)
		}
		d.warnf("%q is deprecated, use %q", field, keyMinimumReleaseAge)
		return StabilityGate{Set: true, Age: time.Duration(days) * day, Legacy: true}, nil
	}
	return StabilityGate{}, nil
}

func stringField(m map[string]interface{}, key, path string) (string, bool, error) {
	raw := m[key]
	if raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, invalidValue(path, raw, "must be a string, got %T", raw)
	}
	return s, true, nil
}

func boolField(m map[string]interface{}, key, path string) (bool, bool, error) {
	raw := m[key]
	if raw == nil {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, invalidValue(path, raw, "must be a boolean, got %T", raw)
	}
	return b, true, nil
}

func listValue(raw interface{}, path string) ([]interface{}, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, invalidValue(path, raw, "must be a list, got %T", raw)
	}
	return items, nil
}

func integerValue(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return integerValue(n)
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integerValue(f)
	case int:
		return v, true
	case int64:
		return int(v), v >= math.MinInt && v <= math.MaxInt
	case uint64:
		return int(v), v <= math.MaxInt
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func parseAuthor(s string) (string, string, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", "", err
	}
	return addr.Name, addr.Address, nil
}

func formatAuthor(name, email string) string {
	if email == "" {
		return ""
	}
	if name == "" {
		return email
	}
	if strings.IndexFunc(name, isSpecial) >= 0 {
		return (&mail.Address{Name: name, Address: email}).String()
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// isSpecial reports runes that force a quoted display name
func isSpecial(r rune) bool {
	return strings.ContainsRune(`()<>[]:;@\,."`, r) || r > 0x7e
}
