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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EngineConfigEnv is the environment variable the engine reads its config path from
const EngineConfigEnv = "RENOVATE_CONFIG_FILE"

// DefaultEngineFile is the file name the engine recognizes without any hint
const DefaultEngineFile = "config.js"

// document is the serialized shape of BotConfig. Legacy and current keys are
// both declared; exactly one of each pair is filled by newDocument.
type document struct {
	BranchPrefix   string         `json:"branchPrefix" yaml:"branchPrefix"`
	Username       string         `json:"username" yaml:"username"`
	GitAuthor      string         `json:"gitAuthor,omitempty" yaml:"gitAuthor,omitempty"`
	Onboarding     bool           `json:"onboarding" yaml:"onboarding"`
	Platform       Platform       `json:"platform" yaml:"platform"`
	ForkProcessing ForkProcessing `json:"forkProcessing,omitempty" yaml:"forkProcessing,omitempty"`
	IncludeForks   *bool          `json:"includeForks,omitempty" yaml:"includeForks,omitempty"`
	// DryRun holds a DryRun string, a legacy bool, or nil for no dry run
	DryRun       interface{}    `json:"dryRun" yaml:"dryRun"`
	Repositories []string       `json:"repositories" yaml:"repositories"`
	PackageRules []ruleDocument `json:"packageRules,omitempty" yaml:"packageRules,omitempty"`
}

type ruleDocument struct {
	Description                 string       `json:"description,omitempty" yaml:"description,omitempty"`
	MatchUpdateTypes            []UpdateType `json:"matchUpdateTypes" yaml:"matchUpdateTypes"`
	DependencyDashboardApproval *bool        `json:"dependencyDashboardApproval,omitempty" yaml:"dependencyDashboardApproval,omitempty"`
	MinimumReleaseAge           releaseAge   `json:"minimumReleaseAge,omitzero" yaml:"minimumReleaseAge,omitempty"`
	StabilityDays               *int         `json:"stabilityDays,omitempty" yaml:"stabilityDays,omitempty"`
}

// releaseAge distinguishes an absent minimumReleaseAge from an explicit null
type releaseAge struct {
	set   bool
	value string
}

func (r releaseAge) IsZero() bool {
	return !r.set
}

func (r releaseAge) MarshalJSON() ([]byte, error) {
	if r.value == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

func (r releaseAge) MarshalYAML() (interface{}, error) {
	if r.value == "" {
		return nil, nil
	}
	return r.value, nil
}

func newDocument(cfg *BotConfig) *document {
	doc := &document{
		BranchPrefix: cfg.BranchPrefix,
		Username:     cfg.Username,
		GitAuthor:    cfg.GitAuthor(),
		Onboarding:   cfg.Onboarding,
		Platform:     cfg.Platform,
		Repositories: cfg.Repositories,
	}

	if cfg.ForkProcessing.Set {
		if cfg.ForkProcessing.Legacy {
			include := cfg.ForkProcessing.Value == ForkProcessingEnabled
			doc.IncludeForks = &include
		} else {
			doc.ForkProcessing = cfg.ForkProcessing.Value
		}
	}

	switch {
	case cfg.DryRun.Legacy:
		doc.DryRun = cfg.DryRun.Value != DryRunNone
	case cfg.DryRun.Value != DryRunNone:
		doc.DryRun = cfg.DryRun.Value
	}

	for _, rule := range cfg.PackageRules {
		rd := ruleDocument{
			Description:                 rule.Description,
			MatchUpdateTypes:            rule.MatchUpdateTypes,
			DependencyDashboardApproval: rule.DependencyDashboardApproval,
		}
		gate := rule.StabilityGate
		switch {
		case !gate.Set:
		case gate.Legacy:
			days := gate.Days()
			rd.StabilityDays = &days
		default:
			rd.MinimumReleaseAge = releaseAge{set: true, value: gate.Raw}
		}
		doc.PackageRules = append(doc.PackageRules, rd)
	}
	return doc
}

// Marshal serializes cfg in canonical key order, keeping each value in the
// representation it was loaded with.
func Marshal(cfg *BotConfig, format Format) ([]byte, error) {
	doc := newDocument(cfg)
	switch format {
	case FormatJSON:
		return marshalJSON(doc)
	case FormatJS:
		body, err := marshalJSON(doc)
		if err != nil {
			return nil, err
		}
		var out bytes.Buffer
		out.WriteString("module.exports = ")
		out.Write(bytes.TrimRight(body, "\n"))
		out.WriteString(";\n")
		return out.Bytes(), nil
	case FormatYAML:
		var out bytes.Buffer
		enc := yaml.NewEncoder(&out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return out.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func marshalJSON(doc *document) ([]byte, error) {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return out.Bytes(), nil
}

// WriteFile writes cfg to path in the format implied by its name
func WriteFile(cfg *BotConfig, path string) error {
	data, err := Marshal(cfg, FormatForPath(path))
	if err != nil {
		return err
	}
	return WriteData(path, data)
}

// WriteData writes rendered configuration to path, creating parent directories
func WriteData(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	logrus.Debugf("Wrote configuration to %s", path)
	return nil
}

// EngineEnv returns the NAME=value pair pointing the engine at path
func EngineEnv(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return EngineConfigEnv + "=" + abs, nil
}
