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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshal_RoundTrip(t *testing.T) {
	files := []string{"config.js", "config-legacy.js", "renovate.json", "renovate.yaml"}
	formats := []Format{FormatJSON, FormatYAML, FormatJS}

	for _, file := range files {
		loaded, err := quietReader(nil).ReadFile(filepath.Join("testdata", file))
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", file, err)
		}
		for _, format := range formats {
			t.Run(file+"/"+string(format), func(t *testing.T) {
				data, err := Marshal(loaded, format)
				if err != nil {
					t.Fatalf("Marshal() error = %v", err)
				}
				reloaded, err := quietReader(nil).Read(data, format)
				if err != nil {
					t.Fatalf("Read() of rendered document error = %v\n%s", err, data)
				}
				if diff := cmp.Diff(loaded, reloaded); diff != "" {
					t.Errorf("round trip diff (-loaded +reloaded):\n%s", diff)
				}
			})
		}
	}
}

func TestMarshal_JS(t *testing.T) {
	cfg, err := quietReader(nil).ReadFile(filepath.Join("testdata", "config.js"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	data, err := Marshal(cfg, FormatJS)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{
		"module.exports = {\n",
		`"gitAuthor": "Renovate Bot <bot@renovateapp.com>"`,
		`"forkProcessing": "disabled"`,
		`"dryRun": "full"`,
		`"minimumReleaseAge": null`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered config does not contain %q:\n%s", want, got)
		}
	}
	for _, unwanted := range []string{"includeForks", "stabilityDays"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("rendered config contains legacy key %q:\n%s", unwanted, got)
		}
	}
	if !strings.HasSuffix(got, "};\n") {
		t.Errorf("rendered config does not end with the assignment terminator: %q", got)
	}
}

func TestMarshal_KeepsLegacyKeys(t *testing.T) {
	cfg, err := quietReader(nil).ReadFile(filepath.Join("testdata", "renovate.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	data, err := Marshal(cfg, FormatYAML)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	for _, want := range []string{"includeForks: true", "dryRun: true", "stabilityDays: 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered yaml does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "minimumReleaseAge") {
		t.Errorf("rule without a gate gained minimumReleaseAge:\n%s", got)
	}
}

func TestMigrate(t *testing.T) {
	cfg, err := quietReader(nil).ReadFile(filepath.Join("testdata", "renovate.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	migrated := cfg.Migrate()

	if migrated.IsLegacy() {
		t.Errorf("Migrate() result still uses legacy keys: %s", migrated)
	}
	if !cfg.IsLegacy() {
		t.Errorf("Migrate() modified its receiver")
	}
	want := StabilityGate{Set: true, Age: cfg.PackageRules[0].StabilityGate.Age, Raw: "2 days"}
	if diff := cmp.Diff(want, migrated.PackageRules[0].StabilityGate); diff != "" {
		t.Errorf("migrated gate diff (-want +got):\n%s", diff)
	}
	if migrated.ForkProcessing.Value != ForkProcessingEnabled || migrated.DryRun.Value != DryRunFull {
		t.Errorf("Migrate() changed values: %s", migrated)
	}

	data, err := Marshal(migrated, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	reloaded, err := quietReader(nil).Read(data, FormatJSON)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(migrated, reloaded); diff != "" {
		t.Errorf("migrated round trip diff:\n%s", diff)
	}
}

func TestWriteFileAndEngineEnv(t *testing.T) {
	cfg, err := quietReader(nil).Read([]byte(scenarioDocument), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "engine", DefaultEngineFile)
	if err := WriteFile(cfg, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if !strings.HasPrefix(string(data), "module.exports = ") {
		t.Errorf("config.js was not written as a module: %q", data)
	}

	env, err := EngineEnv(path)
	if err != nil {
		t.Fatalf("EngineEnv() error = %v", err)
	}
	if env != EngineConfigEnv+"="+path {
		t.Errorf("EngineEnv() = %q", env)
	}
}
