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
	"errors"
	"path/filepath"
	"testing"

	pkgtesting "github.com/AlaudaDevops/pkg/testing"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

type invalidFixture struct {
	Cases []invalidCase `json:"cases" yaml:"cases"`
}

type invalidCase struct {
	Description string `json:"description" yaml:"description"`
	Format      string `json:"format" yaml:"format"`
	Kind        string `json:"kind" yaml:"kind"`
	Field       string `json:"field" yaml:"field"`
	Document    string `json:"document" yaml:"document"`
}

func loadInvalidCases() []invalidCase {
	var fixture invalidFixture
	pkgtesting.MustLoadYaml(filepath.Join("testdata", "invalid", "cases.yaml"), &fixture)
	return fixture.Cases
}

var _ = Describe("Loading invalid documents", func() {
	for _, tc := range loadInvalidCases() {
		tc := tc
		It("rejects "+tc.Description, func() {
			format, err := ParseFormat(tc.Format)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := quietReader(nil).Read([]byte(tc.Document), format)
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())

			var schemaErr *SchemaError
			Expect(errors.As(err, &schemaErr)).To(BeTrue())
			Expect(schemaErr.Kind).To(Equal(ErrorKind(tc.Kind)))
			Expect(schemaErr.Field).To(Equal(tc.Field))
			Expect(err).To(MatchError(sentinels[schemaErr.Kind]))
		})
	}
})

var _ = Describe("Stability gate aliases", func() {
	load := func(gate string) *BotConfig {
		doc := "username: bot\nplatform: github\nrepositories: [org/repo]\n" +
			"packageRules:\n  - matchUpdateTypes: [patch]\n    " + gate + "\n"
		cfg, err := quietReader(nil).Read([]byte(doc), FormatYAML)
		Expect(err).NotTo(HaveOccurred())
		return cfg
	}

	It("treats minimumReleaseAge null and stabilityDays 0 as no minimum wait", func() {
		current := load("minimumReleaseAge: null").PackageRules[0].StabilityGate
		legacy := load("stabilityDays: 0").PackageRules[0].StabilityGate

		Expect(current.NoMinimumWait()).To(BeTrue())
		Expect(legacy.NoMinimumWait()).To(BeTrue())
		Expect(current.Age).To(Equal(legacy.Age))
		Expect(legacy.Legacy).To(BeTrue())
	})

	It("converts stabilityDays to whole days", func() {
		gate := load("stabilityDays: 3").PackageRules[0].StabilityGate
		Expect(gate.Days()).To(Equal(3))
		Expect(gate.String()).To(Equal("3 days (stabilityDays)"))
	})

	It("leaves the gate unset when neither key is present", func() {
		gate := load("dependencyDashboardApproval: true").PackageRules[0].StabilityGate
		Expect(gate.Set).To(BeFalse())
		Expect(gate.String()).To(Equal("unset"))
	})
})
