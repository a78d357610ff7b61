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

package update

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
)

func TestUpdate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Update Classification Suite")
}

var _ = Describe("Classify", func() {
	DescribeTable("classifies version changes",
		func(current, next string, want config.UpdateType) {
			got, err := Classify(current, next)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("patch", "1.2.3", "1.2.4", config.UpdateTypePatch),
		Entry("minor", "1.2.3", "1.3.0", config.UpdateTypeMinor),
		Entry("major", "1.2.3", "2.0.0", config.UpdateTypeMajor),
		Entry("v prefix on both", "v1.20.0", "v1.21.0", config.UpdateTypeMinor),
		Entry("mixed prefix", "v1.0.0", "1.0.1", config.UpdateTypePatch),
		Entry("short version", "1.0", "1.0.1", config.UpdateTypePatch),
		Entry("pre-release to release", "1.0.0-alpha", "1.0.0", config.UpdateTypePatch),
		Entry("caret range pinned", "^1.2.0", "1.4.1", config.UpdateTypePin),
		Entry("tilde range pinned", "~2.3", "2.3.7", config.UpdateTypePin),
		Entry("digest change", "1.2.3@sha256:aaa", "1.2.3@sha256:bbb", config.UpdateTypeDigest),
		Entry("digest added", "1.2.3", "1.2.3@sha256:bbb", config.UpdateTypeDigest),
	)

	It("rejects downgrades", func() {
		_, err := Classify("2.0.0", "1.9.9")
		Expect(err).To(MatchError(ErrDowngrade))
	})

	It("rejects identical versions", func() {
		_, err := Classify("v1.0.0", "1.0.0")
		Expect(err).To(MatchError(ErrNoChange))
	})

	It("rejects pins outside of the range", func() {
		_, err := Classify("^1.2.0", "2.0.0")
		Expect(err).To(HaveOccurred())
	})

	It("rejects unparsable versions", func() {
		_, err := Classify("1.0.0", "latest")
		Expect(err).To(HaveOccurred())
		_, err = Classify("not a version", "1.0.0")
		Expect(err).To(HaveOccurred())
	})
})
