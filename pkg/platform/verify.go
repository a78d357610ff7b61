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

package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/git"
)

// Result is the outcome of checking one repository
type Result struct {
	Repository string `json:"repository"`
	Err        error  `json:"-"`
}

// OK reports whether the repository passed
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of Verify in repository order
type Report struct {
	Results []Result `json:"results"`
}

// Failed returns the results that did not pass
func (r *Report) Failed() []Result {
	var failed []Result
	for _, result := range r.Results {
		if !result.OK() {
			failed = append(failed, result)
		}
	}
	return failed
}

// Verify checks every repository in order. A nil limiter means no rate limit.
// The returned error joins all failures; context cancellation stops early.
func Verify(ctx context.Context, checker Checker, repos []string, limiter *rate.Limiter) (*Report, error) {
	report := &Report{Results: make([]Result, 0, len(repos))}
	var errs []error

	for _, name := range repos {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return report, fmt.Errorf("verification interrupted: %w", err)
			}
		} else if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("verification interrupted: %w", err)
		}

		result := Result{Repository: name}
		repo, err := git.ParseRepository(name)
		if err == nil {
			logrus.Debugf("Checking %s on %s", repo, checker.GetPlatformType())
			err = checker.RepositoryExists(ctx, repo)
		}
		if err != nil {
			logrus.Warnf("Repository %s failed verification: %v", name, err)
			result.Err = err
			errs = append(errs, err)
		}
		report.Results = append(report.Results, result)
	}

	if len(errs) > 0 {
		return report, fmt.Errorf("%d of %d repositories failed verification: %w", len(errs), len(repos), errors.Join(errs...))
	}
	return report, nil
}
