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

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/platform"
)

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that every configured repository exists on the platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadBotConfig(args)
			if err != nil {
				return err
			}
			opts, err := loadOptions()
			if err != nil {
				return err
			}

			checker, err := platform.NewChecker(cfg.Platform, opts.Git.BaseURL, opts.Git.Token)
			if err != nil {
				return err
			}

			var limiter *rate.Limiter
			if opts.Verify.RPS > 0 {
				limiter = rate.NewLimiter(rate.Limit(opts.Verify.RPS), 1)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if opts.Verify.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.Verify.Timeout)
				defer cancel()
			}

			logrus.Infof("Verifying %d repositories on %s", len(cfg.Repositories), cfg.Platform)
			report, err := platform.Verify(ctx, checker, cfg.Repositories, limiter)
			out := cmd.OutOrStdout()
			for _, result := range report.Results {
				if result.OK() {
					fmt.Fprintf(out, "ok    %s\n", result.Repository)
				} else {
					fmt.Fprintf(out, "FAIL  %s: %v\n", result.Repository, result.Err)
				}
			}
			return err
		},
	}

	cmd.Flags().String("git.token", "", "access token for the platform API")
	cmd.Flags().String("git.baseUrl", "", "base API URL of the platform (e.g. https://gitlab.example.com)")
	cmd.Flags().Float64("verify.rps", 5, "maximum platform API requests per second, 0 for no limit")
	cmd.Flags().Duration("verify.timeout", 2*time.Minute, "timeout for the whole verification")
	return cmd
}
