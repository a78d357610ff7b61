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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a bot configuration document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadBotConfig(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s is valid\n", path)
			fmt.Fprintf(out, "  platform:       %s\n", cfg.Platform)
			fmt.Fprintf(out, "  username:       %s\n", cfg.Username)
			fmt.Fprintf(out, "  branch prefix:  %s\n", cfg.BranchPrefix)
			fmt.Fprintf(out, "  dry run:        %s\n", cfg.DryRun.Value)
			fmt.Fprintf(out, "  forks:          %s\n", cfg.ForkProcessing.Value)
			fmt.Fprintf(out, "  repositories:   %d\n", len(cfg.Repositories))
			fmt.Fprintf(out, "  package rules:  %d\n", len(cfg.PackageRules))
			if cfg.IsLegacy() {
				logrus.Warnf("%s uses legacy keys, run \"botconfig migrate\" to update it", path)
			}
			return nil
		},
	}
}
