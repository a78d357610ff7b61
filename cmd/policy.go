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
	"time"

	"github.com/spf13/cobra"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
	"github.com/AlaudaDevops/toolbox/botconfig/pkg/policy"
	"github.com/AlaudaDevops/toolbox/botconfig/pkg/update"
)

func newPolicyCommand() *cobra.Command {
	var (
		updateType string
		from       string
		to         string
		releasedAt string
	)

	cmd := &cobra.Command{
		Use:   "policy [file]",
		Short: "Show the effective approval and stability policy per update type",
		Long: `Policy applies the package rules in order and prints the resulting policy.
Without --update-type or --from/--to every update type is listed.

Example usage:
  botconfig policy --update-type major
  botconfig policy --from 1.2.3 --to 1.3.0 --released-at 2025-06-01T00:00:00Z`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadBotConfig(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var selected config.UpdateType
			switch {
			case updateType != "" && (from != "" || to != ""):
				return fmt.Errorf("cannot specify both --update-type and --from/--to")
			case updateType != "":
				t, ok := config.ParseUpdateType(updateType)
				if !ok {
					return fmt.Errorf("unknown update type %q (supported: %v)", updateType, config.UpdateTypes)
				}
				selected = t
			case from != "" || to != "":
				if selected, err = update.Classify(from, to); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s -> %s is a %s update\n", from, to, selected)
			default:
				for _, p := range policy.Summarize(cfg) {
					fmt.Fprintln(out, p.String())
				}
				return nil
			}

			p := policy.Resolve(cfg, selected)
			fmt.Fprintln(out, p.String())
			if releasedAt == "" {
				return nil
			}
			released, err := time.Parse(time.RFC3339, releasedAt)
			if err != nil {
				return fmt.Errorf("invalid --released-at: %w", err)
			}
			if left := p.Remaining(released, time.Now()); left > 0 {
				fmt.Fprintf(out, "release must wait %s more\n", left.Round(time.Minute))
			} else {
				fmt.Fprintln(out, "release passes the stability gate")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&updateType, "update-type", "", "update type to resolve (pin, digest, patch, minor, major, lockFileMaintenance)")
	cmd.Flags().StringVar(&from, "from", "", "current version, classified together with --to")
	cmd.Flags().StringVar(&to, "to", "", "proposed version")
	cmd.Flags().StringVar(&releasedAt, "released-at", "", "release time of the proposed version (RFC3339)")
	return cmd
}
