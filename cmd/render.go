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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Write the validated configuration in canonical form",
		Long: `Render validates the configuration and writes it in canonical key order.
Legacy keys are kept as they are; use migrate to replace them.

Writing to config.js and exporting the printed RENOVATE_CONFIG_FILE hands the
configuration to the engine.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadBotConfig(args)
			if err != nil {
				return err
			}
			return writeBotConfig(cmd, cfg)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [file]",
		Short: "Rewrite legacy keys (includeForks, stabilityDays, boolean dryRun) with current ones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadBotConfig(args)
			if err != nil {
				return err
			}
			if !cfg.IsLegacy() {
				logrus.Infof("%s already uses current keys", path)
			}
			return writeBotConfig(cmd, cfg.Migrate())
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "output format: json, yaml or js (default: from --output, else json)")
	cmd.Flags().StringP("output", "o", "", "file to write, stdout when empty")
}

func writeBotConfig(cmd *cobra.Command, cfg *config.BotConfig) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	if opts.Output != "" && opts.Format == "" {
		if err := config.WriteFile(cfg, opts.Output); err != nil {
			return err
		}
		reportHandOff(opts.Output)
		return nil
	}

	format := config.FormatJSON
	if opts.Format != "" {
		if format, err = config.ParseFormat(opts.Format); err != nil {
			return err
		}
	}
	data, err := config.Marshal(cfg, format)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if config.FormatForPath(opts.Output) != format {
		logrus.Warnf("Writing %s content to %s", format, opts.Output)
	}
	if err := config.WriteData(opts.Output, data); err != nil {
		return err
	}
	reportHandOff(opts.Output)
	return nil
}

func reportHandOff(path string) {
	env, err := config.EngineEnv(path)
	if err != nil {
		logrus.Warnf("Wrote %s: %v", path, err)
		return
	}
	logrus.Infof("Wrote %s, point the engine at it with: export %s", path, env)
}
