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

// Package cmd provides command line interface for the botconfig application
package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by viper
const EnvPrefix = "BOTCONFIG"

// NewRootCommand builds the botconfig command tree
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "botconfig",
		Short: "Validate and hand off dependency-update bot configuration",
		Long: `botconfig loads the configuration of a Renovate-style dependency-update bot,
validates it against the configuration schema and hands it to the engine.

Configuration documents may be JSON (renovate.json, .renovaterc), YAML or a
CommonJS module (config.js). When no file is given, the current directory is
searched for a recognized file name.

Tool options can be provided via:
1. Tool configuration file (--config flag, or .botconfig.yaml in . or $HOME)
2. Environment variables prefixed with BOTCONFIG_ (e.g. BOTCONFIG_GIT_TOKEN)
3. Command line flags (highest priority)

Example usage:
  # Validate the configuration in the current directory
  botconfig validate

  # Rewrite a legacy configuration using current keys
  botconfig migrate config.js --output config.js

  # Show which rules govern patch updates
  botconfig policy renovate.json --update-type patch

  # Check that every repository exists on the platform
  botconfig verify config.js --git.token $GITHUB_TOKEN`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			initConfig(cfgFile)
			if viper.GetBool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
				logrus.Debug("Debug logging enabled")
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
			return nil
		},
	}

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default: .botconfig.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug log output")

	rootCmd.AddCommand(
		newValidateCommand(),
		newRenderCommand(),
		newMigrateCommand(),
		newPolicyCommand(),
		newVerifyCommand(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return NewRootCommand().Execute()
}

func initConfig(cfgFile string) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".botconfig")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			logrus.Debug("No tool config file found, using flags and environment")
			return
		}
		logrus.Warn("Can't read config: ", err)
		return
	}
	logrus.Debugf("Using tool config file: %s", viper.ConfigFileUsed())
}
