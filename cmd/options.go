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
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
)

// Options are the tool options merged from config file, environment and flags
type Options struct {
	// Debug enables debug log output
	Debug bool `mapstructure:"debug"`
	// Format is the output format of render and migrate
	Format string `mapstructure:"format"`
	// Output is the file written by render and migrate, stdout when empty
	Output string `mapstructure:"output"`
	// Git contains git provider configuration for verify
	Git GitOptions `mapstructure:"git"`
	// Verify contains verify-specific configuration
	Verify VerifyOptions `mapstructure:"verify"`
}

// GitOptions configure the platform API client
type GitOptions struct {
	// Token is the authentication token for the platform
	Token string `mapstructure:"token"`
	// BaseURL is the API base URL, empty for the public service
	BaseURL string `mapstructure:"baseUrl"`
}

// VerifyOptions configure repository verification
type VerifyOptions struct {
	// RPS limits platform API calls per second, 0 disables the limit
	RPS float64 `mapstructure:"rps"`
	// Timeout bounds the whole verification
	Timeout time.Duration `mapstructure:"timeout"`
}

func loadOptions() (*Options, error) {
	opts := &Options{}
	if err := viper.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	return opts, nil
}

// loadBotConfig loads the document named in args, or the first recognized file
// in the working directory
func loadBotConfig(args []string) (*config.BotConfig, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		if path, err = config.Discover(wd); err != nil {
			return nil, "", err
		}
	}

	logrus.Infof("Loading configuration from %s", path)
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
