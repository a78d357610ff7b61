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
	"testing"
	"time"
)

func TestParseReleaseAge(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "3 days", want: 3 * 24 * time.Hour},
		{input: "1 day", want: 24 * time.Hour},
		{input: "1 week", want: 7 * 24 * time.Hour},
		{input: "12 hours", want: 12 * time.Hour},
		{input: "30 minutes", want: 30 * time.Minute},
		{input: "2d", want: 48 * time.Hour},
		{input: "72h", want: 72 * time.Hour},
		{input: "1h30m", want: 90 * time.Minute},
		{input: "1.5 days", want: 36 * time.Hour},
		{input: "1 month", want: 30 * 24 * time.Hour},
		{input: "0 days", want: 0},
		{input: "  5 Days  ", want: 5 * 24 * time.Hour},
		{input: "", wantErr: true},
		{input: "days", wantErr: true},
		{input: "3 fortnights", wantErr: true},
		{input: "-3h", wantErr: true},
		{input: "292 years", want: 292 * 365 * 24 * time.Hour},
		{input: "300 years", wantErr: true},
		{input: "1000 years", wantErr: true},
		{input: "9999999999h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseAge(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseReleaseAge(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseReleaseAge(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDays(t *testing.T) {
	if got := FormatDays(1); got != "1 day" {
		t.Errorf("FormatDays(1) = %q", got)
	}
	if got := FormatDays(7); got != "7 days" {
		t.Errorf("FormatDays(7) = %q", got)
	}
}
