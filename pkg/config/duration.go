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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const day = 24 * time.Hour

// MaxReleaseAge is the longest release age a time.Duration can hold
const MaxReleaseAge = time.Duration(math.MaxInt64)

// MaxStabilityDays is the largest stabilityDays value that fits in MaxReleaseAge
const MaxStabilityDays = int64(MaxReleaseAge / day)

var releaseAgeUnits = map[string]time.Duration{
	"ms":           time.Millisecond,
	"millisecond":  time.Millisecond,
	"milliseconds": time.Millisecond,
	"s":            time.Second,
	"sec":          time.Second,
	"secs":         time.Second,
	"second":       time.Second,
	"seconds":      time.Second,
	"m":            time.Minute,
	"min":          time.Minute,
	"mins":         time.Minute,
	"minute":       time.Minute,
	"minutes":      time.Minute,
	"h":            time.Hour,
	"hr":           time.Hour,
	"hrs":          time.Hour,
	"hour":         time.Hour,
	"hours":        time.Hour,
	"d":            day,
	"day":          day,
	"days":         day,
	"w":            7 * day,
	"week":         7 * day,
	"weeks":        7 * day,
	"mo":           30 * day,
	"month":        30 * day,
	"months":       30 * day,
	"y":            365 * day,
	"year":         365 * day,
	"years":        365 * day,
}

// ParseReleaseAge parses a minimumReleaseAge value such as "3 days", "1 week"
// or "72h".
func ParseReleaseAge(s string) (time.Duration, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if d, err := time.ParseDuration(text); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return d, nil
	}

	idx := strings.IndexFunc(text, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	if idx <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	amount, err := strconv.ParseFloat(text[:idx], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	unit, ok := releaseAgeUnits[strings.ToLower(strings.TrimSpace(text[idx:]))]
	if !ok {
		return 0, fmt.Errorf("unknown unit in duration %q", s)
	}
	total := amount * float64(unit)
	if math.IsNaN(total) || math.IsInf(total, 0) || total >= float64(MaxReleaseAge) {
		return 0, fmt.Errorf("duration %q exceeds the maximum of %s", s, MaxReleaseAge)
	}
	return time.Duration(total), nil
}

// FormatDays renders a whole number of days the way minimumReleaseAge expects
func FormatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
