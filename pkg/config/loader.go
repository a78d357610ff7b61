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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a configuration document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatJS is a CommonJS module assigning an object literal to module.exports
	FormatJS Format = "js"
)

// ParseFormat returns the format named by s
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "js", "javascript", "cjs":
		return FormatJS, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: json, yaml, js)", s)
	}
}

// FormatForPath infers the format from a file name
func FormatForPath(path string) Format {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".js", ".cjs":
		return FormatJS
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// RecognizedFiles are searched in order by Discover
var RecognizedFiles = []string{
	"config.js",
	"renovate.json",
	".renovaterc.json",
	".renovaterc",
	"renovate.yaml",
	filepath.Join(".github", "renovate.json"),
}

// ErrNoConfigFile is returned by Discover when no recognized file exists
var ErrNoConfigFile = errors.New("no configuration file found")

// ConfigReader reads configuration documents into validated BotConfig values
type ConfigReader struct {
	// Warnf receives warnings about ignored keys and legacy representations
	Warnf func(format string, args ...interface{})
}

// NewConfigReader creates a new configuration reader logging warnings through logrus
func NewConfigReader() *ConfigReader {
	return &ConfigReader{Warnf: logrus.Warnf}
}

// Load parses and validates data with the default reader
func Load(data []byte, format Format) (*BotConfig, error) {
	return NewConfigReader().Read(data, format)
}

// LoadFile reads, parses and validates the file at path with the default reader
func LoadFile(path string) (*BotConfig, error) {
	return NewConfigReader().ReadFile(path)
}

// Discover returns the first recognized configuration file in dir
func Discover(dir string) (string, error) {
	for _, name := range RecognizedFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			logrus.Debugf("Found configuration file: %s", path)
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoConfigFile, dir, strings.Join(RecognizedFiles, ", "))
}

// ReadFile reads and validates the configuration file at path
func (c *ConfigReader) ReadFile(path string) (*BotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	format := FormatForPath(path)
	logrus.Debugf("Reading %s as %s", path, format)
	return c.Read(data, format)
}

// Read parses data in the given format and validates it. Validation is all
// or nothing: the first violation is returned and no config is produced.
func (c *ConfigReader) Read(data []byte, format Format) (*BotConfig, error) {
	doc, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}
	d := &decoder{warnf: c.Warnf}
	if d.warnf == nil {
		d.warnf = func(string, ...interface{}) {}
	}
	return d.decode(doc)
}

// parseDocument decodes the raw document into a generic map. The JS object
// literal is read as YAML flow syntax once comments and the assignment are gone.
func parseDocument(data []byte, format Format) (map[string]interface{}, error) {
	source := string(format)
	var raw interface{}
	switch format {
	case FormatJSON:
		if err := decodeJSON(data, &raw); err != nil {
			return nil, parseError(source, err)
		}
	case FormatJS:
		literal, err := extractObjectLiteral(string(data))
		if err != nil {
			return nil, parseError(source, err)
		}
		data = []byte(literal)
		fallthrough
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, parseError(source, err)
		}
	}
	if raw == nil {
		return nil, parseError(source, errors.New("document is empty"))
	}
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil, parseError(source, fmt.Errorf("document must be an object, got %T", raw))
	}
	return doc, nil
}

// decodeJSON reads exactly one JSON value, keeping numbers as json.Number
func decodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the top-level value")
	}
	return nil
}

// extractObjectLiteral strips comments and the module.exports assignment
// from a CommonJS config file, leaving the object literal.
func extractObjectLiteral(src string) (string, error) {
	body := strings.TrimSpace(stripComments(src))
	switch {
	case strings.HasPrefix(body, "module.exports"):
		body = strings.TrimSpace(strings.TrimPrefix(body, "module.exports"))
		if !strings.HasPrefix(body, "=") {
			return "", errors.New("expected '=' after module.exports")
		}
		body = strings.TrimPrefix(body, "=")
	case strings.HasPrefix(body, "export default"):
		body = strings.TrimPrefix(body, "export default")
	default:
		return "", errors.New("expected module.exports assignment")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSpace(strings.TrimSuffix(body, ";"))
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return "", errors.New("module.exports must be an object literal")
	}
	return body, nil
}

// stripComments removes // and /* */ comments outside of string literals
func stripComments(src string) string {
	var out strings.Builder
	var quote byte
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if quote != 0 {
			out.WriteByte(ch)
			if ch == '\\' && i+1 < len(src) {
				i++
				out.WriteByte(src[i])
			} else if ch == quote {
				quote = 0
			}
			continue
		}
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
			out.WriteByte(ch)
		case ch == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out.WriteByte('\n')
			}
		case ch == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return out.String()
			}
			i += end + 3
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}
