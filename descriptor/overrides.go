/*
   Copyright 2025 The DIRPX Authors

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

package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"dirpx.dev/errresp/status"
)

// overridesFile is the on-disk shape of a status overlay:
//
//	statuses:
//	  InvalidBody: UNPROCESSABLE_ENTITY
//	  NotFound: 404
type overridesFile struct {
	Statuses map[string]status.Code `yaml:"statuses" toml:"statuses"`
}

// LoadOverrides reads a status overlay from a YAML (.yaml, .yml) or TOML
// (.toml) file. Values accept every form status.Parse accepts.
func LoadOverrides(path string) (map[string]status.Code, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	return ParseOverrides(data, filepath.Ext(path))
}

// ParseOverrides decodes a status overlay. format is a file extension or a
// bare format name: "yaml", "yml" or "toml".
func ParseOverrides(data []byte, format string) (map[string]status.Code, error) {
	var f overridesFile
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode yaml overrides: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("decode toml overrides: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if f.Statuses == nil {
		f.Statuses = map[string]status.Code{}
	}
	return f.Statuses, nil
}
