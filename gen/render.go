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

package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ErrStale is returned by Check when the file on disk differs from what
// Render produces.
var ErrStale = errors.New("errresp-gen: generated file is stale")

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by errresp-gen. DO NOT EDIT.

package {{.Package}}

import "dirpx.dev/errresp/descriptor"

// {{.Type}}Descriptor describes every variant of {{.Type}}.
var {{.Type}}Descriptor = descriptor.MustNew[{{.Type}}]("{{.Type}}",
{{- range .Variants}}
	descriptor.Variant[{{.TypeExpr}}]({{if .HasStatus}}descriptor.WithStatus({{.Status.Int}}){{end}}),{{if .HasStatus}} // {{.Status.Text}}{{end}}
{{- end}}
)
`))

// Render produces the gofmt'ed source registering every variant of s.
func Render(s *Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("render %s: %w", s.Type, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", s.Type, err)
	}
	return src, nil
}

// OutputName is the default file name for the type: "createusererror_errresp.go".
func OutputName(typeName string) string {
	return strings.ToLower(typeName) + "_errresp.go"
}

// Generate parses dir, renders typeName and writes the result to output.
// A relative output is resolved against dir; an empty one uses OutputName.
// It returns the path written.
func Generate(dir, typeName, output string) (string, error) {
	src, path, err := build(dir, typeName, output)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Check is Generate without writing: it fails with ErrStale when the file at
// output does not match the rendered source.
func Check(dir, typeName, output string) (string, error) {
	src, path, err := build(dir, typeName, output)
	if err != nil {
		return "", err
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("%w: %s does not exist", ErrStale, path)
		}
		return path, fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.Equal(existing, src) {
		return path, fmt.Errorf("%w: %s", ErrStale, path)
	}
	return path, nil
}

func build(dir, typeName, output string) ([]byte, string, error) {
	spec, err := Parse(dir, typeName)
	if err != nil {
		return nil, "", err
	}
	src, err := Render(spec)
	if err != nil {
		return nil, "", err
	}
	if output == "" {
		output = OutputName(spec.Type)
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}
	return src, output, nil
}
