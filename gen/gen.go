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

// Package gen derives descriptor registrations from Go source.
//
// The sealed interface is marked with a directive:
//
//	//errresp:derive
//	type CreateUserError interface {
//	    error
//	    createUserError()
//	}
//
// Every type of the package declaring the unexported marker method is a
// variant. A variant declares its status with a second directive:
//
//	//errresp:status UNPROCESSABLE_ENTITY
//	type InvalidBody struct{ ... }
//
// A variant with a value receiver is registered as T; values of *T also
// satisfy the interface and resolve to T's status at runtime.
//
// Render emits a file registering all variants, so adding a variant and
// regenerating keeps the descriptor exhaustive.
package gen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dirpx.dev/errresp/status"
)

const (
	deriveDirective = "//errresp:derive"
	statusDirective = "//errresp:status"
)

var (
	// ErrTypeNotFound is returned when the named type is not declared in the
	// package, or when no type carries the derive directive.
	ErrTypeNotFound = errors.New("errresp-gen: type not found")

	// ErrAmbiguousType is returned when no type is named and several carry
	// the derive directive.
	ErrAmbiguousType = errors.New("errresp-gen: several types carry //errresp:derive")

	// ErrNotSealed is returned when the type is not an interface embedding
	// error and declaring an unexported marker method.
	ErrNotSealed = errors.New("errresp-gen: type is not a sealed error interface")

	// ErrNoVariants is returned when no type declares the marker method.
	ErrNoVariants = errors.New("errresp-gen: no variants")

	// ErrDirective is returned for malformed or repeated status directives.
	ErrDirective = errors.New("errresp-gen: invalid directive")
)

// Spec is what Parse learns about one sealed error type.
type Spec struct {
	// Package is the Go package name.
	Package string
	// Type is the sealed interface name.
	Type string
	// Marker is the unexported marker method name.
	Marker string
	// Variants are listed in source order (files sorted by name).
	Variants []Variant
}

// Variant is one implementor of the marker method.
type Variant struct {
	Name string
	// Pointer is true when the marker method has a pointer receiver.
	Pointer bool
	// Status is the declared status, zero when none.
	Status status.Code
	// StatusText is the directive argument as written.
	StatusText string
}

// HasStatus reports whether the variant declares a status.
func (v Variant) HasStatus() bool { return v.Status != 0 }

// TypeExpr returns the variant type as written in Go: "*Name" or "Name".
func (v Variant) TypeExpr() string {
	if v.Pointer {
		return "*" + v.Name
	}
	return v.Name
}

type pkgFiles struct {
	name  string
	fset  *token.FileSet
	files []*ast.File
}

func parseDir(dir string) (*pkgFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	p := &pkgFiles{fset: token.NewFileSet()}
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, ".go") || strings.HasSuffix(n, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(p.fset, filepath.Join(dir, n), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", n, err)
		}
		if p.name == "" {
			p.name = f.Name.Name
		}
		if f.Name.Name != p.name {
			continue
		}
		p.files = append(p.files, f)
	}
	if len(p.files) == 0 {
		return nil, fmt.Errorf("%w: no Go files in %s", ErrTypeNotFound, dir)
	}
	return p, nil
}

// typeDecl pairs a type spec with the doc comments that apply to it.
type typeDecl struct {
	spec *ast.TypeSpec
	docs []*ast.CommentGroup
}

func (p *pkgFiles) types() map[string]typeDecl {
	out := map[string]typeDecl{}
	for _, f := range p.files {
		for _, d := range f.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, s := range gd.Specs {
				ts := s.(*ast.TypeSpec)
				td := typeDecl{spec: ts}
				if ts.Doc != nil {
					td.docs = append(td.docs, ts.Doc)
				}
				if gd.Doc != nil && len(gd.Specs) == 1 {
					td.docs = append(td.docs, gd.Doc)
				}
				out[ts.Name.Name] = td
			}
		}
	}
	return out
}

func directives(docs []*ast.CommentGroup, prefix string) []string {
	var out []string
	for _, g := range docs {
		for _, c := range g.List {
			if c.Text == prefix || strings.HasPrefix(c.Text, prefix+" ") {
				out = append(out, strings.TrimSpace(strings.TrimPrefix(c.Text, prefix)))
			}
		}
	}
	return out
}

// Parse reads the package in dir and describes typeName. An empty typeName
// selects the single type carrying the derive directive.
func Parse(dir, typeName string) (*Spec, error) {
	p, err := parseDir(dir)
	if err != nil {
		return nil, err
	}
	types := p.types()

	if typeName == "" {
		var found []string
		for n, td := range types {
			if len(directives(td.docs, deriveDirective)) > 0 {
				found = append(found, n)
			}
		}
		switch len(found) {
		case 0:
			return nil, fmt.Errorf("%w: no type carries %s", ErrTypeNotFound, deriveDirective)
		case 1:
			typeName = found[0]
		default:
			slices.Sort(found)
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousType, strings.Join(found, ", "))
		}
	}

	td, ok := types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, typeName, p.name)
	}
	marker, err := sealedMarker(td.spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", typeName, err)
	}

	spec := &Spec{Package: p.name, Type: typeName, Marker: marker}
	for _, f := range p.files {
		for _, d := range f.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || fd.Name.Name != marker || len(fd.Recv.List) != 1 {
				continue
			}
			name, ptr, ok := receiver(fd.Recv.List[0].Type)
			if !ok {
				continue
			}
			v := Variant{Name: name, Pointer: ptr}
			if vd, ok := types[name]; ok {
				if err := applyStatus(&v, vd.docs); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", typeName, name, err)
				}
			}
			spec.Variants = append(spec.Variants, v)
		}
	}
	if len(spec.Variants) == 0 {
		return nil, fmt.Errorf("%w: no type in %s declares %s()", ErrNoVariants, p.name, marker)
	}
	return spec, nil
}

func sealedMarker(ts *ast.TypeSpec) (string, error) {
	it, ok := ts.Type.(*ast.InterfaceType)
	if !ok {
		return "", fmt.Errorf("%w: not an interface", ErrNotSealed)
	}
	var embedsError bool
	var marker string
	for _, m := range it.Methods.List {
		if len(m.Names) == 0 {
			if id, ok := m.Type.(*ast.Ident); ok && id.Name == "error" {
				embedsError = true
			}
			continue
		}
		ft, ok := m.Type.(*ast.FuncType)
		if !ok || marker != "" {
			continue
		}
		n := m.Names[0]
		if !n.IsExported() && ft.Params.NumFields() == 0 && ft.Results.NumFields() == 0 {
			marker = n.Name
		}
	}
	if !embedsError {
		return "", fmt.Errorf("%w: does not embed error", ErrNotSealed)
	}
	if marker == "" {
		return "", fmt.Errorf("%w: no unexported marker method", ErrNotSealed)
	}
	return marker, nil
}

func receiver(expr ast.Expr) (name string, ptr bool, ok bool) {
	if se, isPtr := expr.(*ast.StarExpr); isPtr {
		expr, ptr = se.X, true
	}
	id, isIdent := expr.(*ast.Ident)
	if !isIdent {
		// Generic receivers cannot be registered without instantiation.
		return "", false, false
	}
	return id.Name, ptr, true
}

func applyStatus(v *Variant, docs []*ast.CommentGroup) error {
	ds := directives(docs, statusDirective)
	switch len(ds) {
	case 0:
		return nil
	case 1:
	default:
		return fmt.Errorf("%w: %s given %d times", ErrDirective, statusDirective, len(ds))
	}
	if ds[0] == "" {
		return fmt.Errorf("%w: %s needs a value", ErrDirective, statusDirective)
	}
	c, err := status.Parse(ds[0])
	if err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrDirective, statusDirective, ds[0], err)
	}
	v.Status, v.StatusText = c, ds[0]
	return nil
}
