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
	"reflect"
	"slices"
	"strings"

	"dirpx.dev/errresp/status"
)

// VariantDescriptor identifies one case of a closed error type.
type VariantDescriptor struct {
	// Name is the variant name used in diagnostics and overrides.
	Name string
	// Type is the exact dynamic type of the variant's error values.
	Type reflect.Type

	declared    status.Code
	hasDeclared bool
	override    status.Code
	hasOverride bool
}

// ExplicitStatus returns the status the variant carries, if any: the
// deployment override when present, otherwise the declared status.
func (v VariantDescriptor) ExplicitStatus() (status.Code, bool) {
	if v.hasOverride {
		return v.override, true
	}
	if v.hasDeclared {
		return v.declared, true
	}
	return 0, false
}

// Source names where the resolved status comes from:
// "override", "explicit" or "default".
func (v VariantDescriptor) Source() string {
	switch {
	case v.hasOverride:
		return "override"
	case v.hasDeclared:
		return "explicit"
	default:
		return "default"
	}
}

// Resolve returns the status of a variant: its explicit status verbatim, or
// status.Default when it has none.
func Resolve(v VariantDescriptor) status.Code {
	if c, ok := v.ExplicitStatus(); ok {
		return c
	}
	return status.Default
}

// Descriptor is the immutable, closed set of variants of one error type.
type Descriptor struct {
	name     string
	errType  reflect.Type
	variants []VariantDescriptor
	byType   map[reflect.Type]int
	byName   map[string]int
}

// New describes the sealed error type E.
//
// name is used in diagnostics; when empty the Go name of E is used. Every
// problem with the description is reported as a *DefinitionError and no
// descriptor is returned.
func New[E error](name string, opts ...Option) (*Descriptor, error) {
	et := reflect.TypeFor[E]()
	if name == "" {
		name = et.Name()
	}
	if et.Kind() != reflect.Interface {
		return nil, &DefinitionError{Type: name, Err: ErrNotSealed}
	}

	b := newBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if len(b.variants) == 0 {
		return nil, &DefinitionError{Type: name, Err: ErrNoVariants}
	}

	d := &Descriptor{
		name:     name,
		errType:  et,
		variants: make([]VariantDescriptor, 0, len(b.variants)),
		byType:   make(map[reflect.Type]int, len(b.variants)),
		byName:   make(map[string]int, len(b.variants)),
	}
	for _, r := range b.variants {
		v, err := buildVariant(et, r)
		if err != nil {
			return nil, &DefinitionError{Type: name, Variant: r.name, Err: err}
		}
		if _, dup := d.byType[v.Type]; dup {
			return nil, &DefinitionError{Type: name, Variant: v.Name, Err: fmt.Errorf("%w: type %s", ErrDuplicateVariant, v.Type)}
		}
		if _, dup := d.byName[v.Name]; dup {
			return nil, &DefinitionError{Type: name, Variant: v.Name, Err: fmt.Errorf("%w: name %q", ErrDuplicateVariant, v.Name)}
		}
		d.byType[v.Type] = len(d.variants)
		d.byName[v.Name] = len(d.variants)
		d.variants = append(d.variants, v)
	}

	// Sorted so that the reported error does not depend on map order.
	keys := make([]string, 0, len(b.overrides))
	for k := range b.overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		i, ok := d.byName[k]
		if !ok {
			return nil, &DefinitionError{Type: name, Variant: k, Err: ErrUnknownOverride}
		}
		c := b.overrides[k]
		if err := status.Validate(c); err != nil {
			return nil, &DefinitionError{Type: name, Variant: k, Err: fmt.Errorf("override %d: %w", c, err)}
		}
		d.variants[i].override, d.variants[i].hasOverride = c, true
	}

	return d, nil
}

// MustNew is the panic-on-error variant of New, for package-level
// descriptors.
func MustNew[E error](name string, opts ...Option) *Descriptor {
	d, err := New[E](name, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func buildVariant(et reflect.Type, r variantRule) (VariantDescriptor, error) {
	v := VariantDescriptor{Name: r.name, Type: r.typ}
	if r.name == "" {
		return v, ErrEmptyName
	}
	if r.typ.Kind() == reflect.Interface {
		return v, fmt.Errorf("%w: %s", ErrInterfaceVariant, r.typ)
	}
	if !r.typ.Implements(et) {
		return v, fmt.Errorf("%w: %s does not implement %s", ErrNotImplemented, r.typ, et)
	}
	if r.statusErr != nil {
		return v, r.statusErr
	}
	for _, c := range r.statuses {
		if err := status.Validate(c); err != nil {
			return v, fmt.Errorf("status %d: %w", c, err)
		}
		if v.hasDeclared && v.declared != c {
			return v, fmt.Errorf("%w: %d and %d", ErrConflictingStatus, v.declared, c)
		}
		v.declared, v.hasDeclared = c, true
	}
	return v, nil
}

// Name returns the diagnostic name of the described error type.
func (d *Descriptor) Name() string { return d.name }

// ErrorType returns the sealed interface type the descriptor was built for.
func (d *Descriptor) ErrorType() reflect.Type { return d.errType }

// Len returns the number of variants.
func (d *Descriptor) Len() int { return len(d.variants) }

// Variants returns a copy of the variants in registration order.
func (d *Descriptor) Variants() []VariantDescriptor {
	return slices.Clone(d.variants)
}

// Lookup finds a variant by name.
func (d *Descriptor) Lookup(name string) (VariantDescriptor, bool) {
	i, ok := d.byName[name]
	if !ok {
		return VariantDescriptor{}, false
	}
	return d.variants[i], true
}

// Discriminate returns the variant err is an instance of. The match is on
// the exact dynamic type; wrapped errors are not unwrapped. A pointer to a
// value variant T (which satisfies the error type through T's method set)
// resolves to T unless *T is registered itself.
func (d *Descriptor) Discriminate(err error) (VariantDescriptor, error) {
	if err == nil {
		return VariantDescriptor{}, fmt.Errorf("%w: nil %s", ErrUnknownVariant, d.name)
	}
	t := reflect.TypeOf(err)
	i, ok := d.byType[t]
	if !ok && t.Kind() == reflect.Pointer {
		i, ok = d.byType[t.Elem()]
	}
	if !ok {
		return VariantDescriptor{}, fmt.Errorf("%w: %s has no variant of type %s", ErrUnknownVariant, d.name, t)
	}
	return d.variants[i], nil
}

// Covers checks that samples exercise every variant exactly as registered:
// each sample must discriminate, and each variant needs at least one sample.
// Use it in tests to keep a descriptor in step with its error type.
func (d *Descriptor) Covers(samples ...error) error {
	seen := make([]bool, len(d.variants))
	for _, s := range samples {
		v, err := d.Discriminate(s)
		if err != nil {
			return err
		}
		seen[d.byName[v.Name]] = true
	}
	var missing []string
	for i, ok := range seen {
		if !ok {
			missing = append(missing, d.variants[i].Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s.{%s}", ErrUncovered, d.name, strings.Join(missing, ","))
	}
	return nil
}

// Explain describes how the status of the named variant is resolved.
//
// Example output:
//
//	error_type="CreateUserError" variant="InvalidBody"
//	status: source=explicit -> 422 Unprocessable Entity
//	visibility: client_visible=true
//
// It is meant for inspection and logs, not for machine parsing.
func (d *Descriptor) Explain(name string) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "error_type=%q variant=%q\n", d.name, name)

	v, ok := d.Lookup(name)
	if !ok {
		b.WriteString("status: source=unknown")
		return b.String()
	}
	c := Resolve(v)
	_, _ = fmt.Fprintf(&b, "status: source=%s -> %s\n", v.Source(), c)
	if v.hasOverride && v.hasDeclared {
		_, _ = fmt.Fprintf(&b, "status: shadowed explicit -> %s\n", v.declared)
	}
	_, _ = fmt.Fprintf(&b, "visibility: client_visible=%t", status.ClientVisible(c))
	return b.String()
}
