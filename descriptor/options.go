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

	"dirpx.dev/errresp/status"
)

// Option configures a Descriptor at definition time.
type Option func(*builder)

// VariantOption configures one variant registered with Variant.
type VariantOption func(*variantRule)

// Variant registers V as a variant of the described error type. V is the
// exact dynamic type error values will have, so pointer and value receivers
// matter: register *T when the marker method has a pointer receiver.
func Variant[V error](opts ...VariantOption) Option {
	return func(b *builder) {
		r := variantRule{typ: reflect.TypeFor[V]()}
		r.name = typeName(r.typ)
		for _, opt := range opts {
			if opt != nil {
				opt(&r)
			}
		}
		b.variants = append(b.variants, r)
	}
}

// WithStatus declares the status of a variant, overriding the default 500.
func WithStatus(c status.Code) VariantOption {
	return func(r *variantRule) { r.statuses = append(r.statuses, c) }
}

// WithStatusText declares the status of a variant from authored text, in
// any form status.Parse accepts.
func WithStatusText(s string) VariantOption {
	return func(r *variantRule) {
		c, err := status.Parse(s)
		if err != nil {
			r.statusErr = fmt.Errorf("status %q: %w", s, err)
			return
		}
		r.statuses = append(r.statuses, c)
	}
}

// Named replaces the variant name derived from its Go type.
func Named(name string) VariantOption {
	return func(r *variantRule) { r.name = name }
}

// WithOverrides applies deployment-level statuses keyed by variant name.
// They win over declared statuses. Later calls replace earlier entries.
func WithOverrides(m map[string]status.Code) Option {
	return func(b *builder) {
		for k, v := range m {
			b.overrides[k] = v
		}
	}
}
