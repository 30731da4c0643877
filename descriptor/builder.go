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
	"reflect"

	"dirpx.dev/errresp/status"
)

type variantRule struct {
	// typ is the concrete Go type of the variant (pointer or value).
	typ reflect.Type
	// name defaults to the type name without package and pointer.
	name string
	// statuses holds every status declared for the variant. More than one
	// distinct value is a definition error.
	statuses []status.Code
	// statusErr records a declaration that could not be parsed.
	statusErr error
}

type builder struct {
	// variants keeps registration order; it is the order of Variants().
	variants []variantRule
	// overrides are deployment-level statuses keyed by variant name.
	overrides map[string]status.Code
}

func newBuilder() *builder {
	return &builder{overrides: make(map[string]status.Code)}
}

// typeName returns the bare name of t, looking through pointers.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
