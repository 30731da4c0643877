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
	"errors"
	"fmt"
)

var (
	// ErrNoVariants is returned when an error type is described without variants.
	ErrNoVariants = errors.New("errresp: error type has no variants")
	// ErrNotSealed is returned when the described error type is not an interface.
	ErrNotSealed = errors.New("errresp: error type must be an interface")
	// ErrInterfaceVariant is returned when a variant is itself an interface type.
	ErrInterfaceVariant = errors.New("errresp: variant must be a concrete type")
	// ErrNotImplemented is returned when a variant does not implement the error type.
	ErrNotImplemented = errors.New("errresp: variant does not implement the error type")
	// ErrEmptyName is returned when a variant is registered with an empty name.
	ErrEmptyName = errors.New("errresp: empty variant name")
	// ErrDuplicateVariant is returned when a type or a name is registered twice.
	ErrDuplicateVariant = errors.New("errresp: duplicate variant")
	// ErrConflictingStatus is returned when one variant declares two different statuses.
	ErrConflictingStatus = errors.New("errresp: conflicting status declarations")
	// ErrUnknownOverride is returned when an override names a variant that does not exist.
	ErrUnknownOverride = errors.New("errresp: override for unknown variant")
	// ErrUnknownVariant is returned when an error value matches no registered variant.
	ErrUnknownVariant = errors.New("errresp: unknown variant")
	// ErrUncovered is returned by Covers when a variant has no sample.
	ErrUncovered = errors.New("errresp: variant not covered")
	// ErrUnsupportedFormat is returned for override files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("errresp: unsupported overrides format")
)

// DefinitionError reports a malformed error type description. It always
// wraps one of the package sentinels (or status.ErrStatusInvalid).
type DefinitionError struct {
	// Type is the name of the described error type.
	Type string
	// Variant is the offending variant; empty for type-level problems.
	Variant string
	Err     error
}

func (e *DefinitionError) Error() string {
	if e.Variant == "" {
		return fmt.Sprintf("describe %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("describe %s.%s: %v", e.Type, e.Variant, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }
