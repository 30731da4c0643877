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

// Package descriptor builds immutable descriptions of closed error types:
// the set of variants an application error can take and the HTTP status each
// variant resolves to.
//
// # Overview
//
// A closed error type is a sealed interface: it embeds error and declares an
// unexported marker method, so only types of its own package can implement
// it. Every implementing type is one variant:
//
//	type CreateUserError interface {
//	    error
//	    createUserError()
//	}
//
//	type InsertUserToDB struct{ Err error }  // no status: 500
//	type InvalidBody struct{ Reason string } // declared: 422
//
// A Descriptor is built once, at definition time:
//
//	d, err := descriptor.New[CreateUserError]("CreateUserError",
//	    descriptor.Variant[*InsertUserToDB](),
//	    descriptor.Variant[InvalidBody](descriptor.WithStatus(http.StatusUnprocessableEntity)),
//	)
//
// New fails with a *DefinitionError when the description is malformed:
// invalid or conflicting statuses, duplicate variants, types that do not
// implement the error type. No partial descriptor is ever returned.
//
// # Resolution model
//
// Resolve returns, in order:
//
//  1. the deployment override for the variant (WithOverrides, LoadOverrides);
//  2. the status the variant declared (WithStatus, WithStatusText);
//  3. status.Default (500).
//
// # Exhaustiveness
//
// Discriminate maps an error value to its variant by exact dynamic type.
// Go cannot prove at compile time that every implementation of a sealed
// interface was registered, so the check moves into tests (Covers) and into
// the errresp-gen generator, which enumerates the implementations itself.
//
// # Immutability
//
// All inputs are copied during New. A Descriptor is safe to share across
// goroutines.
package descriptor
