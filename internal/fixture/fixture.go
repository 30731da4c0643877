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

// Package fixture holds a small described error type and a recording
// emitter shared by the tests of the composer and the transport adapters.
package fixture

import (
	"context"
	"net/http"
	"sync"

	"dirpx.dev/errresp/descriptor"
	"dirpx.dev/errresp/diag"
)

// CreateUserError is the sealed error type of a "create user" endpoint.
type CreateUserError interface {
	error
	createUserError()
}

// InsertUserToDB is a server fault wrapping the storage error.
type InsertUserToDB struct{ Err error }

func (*InsertUserToDB) Error() string    { return "failed to insert user into the database" }
func (e *InsertUserToDB) Unwrap() error  { return e.Err }
func (*InsertUserToDB) createUserError() {}

// InvalidBody is a client fault.
type InvalidBody struct{ Reason string }

func (e InvalidBody) Error() string  { return "body is invalid: " + e.Reason }
func (InvalidBody) createUserError() {}

// UserNotFound is a client fault without causes.
type UserNotFound struct{ ID string }

func (e UserNotFound) Error() string  { return "user " + e.ID + " not found" }
func (UserNotFound) createUserError() {}

// Unregistered implements CreateUserError but is left out of Descriptor.
type Unregistered struct{}

func (Unregistered) Error() string    { return "stale variant with secret details" }
func (Unregistered) createUserError() {}

// Silent has an empty message. It is left out of Descriptor.
type Silent struct{}

func (Silent) Error() string    { return "" }
func (Silent) createUserError() {}

// Descriptor describes CreateUserError: InsertUserToDB has no status,
// InvalidBody is 422 and UserNotFound is 404.
func Descriptor(opts ...descriptor.Option) *descriptor.Descriptor {
	base := []descriptor.Option{
		descriptor.Variant[*InsertUserToDB](),
		descriptor.Variant[InvalidBody](descriptor.WithStatus(http.StatusUnprocessableEntity)),
		descriptor.Variant[UserNotFound](descriptor.WithStatusText("NOT_FOUND")),
	}
	return descriptor.MustNew[CreateUserError]("CreateUserError", append(base, opts...)...)
}

// Recorder is a diag.Emitter that keeps every record.
type Recorder struct {
	mu      sync.Mutex
	records []diag.Record
	// Err is returned from every Emit call.
	Err error
}

// Emit implements diag.Emitter.
func (r *Recorder) Emit(_ context.Context, rec diag.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return r.Err
}

// Records returns a copy of the recorded records.
func (r *Recorder) Records() []diag.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]diag.Record(nil), r.records...)
}

// Len returns the number of recorded records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
