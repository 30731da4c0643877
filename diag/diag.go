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

// Package diag records server-fault errors for operators.
//
// A Record carries everything a client must never see: the original message,
// the ordered causal chain and the variant identity. Emitters deliver records
// to a sink (hclog, an OpenTelemetry span, a metric). Sinks are responsible
// for their own concurrency safety.
//
// Emission is best effort. Safe converts emitter panics into errors and the
// composer discards those errors, so a broken sink can only degrade
// observability, never the response.
package diag

import (
	"context"
	"errors"
	"fmt"

	"dirpx.dev/errresp/chain"
	"dirpx.dev/errresp/status"
)

// Record is the diagnostic view of one server-fault occurrence.
type Record struct {
	// ErrorType is the diagnostic name of the described error type.
	ErrorType string
	// Variant is the variant the error was an instance of.
	Variant string
	// Status is the resolved HTTP status (always >= 500 for composed records).
	Status status.Code
	// Message is the error's own text, possibly empty.
	Message string
	// Chain lists the causes from the immediate cause to the root.
	Chain []chain.Link
	// Err is the error value itself, for sinks that want to keep it.
	Err error
}

// Emitter delivers records to a diagnostic sink.
type Emitter interface {
	Emit(ctx context.Context, r Record) error
}

// Func adapts a function to Emitter.
type Func func(ctx context.Context, r Record) error

// Emit calls f(ctx, r).
func (f Func) Emit(ctx context.Context, r Record) error { return f(ctx, r) }

// Nop discards every record.
var Nop Emitter = Func(func(context.Context, Record) error { return nil })

// Multi fans a record out to every emitter, in order. Every emitter is
// called even when an earlier one fails; failures are joined.
type Multi []Emitter

// Emit implements Emitter.
func (m Multi) Emit(ctx context.Context, r Record) error {
	var errs []error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := Safe(ctx, e, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ErrEmitterPanic marks an emitter that panicked.
var ErrEmitterPanic = errors.New("errresp: diagnostic emitter panicked")

// Safe calls e.Emit and converts a panic into an error wrapping
// ErrEmitterPanic. A nil emitter is a no-op.
func Safe(ctx context.Context, e Emitter, r Record) (err error) {
	if e == nil {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrEmitterPanic, p)
		}
	}()
	return e.Emit(ctx, r)
}

// causeMessages flattens the chain to its messages.
func causeMessages(links []chain.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Message
	}
	return out
}

// causeKinds flattens the chain to its kinds.
func causeKinds(links []chain.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Kind
	}
	return out
}
