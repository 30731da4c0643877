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

// Package errresp composes HTTP error responses from described error types.
//
// An error type is a sealed interface whose variants are registered in a
// descriptor.Descriptor together with their statuses. A Composer turns one
// error value into an apis.Outcome:
//
//   - the status is the variant's explicit status, or 500;
//   - below 500 the body is the error's own message;
//   - from 500 on the body is a fixed placeholder, and the message with its
//     causal chain goes to the diagnostic emitter instead.
//
// Usage:
//
//	var createUser = errresp.MustNew[CreateUserError](CreateUserErrorDescriptor,
//	    errresp.WithLogger(logger),
//	)
//
//	out := createUser.Compose(ctx, &InsertUserToDB{Err: err})
//	// out.Status == 500, out.Body == "Internal server error"
package errresp

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/errresp/apis"
	"dirpx.dev/errresp/chain"
	"dirpx.dev/errresp/descriptor"
	"dirpx.dev/errresp/diag"
	"dirpx.dev/errresp/status"
)

// Placeholder is the default body of every server-fault response.
const Placeholder = "Internal server error"

var (
	// ErrDescriptorMismatch is returned by New when the descriptor was built
	// for a different error type than the composer's.
	ErrDescriptorMismatch = errors.New("errresp: descriptor describes another error type")

	// ErrNilDescriptor is returned by New when no descriptor is given.
	ErrNilDescriptor = errors.New("errresp: nil descriptor")

	// ErrEmptyPlaceholder is returned by New when WithPlaceholder is given
	// an empty string.
	ErrEmptyPlaceholder = errors.New("errresp: empty placeholder")
)

// Composer composes responses for the sealed error type E.
//
// It is immutable once built and safe for concurrent use; the emitter must be
// safe for concurrent use on its own.
type Composer[E error] struct {
	desc        *descriptor.Descriptor
	emitter     diag.Emitter
	placeholder string
}

var _ apis.ErrorComposer = (*Composer[error])(nil)

// New returns a composer for E described by d.
func New[E error](d *descriptor.Descriptor, opts ...Option) (*Composer[E], error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	if et := reflect.TypeFor[E](); d.ErrorType() != et {
		return nil, fmt.Errorf("%w: %s is for %s, not %s", ErrDescriptorMismatch, d.Name(), d.ErrorType(), et)
	}

	cfg := newConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.placeholder == "" {
		return nil, ErrEmptyPlaceholder
	}

	return &Composer[E]{
		desc:        d,
		emitter:     cfg.emitter(),
		placeholder: cfg.placeholder,
	}, nil
}

// MustNew is the panic-on-error variant of New.
func MustNew[E error](d *descriptor.Descriptor, opts ...Option) *Composer[E] {
	c, err := New[E](d, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Descriptor returns the descriptor the composer resolves statuses with.
func (c *Composer[E]) Descriptor() *descriptor.Descriptor { return c.desc }

// Status returns the HTTP status of e: the explicit status of its variant,
// or 500 when the variant has none or is not registered.
func (c *Composer[E]) Status(e E) status.Code {
	v, err := c.desc.Discriminate(e)
	if err != nil {
		return status.Default
	}
	return descriptor.Resolve(v)
}

// Compose turns e into a response outcome.
//
// When the status is a server fault the diagnostic record is emitted exactly
// once before Compose returns. Emission failures are swallowed; they never
// change the outcome.
func (c *Composer[E]) Compose(ctx context.Context, e E) apis.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	o := apis.Outcome{ErrorType: c.desc.Name(), Status: status.Default}
	v, unknown := c.desc.Discriminate(e)
	if unknown == nil {
		o.Variant = v.Name
		o.Status = descriptor.Resolve(v)
	}

	msg := chain.Message(e)
	o.Visible = unknown == nil && status.ClientVisible(o.Status)
	if o.Visible {
		o.Body = msg
		return o
	}

	o.Body = c.placeholder
	rec := diag.Record{
		ErrorType: o.ErrorType,
		Variant:   o.Variant,
		Status:    o.Status,
		Message:   msg,
		Chain:     chain.Walk(e),
		Err:       e,
	}
	if unknown != nil {
		rec.Err = errors.Join(e, unknown)
	}
	_ = diag.Safe(ctx, c.emitter, rec)
	o.Logged = true
	return o
}

// ComposeError composes the first E found in err's chain. It reports false,
// and emits nothing, when err holds no E.
func (c *Composer[E]) ComposeError(ctx context.Context, err error) (apis.Outcome, bool) {
	var e E
	if !errors.As(err, &e) {
		return apis.Outcome{}, false
	}
	return c.Compose(ctx, e), true
}
