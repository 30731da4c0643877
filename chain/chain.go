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

// Package chain walks the causal chain of an error from its immediate cause
// to its root cause.
//
// The walk is lazy, read-only and always terminates: it stops after MaxDepth
// links and never revisits an error it has already produced.
package chain

import (
	"fmt"
	"iter"
	"reflect"
	"strings"
)

// MaxDepth bounds the number of causes produced for a single error.
const MaxDepth = 32

// Link is one element of a causal chain as reported to operators.
type Link struct {
	// Kind is the dynamic Go type of the cause, e.g. "*pgconn.PgError".
	Kind string `json:"kind"`
	// Message is the cause's own text.
	Message string `json:"message"`
}

type singleUnwrapper interface{ Unwrap() error }
type multiUnwrapper interface{ Unwrap() []error }

// Causes yields the causes of err in "caused by" order: the immediate cause
// first, the root last. Errors joined with errors.Join are visited depth
// first, in the order they were joined. err itself is not yielded.
func Causes(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		if isNil(err) {
			return
		}
		g := newGuard()
		g.mark(err)

		// stack holds the errors still to be visited; the top is the next one.
		stack := reversed(children(err))
		for n := 0; len(stack) > 0 && n < MaxDepth; {
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if isNil(e) || !g.mark(e) {
				continue
			}
			n++
			if !yield(e) {
				return
			}
			stack = append(stack, reversed(children(e))...)
		}
	}
}

// Walk collects the causes of err into Links. It returns an empty, non-nil
// slice when err has no causes.
func Walk(err error) []Link {
	out := make([]Link, 0, 4)
	for c := range Causes(err) {
		out = append(out, Link{Kind: Kind(c), Message: Message(c)})
	}
	return out
}

// Format renders err and its causes as a multi-line trace:
//
//	failed to insert user into the database
//
//	Caused by:
//		connection refused
func Format(err error) string {
	if err == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(Message(err))
	first := true
	for c := range Causes(err) {
		if first {
			b.WriteString("\n\nCaused by:")
			first = false
		}
		b.WriteString("\n\t")
		b.WriteString(Message(c))
	}
	return b.String()
}

// Message returns err.Error(). A panicking Error method is reported as a
// placeholder instead of propagating.
func Message(err error) (msg string) {
	if err == nil {
		return "<nil>"
	}
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("<%T: Error() panicked: %v>", err, r)
		}
	}()
	return err.Error()
}

// Kind returns the dynamic type name of err.
func Kind(err error) string {
	return fmt.Sprintf("%T", err)
}

// children returns the direct causes of err. A panicking Unwrap method is
// treated as having no causes.
func children(err error) (out []error) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	switch u := err.(type) {
	case multiUnwrapper:
		return u.Unwrap()
	case singleUnwrapper:
		if c := u.Unwrap(); c != nil {
			return []error{c}
		}
	}
	return nil
}

// isNil reports whether err is nil or a nil pointer wrapped in a non-nil
// interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func reversed(errs []error) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[len(errs)-1-i] = e
	}
	return out
}

// guard remembers visited errors by value. Errors that cannot be used as map
// keys are only bounded by MaxDepth.
type guard struct {
	seen map[error]struct{}
}

func newGuard() *guard {
	return &guard{seen: map[error]struct{}{}}
}

// mark reports whether err was newly marked.
func (g *guard) mark(err error) (fresh bool) {
	if !reflect.TypeOf(err).Comparable() {
		return true
	}
	// A comparable struct may still hold a non-comparable value in an
	// interface field; hashing it panics.
	defer func() {
		if recover() != nil {
			fresh = true
		}
	}()
	if _, ok := g.seen[err]; ok {
		return false
	}
	g.seen[err] = struct{}{}
	return true
}
