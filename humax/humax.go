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

// Package humax plugs composed error outcomes into huma APIs.
//
// huma builds every error response through huma.NewErrorWithContext.
// ErrorHandler wraps that hook: errors the composer handles become outcome
// responses, everything else (huma's own validation errors included) goes
// through the previous hook unchanged.
package humax

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"dirpx.dev/errresp/apis"
)

// NewErrorFunc has the signature of huma.NewErrorWithContext.
type NewErrorFunc func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError

// StatusError converts an outcome into a huma error. Detail is the outcome
// body; no error is attached, so huma never serializes the original text.
func StatusError(o apis.Outcome) huma.StatusError {
	return huma.NewError(o.Status.Int(), o.Body)
}

// ErrorHandler returns a huma error hook that composes the first handled
// error among errs and falls back to next otherwise. A nil next uses
// huma.NewError.
func ErrorHandler(c apis.ErrorComposer, next NewErrorFunc) NewErrorFunc {
	if next == nil {
		next = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
			return huma.NewError(status, msg, errs...)
		}
	}
	return func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
		ctx := context.Background()
		if hctx != nil {
			ctx = hctx.Context()
		}
		for _, err := range errs {
			if err == nil {
				continue
			}
			if o, ok := c.ComposeError(ctx, err); ok {
				return StatusError(o)
			}
		}
		return next(hctx, status, msg, errs...)
	}
}

// Install sets huma.NewErrorWithContext to an ErrorHandler chained to the
// current hook and returns a function restoring the previous one.
//
// The hook is process global: call Install once during server setup.
func Install(c apis.ErrorComposer) (restore func()) {
	prev := huma.NewErrorWithContext
	huma.NewErrorWithContext = ErrorHandler(c, prev)
	return func() { huma.NewErrorWithContext = prev }
}
