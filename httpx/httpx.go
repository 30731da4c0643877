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

// Package httpx writes composed error outcomes as HTTP responses.
//
// Responses use the JSON envelope from apis.ErrorView and are written with
// go-chi/render, so they compose with chi routers and render middleware.
package httpx

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/hashicorp/go-hclog"

	"dirpx.dev/errresp/adapter"
	"dirpx.dev/errresp/apis"
	"dirpx.dev/errresp/chain"
)

// DefaultPlaceholder is the body written for errors no composer handles.
const DefaultPlaceholder = "Internal server error"

// Writer is a thin adapter that turns errors into HTTP responses using the
// provided composer.
type Writer struct {
	// Composer resolves errors into outcomes. It is required.
	Composer apis.ErrorComposer

	// Logger receives errors that Composer does not handle. Optional.
	Logger hclog.Logger

	// Placeholder is the body of the generic 500 written by Handle for
	// errors Composer does not handle. Defaults to DefaultPlaceholder.
	Placeholder string
}

// Write composes err and writes the outcome. It reports false, and writes
// nothing, when err is not handled by the composer.
func (wr Writer) Write(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil || wr.Composer == nil {
		return false
	}
	o, ok := wr.Composer.ComposeError(r.Context(), err)
	if !ok {
		return false
	}
	WriteOutcome(w, r, o)
	return true
}

// WriteOutcome writes an already composed outcome.
func WriteOutcome(w http.ResponseWriter, r *http.Request, o apis.Outcome) {
	render.Status(r, o.Status.Int())
	render.JSON(w, r, adapter.ToView(o))
}

// HandlerFunc is an http.HandlerFunc that can fail.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to net/http. Errors the composer handles are written as
// their outcome. Any other error is logged and answered with a generic 500
// envelope that never carries its text.
func (wr Writer) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil || wr.Write(w, r, err) {
			return
		}
		if wr.Logger != nil {
			wr.Logger.Error("unhandled error",
				append([]any{"error", chain.Message(err), "error_type", chain.Kind(err)}, RequestIDFields(r.Context())...)...)
		}
		placeholder := wr.Placeholder
		if placeholder == "" {
			placeholder = DefaultPlaceholder
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, apis.ErrorView{Code: http.StatusInternalServerError, Error: placeholder})
	}
}

// RequestIDFields returns the chi request id of ctx as log fields, for use
// with diag.WithFields. It returns nil when the request has no id.
func RequestIDFields(ctx context.Context) []any {
	if id := middleware.GetReqID(ctx); id != "" {
		return []any{"request_id", id}
	}
	return nil
}
