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

package diag

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"dirpx.dev/errresp/chain"
)

// HCLog writes each record as one error-level log line.
//
// The line mirrors what an operator needs for triage:
//
//	[ERROR] errresp: internal server error: error_message="failed to insert user into the database"
//	  error_type=CreateUserError variant=InsertUserToDB status=500
//	  caused_by=["connection refused"] caused_by_kinds=["*net.OpError"]
//	  error_details="failed to insert user ...\n\nCaused by:\n\tconnection refused"
type HCLog struct {
	logger hclog.Logger
	fields func(context.Context) []any
}

// HCLogOption configures an HCLog emitter.
type HCLogOption func(*HCLog)

// WithFields adds key/value pairs derived from the request context (request
// ids, tenant, ...) to every line.
func WithFields(fn func(context.Context) []any) HCLogOption {
	return func(h *HCLog) { h.fields = fn }
}

// NewHCLog returns an emitter writing to logger. A nil logger discards.
func NewHCLog(logger hclog.Logger, opts ...HCLogOption) *HCLog {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	h := &HCLog{logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Emit implements Emitter.
func (h *HCLog) Emit(ctx context.Context, r Record) error {
	args := []any{
		"error_message", r.Message,
		"error_type", r.ErrorType,
		"variant", r.Variant,
		"status", r.Status.Int(),
		"caused_by", causeMessages(r.Chain),
		"caused_by_kinds", causeKinds(r.Chain),
	}
	if r.Err != nil {
		args = append(args, "error_details", chain.Format(r.Err))
	}
	if h.fields != nil {
		args = append(args, h.fields(ctx)...)
	}
	h.logger.Error("internal server error", args...)
	return nil
}
