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
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "dirpx.dev/errresp/diag"

func recordAttributes(r Record) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("errresp.error_type", r.ErrorType),
		attribute.String("errresp.variant", r.Variant),
		attribute.Int("http.response.status_code", r.Status.Int()),
	}
}

// Span records each record on the span found in the context. Records
// emitted without a recording span are dropped.
type Span struct{}

// Emit implements Emitter.
func (Span) Emit(ctx context.Context, r Record) error {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}
	attrs := append(recordAttributes(r),
		attribute.String("errresp.error_message", r.Message),
		attribute.StringSlice("errresp.caused_by", causeMessages(r.Chain)),
	)
	err := r.Err
	if err == nil {
		err = errors.New(r.Message)
	}
	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, "internal server error")
	return nil
}

// Counter counts server faults per error type, variant and status.
type Counter struct {
	faults metric.Int64Counter
}

// NewCounter creates the "errresp.server_faults" counter on mp. A nil
// provider uses the global one.
func NewCounter(mp metric.MeterProvider) (*Counter, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	c, err := mp.Meter(instrumentationName).Int64Counter(
		"errresp.server_faults",
		metric.WithDescription("Server-fault errors composed into responses."),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create server fault counter: %w", err)
	}
	return &Counter{faults: c}, nil
}

// Emit implements Emitter.
func (c *Counter) Emit(ctx context.Context, r Record) error {
	c.faults.Add(ctx, 1, metric.WithAttributes(recordAttributes(r)...))
	return nil
}
