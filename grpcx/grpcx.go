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

// Package grpcx maps composed error outcomes onto gRPC statuses.
//
// Client faults keep their message and carry a google.rpc.ErrorInfo detail
// naming the variant. Server faults carry the placeholder only: neither the
// message nor the variant leaves the process.
package grpcx

import (
	"context"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/errresp/adapter"
	"dirpx.dev/errresp/apis"
)

// Status converts an outcome into a gRPC status. domain fills
// ErrorInfo.Domain, typically the service name ("users.example.com").
func Status(o apis.Outcome, domain string) *gstatus.Status {
	base := gstatus.New(CodeOf(o.Status), o.Body)

	info := adapter.ToErrorInfo(o, domain)
	if info == nil {
		return base
	}
	// Try to attach the detail. If it fails, return base.
	if with, err := base.WithDetails(info); err == nil {
		return with
	}
	return base
}

// compose converts err when c handles it. Other errors, and errors that
// already are gRPC statuses, are returned unchanged.
func compose(ctx context.Context, c apis.ErrorComposer, domain string, err error) error {
	if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
		return err
	}
	o, ok := c.ComposeError(ctx, err)
	if !ok {
		// Not ours, return as-is.
		return err
	}
	return Status(o, domain).Err()
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that converts
// errors handled by c into gRPC statuses.
func UnaryServerInterceptor(c apis.ErrorComposer, domain string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, compose(ctx, c, domain, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(c apis.ErrorComposer, domain string) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return compose(ss.Context(), c, domain, err)
	}
}

// ExtractErrorInfo pulls the ErrorInfo detail out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}
