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

package grpcx

import (
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/errresp/status"
)

// byHTTP maps HTTP statuses to the closest gRPC code. Statuses that are not
// listed fall back per class, see CodeOf.
var byHTTP = map[status.Code]codes.Code{
	// 4xx
	http.StatusBadRequest:                   codes.InvalidArgument,
	http.StatusUnauthorized:                 codes.Unauthenticated,
	http.StatusForbidden:                    codes.PermissionDenied,
	http.StatusNotFound:                     codes.NotFound,
	http.StatusMethodNotAllowed:             codes.Unimplemented,
	http.StatusRequestTimeout:               codes.DeadlineExceeded,
	http.StatusConflict:                     codes.AlreadyExists,
	http.StatusGone:                         codes.NotFound, // gRPC has no 410.
	http.StatusPreconditionFailed:           codes.FailedPrecondition,
	http.StatusRequestEntityTooLarge:        codes.OutOfRange,
	http.StatusRequestedRangeNotSatisfiable: codes.OutOfRange,
	http.StatusUnprocessableEntity:          codes.InvalidArgument,
	http.StatusTooEarly:                     codes.FailedPrecondition,
	http.StatusPreconditionRequired:         codes.FailedPrecondition,
	http.StatusTooManyRequests:              codes.ResourceExhausted,
	499:                                     codes.Canceled, // Client Closed Request.

	// 5xx
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusBadGateway:          codes.Unavailable,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
	http.StatusInsufficientStorage: codes.ResourceExhausted,
}

// CodeOf returns the gRPC code for an HTTP status.
//
// Unlisted statuses map by class: other 4xx to FailedPrecondition, 5xx to
// Internal, anything below 400 to Unknown (it is not an error status).
func CodeOf(c status.Code) codes.Code {
	if gc, ok := byHTTP[c]; ok {
		return gc
	}
	switch {
	case c >= 400 && c < 500:
		return codes.FailedPrecondition
	case c >= 500:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
