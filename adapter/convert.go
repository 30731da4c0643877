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

// Package adapter converts composed outcomes into the portable shapes the
// transports write: the JSON envelope and the gRPC ErrorInfo detail.
package adapter

import (
	"strconv"
	"strings"
	"unicode"

	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"dirpx.dev/errresp/apis"
)

// ToView converts an outcome into the JSON envelope. The message is the
// outcome body, so hidden outcomes carry only the placeholder.
func ToView(o apis.Outcome) apis.ErrorView {
	return apis.ErrorView{
		Code:  o.Status.Int(),
		Error: o.Body,
	}
}

// ToErrorInfo converts a client-visible outcome into a google.rpc.ErrorInfo
// detail. Hidden outcomes return nil: the variant of a server fault is not
// exposed to clients.
//
// Reason is the variant in UPPER_SNAKE_CASE ("InvalidBody" -> "INVALID_BODY").
func ToErrorInfo(o apis.Outcome, domain string) *errdetails.ErrorInfo {
	if !o.Visible {
		return nil
	}
	md := map[string]string{
		"http_status": strconv.Itoa(o.Status.Int()),
	}
	if o.ErrorType != "" {
		md["error_type"] = o.ErrorType
	}
	return &errdetails.ErrorInfo{
		Reason:   Reason(o.Variant),
		Domain:   domain,
		Metadata: md,
	}
}

// Reason converts a Go identifier to UPPER_SNAKE_CASE, keeping acronyms
// together: "InsertUserToDB" -> "INSERT_USER_TO_DB", "HTTPError" -> "HTTP_ERROR".
func Reason(name string) string {
	rs := []rune(name)
	var b strings.Builder
	b.Grow(len(rs) + 4)
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		if r == '-' || r == ' ' || r == '.' {
			r = '_'
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
