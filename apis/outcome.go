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

package apis

import "dirpx.dev/errresp/status"

// Outcome is the result of composing one error occurrence into a response.
//
// It is created per occurrence and consumed immediately by the transport
// layer. It deliberately has no field for the original message: when the
// status is a server fault the message only ever reaches the diagnostic
// sink, never an Outcome.
type Outcome struct {
	// ErrorType is the diagnostic name of the described error type.
	ErrorType string
	// Variant is the name of the variant the error was an instance of.
	Variant string
	// Status is the resolved HTTP status.
	Status status.Code
	// Body is the client-facing text: the error's own message when Visible,
	// the composer's fixed placeholder otherwise.
	Body string
	// Visible reports whether Body is the error's message.
	Visible bool
	// Logged reports whether a diagnostic record was emitted.
	Logged bool
}
