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

// ErrorView is the JSON envelope written for an outcome:
//
//	{"code": 422, "error": "body is invalid: missing field 'name'"}
//
// Error holds Outcome.Body, so it is the placeholder for server faults.
type ErrorView struct {
	// Code repeats the HTTP status for clients that only see the body.
	Code int `json:"code"`
	// Error is the client-facing message.
	Error string `json:"error"`
}
