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

// Package status provides parsing, validation and classification of the HTTP
// status codes attached to error variants.
//
// A status may be authored as a number ("422"), as a Go constant name
// ("http.StatusUnprocessableEntity"), as an upper-snake name
// ("UNPROCESSABLE_ENTITY") or as the reason phrase ("Unprocessable Entity").
// All forms resolve to the same canonical Code.
//
// The package also owns the visibility rule: a message is shown to clients
// only when its status is below 500. The split is by class, not by individual
// status, so it stays trivial to audit.
package status
