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

import "context"

// ErrorComposer turns errors into outcomes.
//
// Implementations look for an instance of their error type in err's chain.
// The boolean is false when there is none; such errors are outside the
// composer's responsibility and the caller decides what to do with them.
type ErrorComposer interface {
	ComposeError(ctx context.Context, err error) (Outcome, bool)
}

// ErrorComposerFunc adapts a function to ErrorComposer.
type ErrorComposerFunc func(ctx context.Context, err error) (Outcome, bool)

// ComposeError calls f(ctx, err).
func (f ErrorComposerFunc) ComposeError(ctx context.Context, err error) (Outcome, bool) {
	return f(ctx, err)
}

// Composers tries each composer in order and returns the first outcome.
// It lets one transport serve several described error types.
type Composers []ErrorComposer

// ComposeError implements ErrorComposer.
func (cs Composers) ComposeError(ctx context.Context, err error) (Outcome, bool) {
	for _, c := range cs {
		if c == nil {
			continue
		}
		if o, ok := c.ComposeError(ctx, err); ok {
			return o, true
		}
	}
	return Outcome{}, false
}
