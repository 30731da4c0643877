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

package errresp

import (
	"github.com/hashicorp/go-hclog"

	"dirpx.dev/errresp/diag"
)

type config struct {
	emitters    []diag.Emitter
	placeholder string
}

func newConfig() *config {
	return &config{placeholder: Placeholder}
}

func (c *config) emitter() diag.Emitter {
	switch len(c.emitters) {
	case 0:
		return diag.Nop
	case 1:
		return c.emitters[0]
	default:
		return diag.Multi(append([]diag.Emitter(nil), c.emitters...))
	}
}

// Option configures a Composer.
type Option func(*config)

// WithEmitter adds a diagnostic emitter. Emitters added more than once are
// all called, in order.
func WithEmitter(e diag.Emitter) Option {
	return func(c *config) {
		if e != nil {
			c.emitters = append(c.emitters, e)
		}
	}
}

// WithLogger adds an hclog emitter writing to l.
func WithLogger(l hclog.Logger, opts ...diag.HCLogOption) Option {
	return WithEmitter(diag.NewHCLog(l, opts...))
}

// WithPlaceholder replaces the body of server-fault responses. The text must
// be non-empty and must not carry anything derived from the error.
func WithPlaceholder(s string) Option {
	return func(c *config) { c.placeholder = s }
}
