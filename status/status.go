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

package status

import (
	"bytes"
	"encoding"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Code is the canonical, validated representation of an HTTP status.
//
// It is a separate type (not just int) so that variant metadata cannot be
// mixed up with arbitrary integers such as counts or gRPC codes.
type Code int

// Min and Max bound the statuses a variant may declare.
const (
	Min Code = 100
	Max Code = 599
)

// Default is the status of every variant that does not declare one.
const Default Code = http.StatusInternalServerError

var (
	// ErrStatusInvalid is returned when a value cannot be parsed as an HTTP
	// status or falls outside [Min, Max].
	ErrStatusInvalid = errors.New("errresp: invalid status code")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Parse takes a user-provided string, normalizes it and resolves it to a
// canonical Code.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrStatusInvalid
	}
	if n, err := strconv.Atoi(s); err == nil {
		c := Code(n)
		if err := Validate(c); err != nil {
			return 0, err
		}
		return c, nil
	}
	if c, ok := byName[Normalize(s)]; ok {
		return c, nil
	}
	return 0, ErrStatusInvalid
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings a symbolic status name into the form used for lookup.
//
// It strips the qualifiers people copy from code ("http.", "StatusCode::",
// a leading "Status"), drops every non-alphanumeric rune and upper-cases the
// rest, so "http.StatusNotFound", "NOT_FOUND" and "Not Found" all become
// "NOTFOUND".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "http.")
	s = strings.TrimPrefix(s, "StatusCode::")
	s = strings.TrimPrefix(s, "Status")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate reports whether c is a plausible HTTP status.
func Validate(c Code) error {
	if c < Min || c > Max {
		return ErrStatusInvalid
	}
	return nil
}

// ClientVisible reports whether a message composed for status c may be shown
// to the client. Everything below 500 is visible; server faults are not.
func ClientVisible(c Code) bool {
	return c < 500
}

// IsServerError reports whether c is in the 5xx class.
func (c Code) IsServerError() bool {
	return c >= 500 && c <= Max
}

// Int returns c as a plain int, e.g. for net/http.
func (c Code) Int() int {
	return int(c)
}

// Text returns the reason phrase for c, or "" when net/http does not know it.
func (c Code) Text() string {
	return http.StatusText(int(c))
}

// String renders c as "422 Unprocessable Entity".
func (c Code) String() string {
	n := strconv.Itoa(int(c))
	if t := c.Text(); t != "" {
		return n + " " + t
	}
	return n
}

// MarshalText implements encoding.TextMarshaler.
//
// Codes are marshaled as plain numbers.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts every form
// Parse accepts.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
