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

package errresp_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/errresp"
	"dirpx.dev/errresp/apis"
	"dirpx.dev/errresp/descriptor"
	"dirpx.dev/errresp/diag"
	"dirpx.dev/errresp/internal/fixture"
	"dirpx.dev/errresp/status"
)

func newComposer(t *testing.T, opts ...errresp.Option) (*errresp.Composer[fixture.CreateUserError], *fixture.Recorder) {
	t.Helper()
	rec := &fixture.Recorder{}
	c, err := errresp.New[fixture.CreateUserError](fixture.Descriptor(), append([]errresp.Option{errresp.WithEmitter(rec)}, opts...)...)
	require.NoError(t, err)
	return c, rec
}

func TestCompose_ServerFaultHidesMessage(t *testing.T) {
	c, rec := newComposer(t)

	out := c.Compose(context.Background(), &fixture.InsertUserToDB{Err: errors.New("db write failed")})

	require.Equal(t, apis.Outcome{
		ErrorType: "CreateUserError",
		Variant:   "InsertUserToDB",
		Status:    http.StatusInternalServerError,
		Body:      errresp.Placeholder,
		Visible:   false,
		Logged:    true,
	}, out)
	require.NotContains(t, out.Body, "db write failed")

	records := rec.Records()
	require.Len(t, records, 1)
	r := records[0]
	require.Equal(t, "failed to insert user into the database", r.Message)
	require.Equal(t, status.Code(500), r.Status)
	require.Len(t, r.Chain, 1)
	require.Equal(t, "db write failed", r.Chain[0].Message)
}

func TestCompose_ClientFaultShowsMessage(t *testing.T) {
	c, rec := newComposer(t)

	out := c.Compose(context.Background(), fixture.InvalidBody{Reason: "missing field 'name'"})

	require.Equal(t, status.Code(422), out.Status)
	require.Equal(t, "body is invalid: missing field 'name'", out.Body)
	require.True(t, out.Visible)
	require.False(t, out.Logged)
	require.Zero(t, rec.Len())
}

func TestCompose_ClientFaultWithoutCauses(t *testing.T) {
	c, rec := newComposer(t)

	out := c.Compose(context.Background(), fixture.UserNotFound{ID: "42"})

	require.Equal(t, status.Code(404), out.Status)
	require.Equal(t, "user 42 not found", out.Body)
	require.Zero(t, rec.Len())
}

func TestCompose_UnknownVariantFailsClosed(t *testing.T) {
	c, rec := newComposer(t)

	out := c.Compose(context.Background(), fixture.Unregistered{})

	require.Equal(t, status.Code(500), out.Status)
	require.Equal(t, errresp.Placeholder, out.Body)
	require.Empty(t, out.Variant)
	require.True(t, out.Logged)

	records := rec.Records()
	require.Len(t, records, 1)
	require.ErrorIs(t, records[0].Err, descriptor.ErrUnknownVariant)
	require.Equal(t, "stale variant with secret details", records[0].Message)
}

func TestCompose_NilValueFailsClosed(t *testing.T) {
	c, rec := newComposer(t)

	out := c.Compose(context.Background(), nil)
	require.Equal(t, status.Code(500), out.Status)
	require.Equal(t, errresp.Placeholder, out.Body)
	require.Equal(t, 1, rec.Len())
}

type nilCause struct{ cause error }

func (w *nilCause) Error() string { return "nil cause" }
func (w *nilCause) Unwrap() error { return w.cause }

func TestCompose_TypedNilValues(t *testing.T) {
	tests := []struct {
		name string
		err  fixture.CreateUserError
	}{
		{"nil variant pointer", (*fixture.InsertUserToDB)(nil)},
		{"nil cause pointer", &fixture.InsertUserToDB{Err: (*nilCause)(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newComposer(t)

			var out apis.Outcome
			require.NotPanics(t, func() { out = c.Compose(context.Background(), tt.err) })
			require.Equal(t, status.Code(500), out.Status)
			require.Equal(t, "InsertUserToDB", out.Variant)
			require.Equal(t, errresp.Placeholder, out.Body)

			records := rec.Records()
			require.Len(t, records, 1)
			require.Empty(t, records[0].Chain)
		})
	}
}

func TestCompose_EmptyMessage(t *testing.T) {
	rec := &fixture.Recorder{}
	d := descriptor.MustNew[fixture.CreateUserError]("CreateUserError",
		descriptor.Variant[fixture.Silent](descriptor.WithStatus(http.StatusServiceUnavailable)),
	)
	c := errresp.MustNew[fixture.CreateUserError](d, errresp.WithEmitter(rec))

	out := c.Compose(context.Background(), fixture.Silent{})
	require.Equal(t, status.Code(503), out.Status)
	require.Equal(t, errresp.Placeholder, out.Body)
	require.True(t, out.Logged)

	records := rec.Records()
	require.Len(t, records, 1)
	require.Equal(t, "", records[0].Message)
	require.Equal(t, "Silent", records[0].Variant)
}

func TestCompose_PointerToValueVariant(t *testing.T) {
	c, rec := newComposer(t)

	out := c.Compose(context.Background(), &fixture.InvalidBody{Reason: "missing field 'name'"})
	require.Equal(t, status.Code(422), out.Status)
	require.Equal(t, "InvalidBody", out.Variant)
	require.Equal(t, "body is invalid: missing field 'name'", out.Body)
	require.Zero(t, rec.Len())
}

func TestCompose_OverrideChangesVisibility(t *testing.T) {
	rec := &fixture.Recorder{}
	d := fixture.Descriptor(descriptor.WithOverrides(map[string]status.Code{"InvalidBody": 503}))
	c := errresp.MustNew[fixture.CreateUserError](d, errresp.WithEmitter(rec))

	out := c.Compose(context.Background(), fixture.InvalidBody{Reason: "x"})
	require.Equal(t, status.Code(503), out.Status)
	require.Equal(t, errresp.Placeholder, out.Body)
	require.Equal(t, 1, rec.Len())
}

// TestCompose_EmitsExactlyForServerFaults runs every valid status through a
// variant and checks the outcome shape and the number of emissions.
func TestCompose_EmitsExactlyForServerFaults(t *testing.T) {
	for code := status.Min; code <= status.Max; code++ {
		rec := &fixture.Recorder{}
		d := descriptor.MustNew[fixture.CreateUserError]("CreateUserError",
			descriptor.Variant[fixture.InvalidBody](descriptor.WithStatus(code)),
		)
		c := errresp.MustNew[fixture.CreateUserError](d, errresp.WithEmitter(rec))

		out := c.Compose(context.Background(), fixture.InvalidBody{Reason: "secret"})
		require.Equal(t, code, out.Status)

		if code >= 500 {
			require.Equal(t, errresp.Placeholder, out.Body, "status %d", code)
			require.Equal(t, 1, rec.Len(), "status %d", code)
			require.True(t, out.Logged)
		} else {
			require.Equal(t, "body is invalid: secret", out.Body, "status %d", code)
			require.Zero(t, rec.Len(), "status %d", code)
			require.False(t, out.Logged)
		}
	}
}

func TestCompose_ChainOrder(t *testing.T) {
	c, rec := newComposer(t)
	root := errors.New("connection refused")
	mid := fmt.Errorf("exec insert: %w", root)

	c.Compose(context.Background(), &fixture.InsertUserToDB{Err: mid})

	records := rec.Records()
	require.Len(t, records, 1)
	var got []string
	for _, l := range records[0].Chain {
		got = append(got, l.Message)
	}
	want := []string{"exec insert: connection refused", "connection refused"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chain mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_EmitterFailuresAreSwallowed(t *testing.T) {
	tests := []struct {
		name    string
		emitter diag.Emitter
	}{
		{"error", diag.Func(func(context.Context, diag.Record) error { return errors.New("sink down") })},
		{"panic", diag.Func(func(context.Context, diag.Record) error { panic("sink exploded") })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := errresp.MustNew[fixture.CreateUserError](fixture.Descriptor(), errresp.WithEmitter(tt.emitter))

			out := c.Compose(context.Background(), &fixture.InsertUserToDB{})
			require.Equal(t, status.Code(500), out.Status)
			require.Equal(t, errresp.Placeholder, out.Body)
		})
	}
}

func TestCompose_MultipleEmitters(t *testing.T) {
	first, second := &fixture.Recorder{Err: errors.New("full")}, &fixture.Recorder{}
	c := errresp.MustNew[fixture.CreateUserError](fixture.Descriptor(),
		errresp.WithEmitter(first),
		errresp.WithEmitter(nil),
		errresp.WithEmitter(second),
	)

	c.Compose(context.Background(), &fixture.InsertUserToDB{})
	require.Equal(t, 1, first.Len())
	require.Equal(t, 1, second.Len())
}

func TestCompose_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Name: "api", Output: &buf, Level: hclog.Info})
	c := errresp.MustNew[fixture.CreateUserError](fixture.Descriptor(), errresp.WithLogger(logger))

	out := c.Compose(context.Background(), &fixture.InsertUserToDB{Err: errors.New("db write failed")})
	require.Equal(t, errresp.Placeholder, out.Body)
	require.Contains(t, buf.String(), "internal server error")
	require.Contains(t, buf.String(), "db write failed")

	buf.Reset()
	c.Compose(context.Background(), fixture.InvalidBody{})
	require.Empty(t, buf.String())
}

func TestCompose_WithPlaceholder(t *testing.T) {
	c, _ := newComposer(t, errresp.WithPlaceholder("Something went wrong"))
	out := c.Compose(context.Background(), &fixture.InsertUserToDB{})
	require.Equal(t, "Something went wrong", out.Body)
}

func TestComposeError(t *testing.T) {
	c, rec := newComposer(t)

	out, ok := c.ComposeError(context.Background(), fmt.Errorf("handler: %w", fixture.InvalidBody{Reason: "r"}))
	require.True(t, ok)
	require.Equal(t, status.Code(422), out.Status)
	require.Equal(t, "body is invalid: r", out.Body)

	_, ok = c.ComposeError(context.Background(), errors.New("not ours"))
	require.False(t, ok)
	_, ok = c.ComposeError(context.Background(), nil)
	require.False(t, ok)
	require.Zero(t, rec.Len())
}

func TestStatus(t *testing.T) {
	c, rec := newComposer(t)
	require.Equal(t, status.Code(500), c.Status(&fixture.InsertUserToDB{}))
	require.Equal(t, status.Code(422), c.Status(fixture.InvalidBody{}))
	require.Equal(t, status.Code(404), c.Status(fixture.UserNotFound{}))
	require.Equal(t, status.Code(500), c.Status(fixture.Unregistered{}))
	require.Zero(t, rec.Len())
}

type otherError interface {
	error
	otherError()
}

func TestNew_Errors(t *testing.T) {
	_, err := errresp.New[fixture.CreateUserError](nil)
	require.ErrorIs(t, err, errresp.ErrNilDescriptor)

	_, err = errresp.New[otherError](fixture.Descriptor())
	require.ErrorIs(t, err, errresp.ErrDescriptorMismatch)

	_, err = errresp.New[fixture.CreateUserError](fixture.Descriptor(), errresp.WithPlaceholder(""))
	require.ErrorIs(t, err, errresp.ErrEmptyPlaceholder)

	require.Panics(t, func() { errresp.MustNew[otherError](fixture.Descriptor()) })
}

func TestComposer_Concurrent(t *testing.T) {
	c, rec := newComposer(t)

	var g errgroup.Group
	for i := range 64 {
		g.Go(func() error {
			var e fixture.CreateUserError = fixture.InvalidBody{Reason: "r"}
			if i%2 == 0 {
				e = &fixture.InsertUserToDB{}
			}
			out := c.Compose(context.Background(), e)
			if out.Status >= 500 && out.Body != errresp.Placeholder {
				return fmt.Errorf("leaked body %q", out.Body)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 32, rec.Len())
}

// FuzzCompose_NoLeak checks that no server-fault body ever carries any of the
// error's text, whatever the message and status.
func FuzzCompose_NoLeak(f *testing.F) {
	f.Add("db password=hunter2", 500)
	f.Add("", 503)
	f.Add("missing field", 422)
	f.Add("Internal", 599)

	f.Fuzz(func(t *testing.T, reason string, code int) {
		c := status.Code(code)
		if status.Validate(c) != nil {
			t.Skip()
		}
		d := descriptor.MustNew[fixture.CreateUserError]("CreateUserError",
			descriptor.Variant[fixture.InvalidBody](descriptor.WithStatus(c)),
		)
		rec := &fixture.Recorder{}
		comp := errresp.MustNew[fixture.CreateUserError](d, errresp.WithEmitter(rec))

		e := fixture.InvalidBody{Reason: reason}
		out := comp.Compose(context.Background(), e)
		if c >= 500 {
			if out.Body != errresp.Placeholder || out.Visible {
				t.Fatalf("status %d leaked body %q", c, out.Body)
			}
			if rec.Len() != 1 || rec.Records()[0].Message != e.Error() {
				t.Fatalf("status %d: diagnostic record missing the message", c)
			}
			return
		}
		if out.Body != e.Error() || rec.Len() != 0 {
			t.Fatalf("status %d: body %q, %d records", c, out.Body, rec.Len())
		}
	})
}
