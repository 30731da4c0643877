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

package chain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type wrapErr struct {
	msg   string
	cause error
}

func (e *wrapErr) Error() string { return e.msg }
func (e *wrapErr) Unwrap() error { return e.cause }

// loopErr unwraps to itself.
type loopErr struct{}

func (loopErr) Error() string   { return "loop" }
func (e loopErr) Unwrap() error { return e }

type panicErr struct{}

func (*panicErr) Error() string { panic("boom") }

// sliceErr is not comparable and unwraps to a fresh copy of itself forever.
type sliceErr struct{ path []string }

func (e sliceErr) Error() string { return fmt.Sprintf("depth %d", len(e.path)) }
func (e sliceErr) Unwrap() error { return sliceErr{path: append(e.path, "x")} }

func TestWalk_OrderIsCausedByOrder(t *testing.T) {
	t.Parallel()

	c := errors.New("C")
	b := &wrapErr{msg: "B", cause: c}
	a := &wrapErr{msg: "A", cause: b}

	got := Walk(a)
	want := []Link{
		{Kind: "*chain.wrapErr", Message: "B"},
		{Kind: "*errors.errorString", Message: "C"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_NoCauses(t *testing.T) {
	t.Parallel()

	got := Walk(errors.New("alone"))
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Empty(t, Walk(nil))
}

func TestCauses_FmtWrapping(t *testing.T) {
	t.Parallel()

	root := errors.New("connection refused")
	err := fmt.Errorf("insert user: %w", fmt.Errorf("exec: %w", root))

	var msgs []string
	for c := range Causes(err) {
		msgs = append(msgs, c.Error())
	}
	require.Equal(t, []string{"exec: connection refused", "connection refused"}, msgs)
}

func TestCauses_JoinIsDepthFirst(t *testing.T) {
	t.Parallel()

	a := &wrapErr{msg: "a", cause: errors.New("a.root")}
	b := errors.New("b")
	err := &wrapErr{msg: "top", cause: errors.Join(a, b)}

	var msgs []string
	for _, l := range Walk(err) {
		msgs = append(msgs, l.Message)
	}
	require.Equal(t, []string{"a\nb", "a", "a.root", "b"}, msgs)
}

func TestCauses_StopsEarly(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("1: %w", fmt.Errorf("2: %w", errors.New("3")))
	n := 0
	for range Causes(err) {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestCauses_CycleTerminates(t *testing.T) {
	t.Parallel()

	require.Empty(t, Walk(loopErr{}), "self-cycle must be cut immediately")

	a := &wrapErr{msg: "a"}
	b := &wrapErr{msg: "b", cause: a}
	a.cause = b
	require.Len(t, Walk(a), 1)
}

func TestCauses_DepthBound(t *testing.T) {
	t.Parallel()

	require.Len(t, Walk(sliceErr{}), MaxDepth)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := &wrapErr{msg: "failed to insert user into the database", cause: errors.New("connection refused")}
	want := "failed to insert user into the database\n\nCaused by:\n\tconnection refused"
	require.Equal(t, want, Format(err))
	require.Equal(t, "plain", Format(errors.New("plain")))
	require.Equal(t, "<nil>", Format(nil))
}

func TestMessage_RecoversPanics(t *testing.T) {
	t.Parallel()

	msg := Message(&panicErr{})
	require.Contains(t, msg, "panicked")
	require.Contains(t, msg, "*chain.panicErr")
	require.Equal(t, "", Message(errors.New("")))
}

type unwrapPanicErr struct{}

func (unwrapPanicErr) Error() string { return "unwrap panics" }
func (unwrapPanicErr) Unwrap() error { panic("broken unwrap") }

func TestCauses_TypedNilPointers(t *testing.T) {
	var root *wrapErr
	require.NotPanics(t, func() {
		require.Empty(t, Walk(root))
	})

	err := &wrapErr{msg: "outer", cause: (*wrapErr)(nil)}
	var links []Link
	require.NotPanics(t, func() { links = Walk(err) })
	require.Empty(t, links)

	joined := errors.Join((*wrapErr)(nil), errors.New("kept"))
	require.NotPanics(t, func() { links = Walk(&wrapErr{msg: "top", cause: joined}) })
	require.Len(t, links, 2)
	require.Equal(t, "*errors.joinError", links[0].Kind)
	require.Equal(t, []string{"kept"}, messages(links[1:]))
}

func TestCauses_PanickingUnwrap(t *testing.T) {
	var links []Link
	require.NotPanics(t, func() { links = Walk(unwrapPanicErr{}) })
	require.Empty(t, links)

	require.NotPanics(t, func() {
		links = Walk(fmt.Errorf("outer: %w", unwrapPanicErr{}))
	})
	require.Equal(t, []string{"unwrap panics"}, messages(links))
	require.Equal(t, "unwrap panics", Format(unwrapPanicErr{}))
}

func messages(links []Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Message
	}
	return out
}
