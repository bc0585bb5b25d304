// Copyright (c) 2026 askguanyu
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package lifecycle

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/testtime"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnceTransitions(t *testing.T) {
	errOpen := errors.New("open failed")
	errClose := errors.New("close failed")

	tests := []struct {
		msg       string
		run       func(o *Once) error
		wantErr   error
		wantState State
	}{
		{
			msg:       "created",
			run:       func(o *Once) error { return nil },
			wantState: Created,
		},
		{
			msg:       "open",
			run:       func(o *Once) error { return o.Open(nil) },
			wantState: Opened,
		},
		{
			msg:       "open fails",
			run:       func(o *Once) error { return o.Open(func() error { return errOpen }) },
			wantErr:   errOpen,
			wantState: Faulted,
		},
		{
			msg: "open then close",
			run: func(o *Once) error {
				require.NoError(t, o.Open(nil))
				return o.Close(nil)
			},
			wantState: Closed,
		},
		{
			msg:       "close without open skips work",
			run:       func(o *Once) error { return o.Close(func() error { return errClose }) },
			wantState: Closed,
		},
		{
			msg: "close fails",
			run: func(o *Once) error {
				require.NoError(t, o.Open(nil))
				return o.Close(func() error { return errClose })
			},
			wantErr:   errClose,
			wantState: Faulted,
		},
		{
			msg: "fault then abort",
			run: func(o *Once) error {
				require.NoError(t, o.Open(nil))
				assert.True(t, o.Fault(errOpen))
				assert.False(t, o.Fault(errOpen), "second fault is a no-op")
				o.Abort(nil)
				return nil
			},
			wantState: Closed,
		},
		{
			msg: "abort twice",
			run: func(o *Once) error {
				o.Abort(nil)
				o.Abort(nil)
				return nil
			},
			wantState: Closed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			o := NewOnce()
			err := tt.run(o)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, o.State())
		})
	}
}

func TestOpenAfterClose(t *testing.T) {
	o := NewOnce()
	require.NoError(t, o.Close(nil))
	err := o.Open(nil)
	assert.True(t, svcerrors.IsFailedPrecondition(err))
}

func TestCloseFaulted(t *testing.T) {
	o := NewOnce()
	require.NoError(t, o.Open(nil))
	require.True(t, o.Fault(errors.New("broken")))

	err := o.Close(nil)
	assert.True(t, svcerrors.IsFailedPrecondition(err))
	assert.EqualError(t, o.Err(), "broken")

	select {
	case <-o.Done():
	default:
		t.Fatal("faulted lifecycle must be done")
	}
}

func TestAbortRunsWorkOnce(t *testing.T) {
	o := NewOnce()
	require.NoError(t, o.Open(nil))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		calls int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.Abort(func() {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
	assert.Equal(t, Closed, o.State())
}

func TestConcurrentOpenWaits(t *testing.T) {
	o := NewOnce()
	release := make(chan struct{})

	go func() {
		_ = o.Open(func() error {
			<-release
			return nil
		})
	}()

	// wait for the first opener to begin
	require.True(t, testtime.Poll(time.Second, func() bool { return o.State() == Opening }), "open did not begin")

	done := make(chan error, 1)
	go func() { done <- o.Open(func() error { return errors.New("must not run") }) }()

	select {
	case <-done:
		t.Fatal("second Open must wait for the first")
	case <-time.After(10 * testtime.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(testtime.Second):
		t.Fatal("second Open never returned")
	}
	assert.True(t, o.IsOpened())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "faulted", Faulted.String())
	assert.Equal(t, "unknown", State(42).String())
}
