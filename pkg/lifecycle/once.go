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

// Package lifecycle tracks the communication state of a channel.
//
// A channel advances monotonically from Created through Opening and Opened
// to Closing and Closed. Any call failure moves an open channel to Faulted,
// from which it can only be aborted. Open and Close run their work function
// at most once, and concurrent callers block until that work finishes.
package lifecycle

import (
	"errors"
	syncatomic "sync/atomic"

	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/atomic"
)

// State is the communication state of a channel.
type State int32

const (
	// Created indicates the channel has not been opened yet.
	Created State = iota

	// Opening indicates Open is in progress.
	Opening

	// Opened indicates the channel is usable.
	Opened

	// Closing indicates Close is in progress.
	Closing

	// Closed indicates the channel was closed or aborted.
	Closed

	// Faulted indicates the channel failed and must be discarded.
	Faulted
)

var stateToName = map[State]string{
	Created: "created",
	Opening: "opening",
	Opened:  "opened",
	Closing: "closing",
	Closed:  "closed",
	Faulted: "faulted",
}

func (s State) String() string {
	if name, ok := stateToName[s]; ok {
		return name
	}
	return "unknown"
}

// Once is a helper for implementing channels that advance through their
// communication states with at-most-once open and close work, in a thread
// safe manner.
type Once struct {
	// openCh closes once Open has finished, successfully or not.
	openCh chan struct{}
	// closeCh closes once the channel reached Closed or Faulted for good.
	closeCh chan struct{}
	// closeOnce guards closeCh.
	closeOnce atomic.Bool
	// err is the error returned by the open or close work, if any.
	err syncatomic.Value
	// state is the current State.
	state atomic.Int32
}

// NewOnce returns a lifecycle in the Created state.
func NewOnce() *Once {
	return &Once{
		openCh:  make(chan struct{}),
		closeCh: make(chan struct{}),
	}
}

// Open runs f once and moves the lifecycle to Opened, or to Faulted if f
// fails. Calls after the first wait for it and return its error. Opening a
// closed or faulted lifecycle fails with CodeFailedPrecondition.
func (o *Once) Open(f func() error) error {
	if o.state.CAS(int32(Created), int32(Opening)) {
		var err error
		if f != nil {
			err = f()
		}

		if err != nil {
			o.setError(err)
			o.state.Store(int32(Faulted))
			o.finish()
		} else {
			o.state.Store(int32(Opened))
		}
		close(o.openCh)
		return err
	}

	switch s := o.State(); s {
	case Closing, Closed, Faulted:
		if err := o.loadError(); err != nil && s == Faulted {
			return err
		}
		return svcerrors.FailedPreconditionErrorf("cannot open channel in state %q", s)
	}

	<-o.openCh
	return o.loadError()
}

// Close runs f once and moves an opened lifecycle to Closed. Closing a
// lifecycle that was never opened skips f. Closing a faulted lifecycle
// fails with CodeFailedPrecondition; faulted channels must be aborted.
func (o *Once) Close(f func() error) error {
	if o.state.CAS(int32(Created), int32(Closed)) {
		close(o.openCh)
		o.finish()
		return nil
	}

	<-o.openCh

	if o.state.CAS(int32(Opened), int32(Closing)) {
		var err error
		if f != nil {
			err = f()
		}

		if err != nil {
			o.setError(err)
			o.state.Store(int32(Faulted))
		} else {
			o.state.Store(int32(Closed))
		}
		o.finish()
		return err
	}

	<-o.closeCh
	if o.State() == Faulted {
		return svcerrors.FailedPreconditionErrorf("cannot close a faulted channel")
	}
	return o.loadError()
}

// Abort moves the lifecycle to Closed immediately, running f if the
// lifecycle was not already closed. Abort never fails and never waits for
// in-flight work other than a pending Open.
func (o *Once) Abort(f func()) {
	if o.state.CAS(int32(Created), int32(Closed)) {
		close(o.openCh)
		o.finish()
		return
	}

	<-o.openCh
	for {
		s := o.state.Load()
		if State(s) == Closed {
			return
		}
		if o.state.CAS(s, int32(Closed)) {
			if f != nil {
				f()
			}
			o.finish()
			return
		}
	}
}

// Fault moves an opened lifecycle to Faulted. It reports whether the
// transition happened.
func (o *Once) Fault(err error) bool {
	if !o.state.CAS(int32(Opened), int32(Faulted)) {
		return false
	}
	if err != nil {
		o.setError(err)
	}
	o.finish()
	return true
}

// Opened returns a channel that closes when Open has finished.
func (o *Once) Opened() <-chan struct{} {
	return o.openCh
}

// Done returns a channel that closes when the lifecycle is Closed or
// Faulted.
func (o *Once) Done() <-chan struct{} {
	return o.closeCh
}

// State returns the current state.
func (o *Once) State() State {
	return State(o.state.Load())
}

// IsOpened reports whether the lifecycle is usable.
func (o *Once) IsOpened() bool {
	return o.State() == Opened
}

// Err returns the error that faulted the lifecycle, if any.
func (o *Once) Err() error {
	return o.loadError()
}

func (o *Once) finish() {
	if o.closeOnce.CAS(false, true) {
		close(o.closeCh)
	}
}

func (o *Once) setError(err error) {
	o.err.Store(errBox{err})
}

func (o *Once) loadError() error {
	errVal := o.err.Load()
	if errVal == nil {
		return nil
	}

	if box, ok := errVal.(errBox); ok {
		return box.err
	}

	return errors.New("lifecycle err was not `error` type")
}

// errBox gives every stored error the same concrete type, as required by
// atomic.Value.
type errBox struct{ err error }
