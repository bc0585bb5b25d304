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

// Package outbound implements the channel shared by the network bindings.
// A binding only supplies a Caller that moves encoded bodies; the channel
// encodes arguments, decodes results and tracks its lifecycle.
package outbound

import (
	"context"
	"fmt"
	"reflect"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/pkg/lifecycle"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Caller sends one encoded request for m and returns the encoded response.
//
// A fault returned by the remote service must be returned as the error
// decoded from its fault envelope. Any other error is a communication
// failure.
type Caller interface {
	Call(ctx context.Context, m *contract.Method, body []byte) ([]byte, error)
}

// CallerFunc is a Caller implemented as a single function.
type CallerFunc func(ctx context.Context, m *contract.Method, body []byte) ([]byte, error)

// Call calls f.
func (f CallerFunc) Call(ctx context.Context, m *contract.Method, body []byte) ([]byte, error) {
	return f(ctx, m, body)
}

// Option customizes a Channel.
type Option func(*Channel)

// OnOpen sets work to run when the channel opens, such as dialing.
func OnOpen(f func() error) Option {
	return func(c *Channel) { c.onOpen = f }
}

// OnClose sets work to run when the channel closes or aborts.
func OnClose(f func() error) Option {
	return func(c *Channel) { c.onClose = f }
}

// Name sets the name the channel reports in String.
func Name(name string) Option {
	return func(c *Channel) { c.name = name }
}

// Channel is a channel.Channel that hands encoded calls to a Caller.
type Channel struct {
	once    *lifecycle.Once
	caller  Caller
	onOpen  func() error
	onClose func() error
	name    string
}

var _ channel.Channel = (*Channel)(nil)

// NewChannel builds a Channel in the Created state.
func NewChannel(caller Caller, opts ...Option) *Channel {
	c := &Channel{
		once:   lifecycle.NewOnce(),
		caller: caller,
		name:   "outbound",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke encodes the call, sends it and decodes the results. Communication
// failures fault the channel; faults returned by the service do not.
func (c *Channel) Invoke(m *contract.Method, args []reflect.Value) ([]reflect.Value, error) {
	if !c.once.IsOpened() {
		return nil, svcerrors.FailedPreconditionErrorf(
			"cannot call %q on a channel in state %q", m.Name, c.once.State())
	}

	body, err := wire.EncodeRequest(m, args)
	if err != nil {
		return nil, svcerrors.InvalidArgumentErrorf("failed to encode arguments of %q: %v", m.Name, err)
	}

	res, err := c.caller.Call(m.Context(args), m, body)
	if err != nil {
		if IsCommunicationError(err) {
			c.once.Fault(err)
		}
		return nil, err
	}

	results, err := wire.DecodeResponse(m, res)
	if err != nil {
		c.once.Fault(err)
		return nil, err
	}
	return results, nil
}

// Open runs the open work once.
func (c *Channel) Open() error { return c.once.Open(c.onOpen) }

// Close runs the close work once.
func (c *Channel) Close() error { return c.once.Close(c.onClose) }

// Abort closes the channel without waiting, ignoring close errors.
func (c *Channel) Abort() {
	c.once.Abort(func() {
		if c.onClose != nil {
			_ = c.onClose()
		}
	})
}

// State returns the channel's state.
func (c *Channel) State() channel.State { return c.once.State() }

func (c *Channel) String() string {
	return fmt.Sprintf("%s channel(%v)", c.name, c.once.State())
}

// IsCommunicationError reports whether err means the call may not have
// reached the service, or its answer was lost, as opposed to a fault the
// service returned.
func IsCommunicationError(err error) bool {
	if err == nil {
		return false
	}
	if !svcerrors.IsStatus(err) {
		return true
	}
	switch svcerrors.FromError(err).Code() {
	case svcerrors.CodeUnavailable, svcerrors.CodeDeadlineExceeded, svcerrors.CodeCancelled:
		return true
	default:
		return false
	}
}
