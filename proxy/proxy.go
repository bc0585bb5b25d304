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

package proxy

import (
	"reflect"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/observability"
	"github.com/askguanyu/CodePlexDevLib-sub007/pkg/lifecycle"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Option customizes a Proxy.
type Option interface {
	apply(*Proxy)
}

type optionFunc func(*Proxy)

func (f optionFunc) apply(p *Proxy) { f(p) }

// WithFaultHook sets the hook that PerSessionUnwrapping proxies hand
// declared fault details to. Other variants ignore it.
func WithFaultHook(h FaultHook) Option {
	return optionFunc(func(p *Proxy) {
		p.hook = h
	})
}

// WithObserver sets the Observer that logs and measures calls.
func WithObserver(o *observability.Observer) Option {
	return optionFunc(func(p *Proxy) {
		if o != nil {
			p.observer = o
		}
	})
}

// Proxy is an instance of a proxy Type bound to a channel factory.
type Proxy struct {
	typ      *Type
	factory  channel.Factory
	hook     FaultHook
	observer *observability.Observer

	// current holds a *slot with the channel kept across calls, for instance
	// and session lifetimes.
	current atomic.Value
	created atomic.Int64
	closed  atomic.Bool

	stubMu sync.Mutex
	stub   interface{}
}

type slot struct {
	ch channel.Channel
}

// New returns a Proxy of type t whose channels come from factory.
//
// ClientBase proxies create their channel here and fail if it cannot be
// created. Other variants create channels when they are first called.
func New(t *Type, factory channel.Factory, opts ...Option) (*Proxy, error) {
	if t == nil {
		return nil, svcerrors.InvalidArgumentErrorf("proxy type is required")
	}
	if factory == nil {
		return nil, svcerrors.InvalidArgumentErrorf("channel factory is required for %v", t)
	}

	p := &Proxy{
		typ:      t,
		factory:  factory,
		observer: observability.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(p)
	}

	if t.variant.Lifetime() == LifetimeInstance {
		ch, err := factory.NewChannel()
		if err != nil {
			return nil, err
		}
		p.created.Inc()
		p.current.Store(&slot{ch: ch})
	}
	return p, nil
}

// Invoke calls the named contract method with the given arguments and
// returns one value per result, excluding the error.
//
// Arguments are passed as declared, including a leading context.Context
// and with the variadic parameter as a slice. Results of a failed call are
// the zero values of their types.
func (p *Proxy) Invoke(method string, args ...interface{}) ([]interface{}, error) {
	fn, ok := p.typ.methods[method]
	if !ok {
		return nil, svcerrors.UnimplementedErrorf("%v has no method %q", p.typ, method)
	}
	return fn(p, args)
}

// Type returns the proxy type.
func (p *Proxy) Type() *Type { return p.typ }

// Factory returns the factory the proxy takes channels from.
func (p *Proxy) Factory() channel.Factory { return p.factory }

// Channel returns the channel the proxy currently keeps, or nil if it keeps
// none.
func (p *Proxy) Channel() channel.Channel {
	if s, ok := p.current.Load().(*slot); ok && s != nil {
		return s.ch
	}
	return nil
}

// ChannelsCreated returns how many channels the proxy has created.
func (p *Proxy) ChannelsCreated() int { return int(p.created.Load()) }

// Recreations returns how many session channels replaced a discarded one.
func (p *Proxy) Recreations() int {
	if p.typ.variant.Lifetime() != LifetimeSession {
		return 0
	}
	if n := int(p.created.Load()) - 1; n > 0 {
		return n
	}
	return 0
}

// State returns the state of the kept channel. Per-call proxies and
// session proxies between channels report Created until closed.
func (p *Proxy) State() lifecycle.State {
	if ch := p.Channel(); ch != nil {
		return ch.State()
	}
	if p.closed.Load() {
		return lifecycle.Closed
	}
	return lifecycle.Created
}

// Close gracefully closes the kept channel. Calls made after Close fail.
func (p *Proxy) Close() error {
	p.closed.Store(true)
	ch := p.Channel()
	if ch == nil {
		return nil
	}
	if err := ch.Close(); err != nil {
		ch.Abort()
		return err
	}
	return nil
}

// Abort immediately closes the kept channel. Calls made after Abort fail.
func (p *Proxy) Abort() {
	p.closed.Store(true)
	if ch := p.Channel(); ch != nil {
		ch.Abort()
	}
}

func (p *Proxy) checkOpen(m *contract.Method) error {
	if p.closed.Load() {
		return svcerrors.FailedPreconditionErrorf("cannot call %q: %v proxy is closed", m.Name, p.typ)
	}
	return nil
}

// open creates and opens a new channel.
func (p *Proxy) open(edge *observability.Edge) (channel.Channel, error) {
	ch, err := p.factory.NewChannel()
	if err != nil {
		return nil, err
	}
	if err := ch.Open(); err != nil {
		ch.Abort()
		return nil, err
	}
	n := p.created.Inc()
	edge.ChannelCreated(n > 1 && p.typ.variant.Lifetime() == LifetimeSession)
	return ch, nil
}

func (p *Proxy) runInstance(m *contract.Method, args []reflect.Value, _ *observability.Edge) ([]reflect.Value, error) {
	if err := p.checkOpen(m); err != nil {
		return nil, err
	}
	ch := p.Channel()
	if err := ch.Open(); err != nil {
		return nil, err
	}
	return ch.Invoke(m, args)
}

func (p *Proxy) runSession(m *contract.Method, args []reflect.Value, edge *observability.Edge) ([]reflect.Value, error) {
	if err := p.checkOpen(m); err != nil {
		return nil, err
	}
	ch, err := p.session(edge)
	if err != nil {
		return nil, err
	}
	out, err := ch.Invoke(m, args)
	if err != nil {
		p.discard(ch, edge, err)
		return nil, err
	}
	return out, nil
}

func (p *Proxy) runPerCall(m *contract.Method, args []reflect.Value, edge *observability.Edge) ([]reflect.Value, error) {
	if err := p.checkOpen(m); err != nil {
		return nil, err
	}
	ch, err := p.open(edge)
	if err != nil {
		return nil, err
	}
	out, err := ch.Invoke(m, args)
	if err != nil {
		ch.Abort()
		edge.ChannelAborted(err)
		return nil, err
	}
	if err := ch.Close(); err != nil {
		p.observer.Logger().Warn("Failed to close per-call channel.",
			zap.String("proxy", p.typ.Name()), zap.Error(err))
		ch.Abort()
	}
	return out, nil
}

// session returns the kept channel, replacing it first if it is missing or
// no longer usable.
func (p *Proxy) session(edge *observability.Edge) (channel.Channel, error) {
	for {
		old := p.current.Load()
		if s, ok := old.(*slot); ok && s != nil && s.ch != nil && usable(s.ch.State()) {
			return s.ch, nil
		}

		ch, err := p.open(edge)
		if err != nil {
			return nil, err
		}
		if p.current.CompareAndSwap(old, &slot{ch: ch}) {
			return ch, nil
		}
		// A concurrent call installed a channel first; use that one.
		ch.Abort()
	}
}

// discard drops ch from the proxy, if it is still kept, and aborts it.
func (p *Proxy) discard(ch channel.Channel, edge *observability.Edge, err error) {
	old := p.current.Load()
	if s, ok := old.(*slot); ok && s != nil && s.ch == ch {
		p.current.CompareAndSwap(old, &slot{})
	}
	ch.Abort()
	edge.ChannelAborted(err)
}

func usable(s lifecycle.State) bool {
	switch s {
	case lifecycle.Created, lifecycle.Opening, lifecycle.Opened:
		return true
	default:
		return false
	}
}
