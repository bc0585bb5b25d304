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

package channeltest

import (
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
)

// FakeFactory is a channel.Factory that builds channels with a function and
// remembers every channel it built, in order.
type FakeFactory struct {
	build func(n int) (channel.Channel, error)

	mu       sync.Mutex
	channels []channel.Channel
	closed   bool
}

// NewFakeFactory returns a FakeFactory. build receives the number of
// channels created before this one.
func NewFakeFactory(build func(n int) (channel.Channel, error)) *FakeFactory {
	return &FakeFactory{build: build}
}

// ValueFactory returns a FakeFactory whose channels call impl directly.
func ValueFactory(impl interface{}) *FakeFactory {
	return NewFakeFactory(func(int) (channel.Channel, error) {
		return channel.FromValue(impl), nil
	})
}

// NewChannel builds and records a new channel.
func (f *FakeFactory) NewChannel() (channel.Channel, error) {
	f.mu.Lock()
	n := len(f.channels)
	f.mu.Unlock()

	ch, err := f.build(n)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.channels = append(f.channels, ch)
	f.mu.Unlock()
	return ch, nil
}

// Close marks the factory closed.
func (f *FakeFactory) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Created returns how many channels the factory built.
func (f *FakeFactory) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.channels)
}

// Channels returns the channels built so far.
func (f *FakeFactory) Channels() []channel.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]channel.Channel(nil), f.channels...)
}

// Closed reports whether Close was called.
func (f *FakeFactory) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
