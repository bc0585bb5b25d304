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

// Package channel defines the communication channel a proxy forwards its
// calls to, and the factories that create channels.
//
// A Channel is bound to one contract and one destination. It moves through
// the states of lifecycle.State: it is opened before its first call, and it
// is closed when the caller is done with it. A channel whose call failed
// must not be used again; it is aborted and replaced.
package channel

import (
	"reflect"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/pkg/lifecycle"
)

// State is the communication state of a Channel.
type State = lifecycle.State

// Channel carries calls of a contract to a single destination.
type Channel interface {
	// Invoke calls the method with the given arguments and returns its
	// results.
	//
	// args holds one value per parameter of m.Type, including a leading
	// context.Context, with the variadic parameter passed as a slice. The
	// results exclude a trailing error; a failed call returns the error
	// alone.
	Invoke(m *contract.Method, args []reflect.Value) ([]reflect.Value, error)

	// Open prepares the channel for calls. Opening an opened channel is a
	// no-op.
	Open() error

	// Close gracefully shuts the channel down.
	Close() error

	// Abort shuts the channel down immediately, discarding any error.
	Abort()

	// State returns the current communication state of the channel.
	State() State
}

// Factory creates channels bound to one contract and destination.
//
// Factories are long-lived and safe for concurrent use. Channels created by
// a factory stay usable until closed, even if the factory itself is closed
// later.
type Factory interface {
	// NewChannel returns a new channel in the Created state.
	NewChannel() (Channel, error)

	// Close releases resources held by the factory.
	Close() error
}

// FactoryFunc adapts a function into a Factory with a no-op Close.
type FactoryFunc func() (Channel, error)

// NewChannel calls f.
func (f FactoryFunc) NewChannel() (Channel, error) { return f() }

// Close is a no-op.
func (f FactoryFunc) Close() error { return nil }

// Results converts result values into interface values, one per result.
func Results(values []reflect.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		if v.IsValid() {
			out[i] = v.Interface()
		}
	}
	return out
}

// SplitError separates the error result of m, if m declares one, from the
// remaining results of a reflective call.
func SplitError(m *contract.Method, out []reflect.Value) ([]reflect.Value, error) {
	if !m.HasError || len(out) == 0 {
		return out, nil
	}
	last := out[len(out)-1]
	results := out[:len(out)-1]
	if last.IsNil() {
		return results, nil
	}
	return nil, last.Interface().(error)
}
