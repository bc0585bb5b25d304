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

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/typename"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Invoker calls contract methods by name. *Proxy and *channel.Direct are
// Invokers.
type Invoker interface {
	Invoke(method string, args ...interface{}) ([]interface{}, error)
}

var _stubs sync.Map // reflect.Type -> func(Invoker) interface{}

// RegisterStub registers the constructor of the typed stub for contract T.
// Code generated by svcproxygen calls it from init. Generated methods that
// have no error result panic with the error the Invoker returns.
func RegisterStub[T any](build func(Invoker) T) {
	_stubs.Store(typeOf[T](), func(inv Invoker) interface{} { return build(inv) })
}

// HasStub reports whether a stub is registered for the contract type.
func HasStub(t reflect.Type) bool {
	_, ok := _stubs.Load(t)
	return ok
}

// NewStub returns a T that forwards its methods to inv.
func NewStub[T any](inv Invoker) (T, error) {
	var zero T
	t := typeOf[T]()
	build, ok := _stubs.Load(t)
	if !ok {
		return zero, &svcerrors.TypeGenerationError{
			Contract: typename.Of(t),
			Reason:   "no stub is registered; generate one with svcproxygen",
		}
	}
	stub, ok := build.(func(Invoker) interface{})(inv).(T)
	if !ok {
		return zero, &svcerrors.TypeGenerationError{
			Contract: typename.Of(t),
			Reason:   "registered stub does not implement the contract",
		}
	}
	return stub, nil
}

// Stub returns the typed stub of p. It is built on first use and the same
// stub is returned afterwards.
func Stub[T any](p *Proxy) (T, error) {
	var zero T
	if t := typeOf[T](); t != p.typ.contract.Type() {
		return zero, svcerrors.InvalidArgumentErrorf(
			"%v proxy cannot be used as %v", p.typ.contract.Name(), typename.Of(t))
	}

	p.stubMu.Lock()
	defer p.stubMu.Unlock()

	if s, ok := p.stub.(T); ok {
		return s, nil
	}
	s, err := NewStub[T](p)
	if err != nil {
		return zero, err
	}
	p.stub = s
	return s, nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
