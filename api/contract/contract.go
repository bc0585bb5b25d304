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

// Package contract describes service contracts: Go interfaces whose methods
// are invoked across a channel.
//
// A Contract is discovered once per interface type by reflection. Every
// method of the interface, including methods promoted from embedded
// interfaces, becomes a Method. A leading context.Context parameter and a
// trailing error result are recognized and kept out of the argument and
// result lists, so bindings only see the values they must carry.
//
// Go has no method annotations, so fault contracts (the fault detail types a
// method may return) are declared with WithFault when the Contract is built.
package contract

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/typename"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

var (
	_contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	_errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Contract is the immutable description of a service contract interface.
type Contract struct {
	typ     reflect.Type
	name    string
	methods []*Method
	byName  map[string]*Method
	faults  map[string]reflect.Type
}

// Method is a single operation of a Contract.
type Method struct {
	// Index of the method in the interface's method set.
	Index int
	// Name of the method.
	Name string
	// Type is the method's function type, without a receiver.
	Type reflect.Type
	// In lists parameter types, excluding a leading context.Context.
	In []reflect.Type
	// Out lists result types, excluding a trailing error.
	Out []reflect.Type
	// HasContext reports whether the first parameter is a context.Context.
	HasContext bool
	// HasError reports whether the last result is an error.
	HasError bool
	// Variadic reports whether the last parameter is variadic.
	Variadic bool
	// Faults lists the fault detail types declared for this method.
	Faults []reflect.Type
}

// Option customizes a Contract as it is built.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

type options struct {
	faults   map[string][]reflect.Type
	faultAll []reflect.Type
}

// WithFault declares the fault detail types that the named method may
// return. Details are given as sample values; only their types matter.
func WithFault(method string, details ...interface{}) Option {
	return optionFunc(func(o *options) {
		for _, d := range details {
			if d != nil {
				o.faults[method] = append(o.faults[method], reflect.TypeOf(d))
			}
		}
	})
}

// WithFaultAll declares fault detail types for every method of the contract.
func WithFaultAll(details ...interface{}) Option {
	return optionFunc(func(o *options) {
		for _, d := range details {
			if d != nil {
				o.faultAll = append(o.faultAll, reflect.TypeOf(d))
			}
		}
	})
}

// Of builds the Contract for the interface type T.
func Of[T any](opts ...Option) (*Contract, error) {
	return New(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// New builds the Contract for the given interface type.
func New(t reflect.Type, opts ...Option) (*Contract, error) {
	if t == nil {
		return nil, &svcerrors.TypeGenerationError{Contract: "<nil>", Reason: "contract type is nil"}
	}
	name := typename.Of(t)
	if t.Kind() != reflect.Interface {
		return nil, &svcerrors.TypeGenerationError{
			Contract: name,
			Reason:   fmt.Sprintf("contract must be an interface type, got %v", t.Kind()),
		}
	}

	o := options{faults: make(map[string][]reflect.Type)}
	for _, opt := range opts {
		opt.apply(&o)
	}

	c := &Contract{
		typ:     t,
		name:    name,
		methods: make([]*Method, 0, t.NumMethod()),
		byName:  make(map[string]*Method, t.NumMethod()),
		faults:  make(map[string]reflect.Type),
	}

	for i := 0; i < t.NumMethod(); i++ {
		rm := t.Method(i)
		if rm.PkgPath != "" {
			return nil, &svcerrors.TypeGenerationError{
				Contract: name,
				Reason:   fmt.Sprintf("method %q is unexported", rm.Name),
			}
		}
		m := newMethod(i, rm)
		m.Faults = append(append(m.Faults, o.faultAll...), o.faults[rm.Name]...)
		delete(o.faults, rm.Name)
		for _, ft := range m.Faults {
			c.faults[typename.Of(ft)] = ft
		}
		c.methods = append(c.methods, m)
		c.byName[m.Name] = m
	}

	if len(o.faults) > 0 {
		unknown := make([]string, 0, len(o.faults))
		for n := range o.faults {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, &svcerrors.TypeGenerationError{
			Contract: name,
			Reason:   fmt.Sprintf("fault contracts declared for unknown methods %q", unknown),
		}
	}

	return c, nil
}

func newMethod(index int, rm reflect.Method) *Method {
	ft := rm.Type
	m := &Method{
		Index:    index,
		Name:     rm.Name,
		Type:     ft,
		Variadic: ft.IsVariadic(),
	}

	in := 0
	if ft.NumIn() > 0 && ft.In(0) == _contextType {
		m.HasContext = true
		in = 1
	}
	for ; in < ft.NumIn(); in++ {
		m.In = append(m.In, ft.In(in))
	}

	out := ft.NumOut()
	if out > 0 && ft.Out(out-1) == _errorType {
		m.HasError = true
		out--
	}
	for i := 0; i < out; i++ {
		m.Out = append(m.Out, ft.Out(i))
	}
	return m
}

// Type returns the contract's interface type.
func (c *Contract) Type() reflect.Type { return c.typ }

// Name returns the fully-qualified name of the contract interface.
func (c *Contract) Name() string { return c.name }

// Methods returns the contract's methods ordered by index.
func (c *Contract) Methods() []*Method { return c.methods }

// Method returns the method with the given name.
func (c *Contract) Method(name string) (*Method, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// FaultType returns the declared fault detail type with the given
// fully-qualified name.
func (c *Contract) FaultType(name string) (reflect.Type, bool) {
	t, ok := c.faults[name]
	return t, ok
}

// String returns the contract name.
func (c *Contract) String() string { return c.name }

// DeclaresFault reports whether detail's type is one of the method's
// declared fault types. A pointer and its element type are treated alike.
func (m *Method) DeclaresFault(detail interface{}) bool {
	if detail == nil {
		return false
	}
	name := typename.OfValue(detail)
	for _, ft := range m.Faults {
		if typename.Of(ft) == name {
			return true
		}
	}
	return false
}

// ZeroResults returns the zero value of each result, excluding the error.
func (m *Method) ZeroResults() []reflect.Value {
	results := make([]reflect.Value, len(m.Out))
	for i, t := range m.Out {
		results[i] = reflect.Zero(t)
	}
	return results
}

// Values converts call arguments into reflect values matching the method's
// full parameter list, including a leading context.Context. The argument
// for a variadic parameter is passed as a slice. A nil argument becomes the
// zero value of its parameter type.
func (m *Method) Values(args []interface{}) ([]reflect.Value, error) {
	n := m.Type.NumIn()
	if len(args) != n {
		return nil, svcerrors.InvalidArgumentErrorf(
			"method %q expects %d arguments but got %d", m.Name, n, len(args))
	}

	values := make([]reflect.Value, n)
	for i, arg := range args {
		pt := m.Type.In(i)
		if arg == nil {
			values[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(pt) {
			return nil, svcerrors.InvalidArgumentErrorf(
				"argument %d of method %q must be of type %v, not %v", i, m.Name, pt, v.Type())
		}
		values[i] = v
	}
	return values, nil
}

// Context returns the context.Context among the given argument values, or
// context.Background if the method does not take one or it is nil.
func (m *Method) Context(args []reflect.Value) context.Context {
	if m.HasContext && len(args) > 0 && args[0].IsValid() {
		if ctx, ok := args[0].Interface().(context.Context); ok && ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

// Payload returns the argument values a binding must carry: all arguments
// except a leading context.Context.
func (m *Method) Payload(args []reflect.Value) []reflect.Value {
	if m.HasContext && len(args) > 0 {
		return args[1:]
	}
	return args
}

func (m *Method) String() string { return m.Name }

var _cache sync.Map // reflect.Type -> *Contract

// Cached returns the Contract for T, discovering it on first use. Options
// only apply on the first successful discovery for a type; discovery errors
// are not cached.
func Cached[T any](opts ...Option) (*Contract, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if c, ok := _cache.Load(t); ok {
		return c.(*Contract), nil
	}
	c, err := New(t, opts...)
	if err != nil {
		return nil, err
	}
	actual, _ := _cache.LoadOrStore(t, c)
	return actual.(*Contract), nil
}
