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

// Package inproc implements a binding whose channels call Go values in the
// same process. Addresses have the form "inproc://<name>", where name is
// the name a value was registered under.
package inproc

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// BindingName is the binding type name of in-process bindings.
const BindingName = "inproc"

// Registry holds the values that in-process channels call.
type Registry struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]interface{})}
}

var _defaultRegistry = NewRegistry()

// Register adds impl to the default Registry under name.
func Register(name string, impl interface{}) error {
	return _defaultRegistry.Register(name, impl)
}

// Unregister removes name from the default Registry.
func Unregister(name string) {
	_defaultRegistry.Unregister(name)
}

// Register adds impl under name. Names are case insensitive, like the
// host of an address.
func (r *Registry) Register(name string, impl interface{}) error {
	if name == "" {
		return svcerrors.InvalidArgumentErrorf("in-process service name is required")
	}
	if impl == nil {
		return svcerrors.InvalidArgumentErrorf("no value given for in-process service %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := r.values[key]; ok {
		return svcerrors.Newf(svcerrors.CodeAlreadyExists, "in-process service %q is already registered", name)
	}
	r.values[key] = impl
	return nil
}

// Unregister removes name. Channels created before keep calling the old
// value.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.values, strings.ToLower(name))
	r.mu.Unlock()
}

// Lookup returns the value registered under name.
func (r *Registry) Lookup(name string) (interface{}, bool) {
	r.mu.RLock()
	v, ok := r.values[strings.ToLower(name)]
	r.mu.RUnlock()
	return v, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Option customizes a Binding.
type Option func(*Binding)

// WithRegistry makes the binding resolve names in r instead of the default
// Registry.
func WithRegistry(r *Registry) Option {
	return func(b *Binding) {
		b.registry = r
	}
}

// Binding creates factories of in-process channels.
type Binding struct {
	registry *Registry
}

var _ binding.Binding = (*Binding)(nil)

// NewBinding builds an in-process Binding.
func NewBinding(opts ...Option) *Binding {
	b := &Binding{registry: _defaultRegistry}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns "inproc".
func (b *Binding) Name() string { return BindingName }

// Key identifies the binding by its registry.
func (b *Binding) Key() string {
	if b.registry == _defaultRegistry {
		return BindingName
	}
	return fmt.Sprintf("%s(registry=%p)", BindingName, b.registry)
}

// NewFactory returns a factory of channels to the value registered under
// the host of address. The name is resolved each time a channel is
// created, so values may be registered after the factory.
func (b *Binding) NewFactory(c *contract.Contract, address string) (channel.Factory, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: err.Error()}
	}
	if u.Scheme != BindingName {
		return nil, &svcerrors.AddressFormatError{
			Address: address,
			Reason:  fmt.Sprintf("scheme %q is not supported by the inproc binding", u.Scheme),
		}
	}
	if u.Host == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "service name is required"}
	}

	name := u.Host
	registry := b.registry
	return channel.FactoryFunc(func() (channel.Channel, error) {
		impl, ok := registry.Lookup(name)
		if !ok {
			return nil, svcerrors.UnavailableErrorf("no in-process service registered as %q", name)
		}
		if !reflect.TypeOf(impl).Implements(c.Type()) {
			return nil, svcerrors.UnimplementedErrorf("in-process service %q does not implement %v", name, c)
		}
		return channel.FromValue(impl), nil
	}), nil
}

// Spec returns the binding.Spec for the "inproc" binding type. The binding
// takes no attributes; it uses the default Registry unless opts say
// otherwise.
func Spec(opts ...Option) binding.Spec {
	return binding.Spec{
		Name: BindingName,
		Build: func(config.AttributeMap) (binding.Binding, error) {
			return NewBinding(opts...), nil
		},
	}
}
