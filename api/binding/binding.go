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

// Package binding describes how channels reach a destination: the
// transport, its options, and the address format it understands.
package binding

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Binding is a configured transport that creates channel factories for a
// contract at an address.
type Binding interface {
	// Name is the binding type name, such as "http" or "grpc".
	Name() string

	// Key identifies this configured binding among others of the same type.
	// Two bindings with the same Key are interchangeable.
	Key() string

	// NewFactory returns a factory of channels to the contract at address.
	NewFactory(c *contract.Contract, address string) (channel.Factory, error)
}

// Spec teaches a Registry how to build a binding type from configuration
// attributes.
type Spec struct {
	// Name of the binding type. Required.
	Name string

	// Build builds a Binding from the attributes of an endpoint. It should
	// pop the attributes it understands; leftovers are rejected. Required.
	Build func(attrs config.AttributeMap) (Binding, error)
}

// Registry maps binding type names to their Specs. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry returns a Registry that knows the given specs.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{specs: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a Spec. A spec with the same name replaces the previous
// one.
func (r *Registry) Register(s Spec) error {
	if s.Name == "" {
		return errors.New("binding spec name is required")
	}
	if s.Build == nil {
		return fmt.Errorf("invalid binding spec for %q: Build is required", s.Name)
	}

	r.mu.Lock()
	r.specs[s.Name] = s
	r.mu.Unlock()
	return nil
}

// MustRegister registers the Spec or panics.
func (r *Registry) MustRegister(s Spec) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Lookup returns the Spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	s, ok := r.specs[name]
	r.mu.RUnlock()
	return s, ok
}

// Names returns the registered binding type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.specs))
	for n := range r.specs {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Build builds a binding of the named type. Attributes are copied before
// Build pops them, and any attribute left over is an error.
func (r *Registry) Build(name string, attrs config.AttributeMap) (Binding, error) {
	s, ok := r.Lookup(name)
	if !ok {
		return nil, svcerrors.NotFoundErrorf(
			"unknown binding type %q, known types are %q", name, r.Names())
	}

	own := make(config.AttributeMap, len(attrs))
	for k, v := range attrs {
		own[k] = v
	}

	b, err := s.Build(own)
	if err != nil {
		return nil, fmt.Errorf("failed to build binding %q: %v", name, err)
	}
	if err := own.Unused(); err != nil {
		return nil, fmt.Errorf("failed to build binding %q: %v", name, err)
	}
	return b, nil
}
