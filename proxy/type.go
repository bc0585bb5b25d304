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
	"context"
	"fmt"
	"reflect"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/observability"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Type is a proxy type: the method table of a contract specialized for a
// Variant. Types are immutable and safe for concurrent use.
type Type struct {
	contract *contract.Contract
	variant  Variant
	name     string
	methods  map[string]invokeFunc
	run      runFunc
	recovery recoverFunc
}

type invokeFunc func(p *Proxy, args []interface{}) ([]interface{}, error)

// runFunc obtains a channel for one call, invokes it, and disposes of the
// channel as the variant's lifetime requires.
type runFunc func(p *Proxy, m *contract.Method, args []reflect.Value, edge *observability.Edge) ([]reflect.Value, error)

// recoverFunc decides the error a failed call returns, nil to swallow it.
type recoverFunc func(p *Proxy, ctx context.Context, m *contract.Method, err error) (error, observability.Outcome)

// Generate builds the proxy Type of a contract for a variant.
func Generate(c *contract.Contract, v Variant) (*Type, error) {
	if c == nil {
		return nil, &svcerrors.TypeGenerationError{Contract: "<nil>", Variant: v.String(), Reason: "contract is nil"}
	}
	if !v.IsValid() {
		return nil, &svcerrors.TypeGenerationError{Contract: c.Name(), Variant: v.String(), Reason: "unknown proxy variant"}
	}

	t := &Type{
		contract: c,
		variant:  v,
		name:     fmt.Sprintf("%s$%s", c.Name(), v),
		methods:  make(map[string]invokeFunc, len(c.Methods())),
	}

	switch v.Lifetime() {
	case LifetimeInstance:
		t.run = (*Proxy).runInstance
	case LifetimeSession:
		t.run = (*Proxy).runSession
	case LifetimeCall:
		t.run = (*Proxy).runPerCall
	}

	switch v.Policy() {
	case Propagate:
		t.recovery = propagate
	case Swallow:
		t.recovery = swallow
	case Unwrap:
		t.recovery = unwrap
	}

	for _, m := range c.Methods() {
		t.methods[m.Name] = t.compile(m)
	}
	return t, nil
}

func (t *Type) compile(m *contract.Method) invokeFunc {
	contractName, variant := t.contract.Name(), t.variant.String()
	run, recovery := t.run, t.recovery

	return func(p *Proxy, args []interface{}) ([]interface{}, error) {
		values, err := m.Values(args)
		if err != nil {
			// The call never reached a channel.
			return channel.Results(m.ZeroResults()), err
		}

		edge := p.observer.Edge(contractName, m.Name, variant)
		call := edge.Begin()

		out, err := run(p, m, values, edge)
		if err == nil {
			call.Success()
			return channel.Results(out), nil
		}

		returned, outcome := recovery(p, m.Context(values), m, err)
		call.Fault(err, outcome, returned)
		return channel.Results(m.ZeroResults()), returned
	}
}

func propagate(_ *Proxy, _ context.Context, _ *contract.Method, err error) (error, observability.Outcome) {
	return err, observability.Propagated
}

func swallow(_ *Proxy, _ context.Context, _ *contract.Method, err error) (error, observability.Outcome) {
	return nil, observability.Swallowed
}

func unwrap(p *Proxy, ctx context.Context, m *contract.Method, err error) (error, observability.Outcome) {
	detail, ok := svcerrors.FaultDetail(err)
	if !ok || !m.DeclaresFault(detail) || p.hook == nil {
		return err, observability.Propagated
	}
	if translated := p.hook(ctx, m, detail, err); translated != nil {
		return translated, observability.Translated
	}
	return err, observability.Propagated
}

// Contract returns the contract the type implements.
func (t *Type) Contract() *contract.Contract { return t.contract }

// Variant returns the variant the type was generated for.
func (t *Type) Variant() Variant { return t.variant }

// Name returns a name unique to the contract and variant.
func (t *Type) Name() string { return t.name }

// NumMethod returns the number of methods in the method table.
func (t *Type) NumMethod() int { return len(t.methods) }

// HasMethod reports whether the method table has the named method.
func (t *Type) HasMethod(name string) bool {
	_, ok := t.methods[name]
	return ok
}

func (t *Type) String() string { return t.name }
