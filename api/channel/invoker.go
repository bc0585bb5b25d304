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

package channel

import (
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Direct invokes contract methods by name on a single channel with no
// recovery policy. Errors pass through untouched and a faulted channel is
// left as it is.
type Direct struct {
	ch       Channel
	contract *contract.Contract
}

// Invoker returns a Direct invoker for the contract over ch.
func Invoker(ch Channel, c *contract.Contract) *Direct {
	return &Direct{ch: ch, contract: c}
}

// Invoke opens the channel if needed and calls the named method.
func (d *Direct) Invoke(method string, args ...interface{}) ([]interface{}, error) {
	m, ok := d.contract.Method(method)
	if !ok {
		return nil, svcerrors.UnimplementedErrorf("contract %q has no method %q", d.contract.Name(), method)
	}
	values, err := m.Values(args)
	if err != nil {
		return Results(m.ZeroResults()), err
	}
	if err := d.ch.Open(); err != nil {
		return Results(m.ZeroResults()), err
	}
	out, err := d.ch.Invoke(m, values)
	if err != nil {
		return Results(m.ZeroResults()), err
	}
	return Results(out), nil
}

// Channel returns the underlying channel.
func (d *Direct) Channel() Channel { return d.ch }

// Close closes the underlying channel.
func (d *Direct) Close() error { return d.ch.Close() }
