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
	"fmt"
	"reflect"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/pkg/lifecycle"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// FromValue returns a Channel that calls the methods of impl directly.
//
// impl is usually a value implementing the contract, but only the methods a
// call names must exist with the contract's signature. A panic inside a
// method is returned as a CodeInternal error and faults the channel.
func FromValue(impl interface{}) Channel {
	return &valueChannel{
		once: lifecycle.NewOnce(),
		v:    reflect.ValueOf(impl),
	}
}

type valueChannel struct {
	once *lifecycle.Once
	v    reflect.Value
}

func (c *valueChannel) Invoke(m *contract.Method, args []reflect.Value) (results []reflect.Value, err error) {
	if !c.once.IsOpened() {
		return nil, svcerrors.FailedPreconditionErrorf(
			"cannot call %q on a channel in state %q", m.Name, c.once.State())
	}
	if !c.v.IsValid() {
		return nil, svcerrors.UnimplementedErrorf("no implementation for method %q", m.Name)
	}

	fn := c.v.MethodByName(m.Name)
	if !fn.IsValid() || fn.Type() != m.Type {
		return nil, svcerrors.UnimplementedErrorf(
			"%v does not implement method %q as %v", c.v.Type(), m.Name, m.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = svcerrors.InternalErrorf("panic in method %q: %v", m.Name, r)
			c.once.Fault(err)
		}
	}()

	var out []reflect.Value
	if m.Variadic {
		out = fn.CallSlice(args)
	} else {
		out = fn.Call(args)
	}
	return SplitError(m, out)
}

func (c *valueChannel) Open() error { return c.once.Open(nil) }

func (c *valueChannel) Close() error { return c.once.Close(nil) }

func (c *valueChannel) Abort() { c.once.Abort(nil) }

func (c *valueChannel) State() State { return c.once.State() }

func (c *valueChannel) String() string {
	if !c.v.IsValid() {
		return "value channel(<nil>)"
	}
	return fmt.Sprintf("value channel(%v)", c.v.Type())
}
