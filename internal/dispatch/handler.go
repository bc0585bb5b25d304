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

// Package dispatch serves calls that arrive over a binding by invoking the
// matching method of a Go value implementing the contract.
package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/zap"
)

// Handler invokes the methods of one implementation of a contract.
type Handler struct {
	contract *contract.Contract
	impl     reflect.Value
	logger   *zap.Logger
}

// NewHandler builds a Handler serving impl, which must implement the
// contract's interface.
func NewHandler(c *contract.Contract, impl interface{}, logger *zap.Logger) (*Handler, error) {
	if c == nil {
		return nil, svcerrors.InvalidArgumentErrorf("no contract given")
	}
	v := reflect.ValueOf(impl)
	if !v.IsValid() || !v.Type().Implements(c.Type()) {
		return nil, svcerrors.InvalidArgumentErrorf("%T does not implement %v", impl, c)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		contract: c,
		impl:     v,
		logger:   logger.With(zap.String("service", c.Name())),
	}, nil
}

// Contract returns the contract served by h.
func (h *Handler) Contract() *contract.Contract { return h.contract }

// Handle decodes a request body for the named method, calls the method and
// returns the encoded results. Errors returned by the method are returned
// unchanged so the binding can encode them as faults.
func (h *Handler) Handle(ctx context.Context, method string, body []byte) ([]byte, error) {
	m, ok := h.contract.Method(method)
	if !ok {
		return nil, svcerrors.UnimplementedErrorf(
			"unrecognized procedure %q for service %q", method, h.contract.Name())
	}

	args, err := wire.DecodeRequest(ctx, m, body)
	if err != nil {
		return nil, err
	}

	results, err := h.invoke(ctx, m, args)
	if err != nil {
		return nil, err
	}
	return wire.EncodeResponse(results)
}

func (h *Handler) invoke(ctx context.Context, m *contract.Method, args []reflect.Value) (results []reflect.Value, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = svcerrors.InternalErrorf("panic: %v", r)
			h.logger.Error("handler panicked",
				zap.String("procedure", m.Name),
				zap.Error(err),
				zap.Stack("stack"),
			)
		}
	}()

	fn := h.impl.MethodByName(m.Name)
	var out []reflect.Value
	if m.Variadic {
		out = fn.CallSlice(args)
	} else {
		out = fn.Call(args)
	}
	results, err = channel.SplitError(m, out)

	// The handler stopped work on context deadline.
	if err == context.DeadlineExceeded && err == ctx.Err() {
		deadline, _ := ctx.Deadline()
		err = svcerrors.DeadlineExceededErrorf(
			"call to procedure %q of service %q timed out after %v",
			m.Name, h.contract.Name(), deadline.Sub(start))
	}
	return results, err
}

func (h *Handler) String() string {
	return fmt.Sprintf("handler(%v)", h.contract)
}
