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

package tchannel

import (
	"context"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/outbound"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/uber/tchannel-go"
	"github.com/uber/tchannel-go/raw"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type factory struct {
	contract *contract.Contract
	hostPort string
	service  string
	opts     bindingOptions
	logger   *zap.Logger
}

func (f *factory) NewChannel() (channel.Channel, error) {
	var ch atomic.Value // *tchannel.Channel

	return outbound.NewChannel(
		outbound.CallerFunc(func(ctx context.Context, m *contract.Method, body []byte) ([]byte, error) {
			return f.call(ctx, ch.Load().(*tchannel.Channel), m, body)
		}),
		outbound.OnOpen(func() error {
			tch, err := tchannel.NewChannel(f.opts.caller, &tchannel.ChannelOptions{})
			if err != nil {
				return svcerrors.UnavailableErrorf("failed to create tchannel: %v", err)
			}
			ch.Store(tch)
			return nil
		}),
		outbound.OnClose(func() error {
			if tch, ok := ch.Load().(*tchannel.Channel); ok {
				tch.Close()
			}
			return nil
		}),
		outbound.Name(BindingName),
	), nil
}

// Close is a no-op: TChannels belong to channels.
func (f *factory) Close() error { return nil }

func (f *factory) call(ctx context.Context, tch *tchannel.Channel, m *contract.Method, body []byte) ([]byte, error) {
	start := time.Now()
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.timeout)
		defer cancel()
	}

	span := f.startSpan(ctx, m, start)
	defer span.Finish()

	h := make(headers)
	if err := f.opts.tracer.Inject(span.Context(), opentracing.TextMap, tracingCarrier(h)); err != nil {
		f.logger.Debug("Failed to inject tracing span.", zap.Error(err))
	}
	arg2, err := h.encode()
	if err != nil {
		return nil, svcerrors.InternalErrorf("failed to encode headers: %v", err)
	}

	_, arg3, res, err := raw.Call(ctx, tch, f.hostPort, f.service, m.Name, arg2, body)
	if err != nil {
		span.SetTag("error", true)
		span.LogEvent(err.Error())
		if se, ok := err.(tchannel.SystemError); ok {
			return nil, fromSystemError(se)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, svcerrors.DeadlineExceededErrorf(
				"client timeout for procedure %q of service %q after %v",
				m.Name, f.service, time.Since(start))
		}
		return nil, svcerrors.UnavailableErrorf("failed to call %v: %v", f.hostPort, err)
	}

	if res.ApplicationError() {
		span.SetTag("error", true)
		return nil, wire.DecodeFault(f.contract, arg3)
	}
	return arg3, nil
}

func (f *factory) startSpan(ctx context.Context, m *contract.Method, start time.Time) opentracing.Span {
	var parent opentracing.SpanContext // ok to be nil
	if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
		parent = parentSpan.Context()
	}
	span := f.opts.tracer.StartSpan(
		m.Name,
		opentracing.StartTime(start),
		opentracing.ChildOf(parent),
		opentracing.Tags{
			"rpc.service":   f.service,
			"rpc.caller":    f.opts.caller,
			"rpc.encoding":  "json",
			"rpc.transport": BindingName,
		},
	)
	ext.PeerService.Set(span, f.service)
	ext.SpanKindRPCClient.Set(span)
	return span
}
