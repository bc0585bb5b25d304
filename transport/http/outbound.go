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

package http

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/outbound"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
)

// factory creates channels to one contract at one URL. Its channels share
// the factory's connection pool.
type factory struct {
	contract  *contract.Contract
	url       string
	timeout   time.Duration
	tracer    opentracing.Tracer
	logger    *zap.Logger
	transport *http.Transport
}

func (f *factory) NewChannel() (channel.Channel, error) {
	client := &http.Client{Transport: f.transport}
	return outbound.NewChannel(
		outbound.CallerFunc(func(ctx context.Context, m *contract.Method, body []byte) ([]byte, error) {
			return f.call(ctx, client, m, body)
		}),
		outbound.Name(BindingName),
	), nil
}

func (f *factory) Close() error {
	f.transport.CloseIdleConnections()
	return nil
}

func (f *factory) call(ctx context.Context, client *http.Client, m *contract.Method, body []byte) ([]byte, error) {
	start := time.Now()
	if _, ok := ctx.Deadline(); !ok && f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequest("POST", f.url, bytes.NewReader(body))
	if err != nil {
		return nil, svcerrors.InvalidArgumentErrorf("failed to build request for %q: %v", m.Name, err)
	}
	req.Header.Set("Content-Type", wire.ContentType)
	req.Header.Set(ProcedureHeader, m.Name)
	req.Header.Set(ServiceHeader, f.contract.Name())
	if deadline, ok := ctx.Deadline(); ok {
		ttl := deadline.Sub(start)
		req.Header.Set(TTLMSHeader, strconv.FormatInt(int64(ttl/time.Millisecond), 10))
	}

	ctx, req, span := f.withOpentracingSpan(ctx, req, m, start)
	defer span.Finish()

	res, err := client.Do(req.WithContext(ctx))
	if err != nil {
		span.SetTag("error", true)
		span.LogEvent(err.Error())
		if ctx.Err() == context.DeadlineExceeded {
			end := time.Now()
			return nil, svcerrors.DeadlineExceededErrorf(
				"client timeout for procedure %q of service %q after %v",
				m.Name, f.contract.Name(), end.Sub(start))
		}
		f.logger.Debug("HTTP call failed.", zap.String("procedure", m.Name), zap.Error(err))
		return nil, svcerrors.UnavailableErrorf("failed to reach %v: %v", f.url, err)
	}
	defer res.Body.Close()

	span.SetTag("http.status_code", res.StatusCode)

	resBody, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, svcerrors.UnavailableErrorf("failed to read response from %v: %v", f.url, err)
	}

	if res.Header.Get(ApplicationStatusHeader) == ApplicationErrorStatus || res.StatusCode >= 300 {
		return nil, f.fault(res, resBody)
	}
	return resBody, nil
}

// fault decodes the error answered by the server. Responses that do not
// carry a fault envelope come from something other than an inbound of
// this package, such as a proxy, and are reported by status code.
func (f *factory) fault(res *http.Response, body []byte) error {
	if res.Header.Get(ErrorCodeHeader) != "" && strings.HasPrefix(res.Header.Get("Content-Type"), wire.ContentType) {
		return wire.DecodeFault(f.contract, body)
	}

	code := statusCodeToBestCode(res.StatusCode)
	if c := res.Header.Get(ErrorCodeHeader); c != "" {
		var parsed svcerrors.Code
		if err := parsed.UnmarshalText([]byte(c)); err == nil {
			code = parsed
		}
	}
	msg := strings.TrimSuffix(string(body), "\n")
	if msg == "" {
		msg = res.Status
	}
	return svcerrors.Newf(code, "%s", msg)
}

func (f *factory) withOpentracingSpan(ctx context.Context, req *http.Request, m *contract.Method, start time.Time) (context.Context, *http.Request, opentracing.Span) {
	var parent opentracing.SpanContext // ok to be nil
	if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
		parent = parentSpan.Context()
	}
	span := f.tracer.StartSpan(
		m.Name,
		opentracing.StartTime(start),
		opentracing.ChildOf(parent),
		opentracing.Tags{
			"rpc.service":   f.contract.Name(),
			"rpc.encoding":  "json",
			"rpc.transport": BindingName,
		},
	)
	ext.PeerService.Set(span, f.contract.Name())
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPUrl.Set(span, req.URL.String())
	ctx = opentracing.ContextWithSpan(ctx, span)

	if err := f.tracer.Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	); err != nil {
		f.logger.Debug("Failed to inject tracing span.", zap.Error(err))
	}
	return ctx, req, span
}
