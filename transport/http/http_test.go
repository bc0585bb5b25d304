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
	"net/http"
	"testing"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/testtime"
	"github.com/askguanyu/CodePlexDevLib-sub007/pkg/lifecycle"
	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowService struct {
	calculator.Service
}

func (*slowService) Reset(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(testtime.Second):
		return nil
	}
}

func startInbound(t *testing.T, impl calculator.Calculator, opts ...InboundOption) *Inbound {
	i := NewInbound("127.0.0.1:0", opts...)
	require.NoError(t, i.Register(calculator.Contract(), impl))
	require.NoError(t, i.Start())
	t.Cleanup(func() { assert.NoError(t, i.Stop()) })
	return i
}

func openChannel(t *testing.T, b *Binding, address string) channel.Channel {
	f, err := b.NewFactory(calculator.Contract(), address)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, f.Close()) })

	ch, err := f.NewChannel()
	require.NoError(t, err)
	require.NoError(t, ch.Open())
	return ch
}

func TestRoundTrip(t *testing.T) {
	i := startInbound(t, &calculator.Service{Name: "http"})
	ch := openChannel(t, NewBinding(), i.URL(calculator.Contract()))
	calc := channel.Invoker(ch, calculator.Contract())

	tests := []struct {
		msg    string
		method string
		args   []interface{}
		want   []interface{}
	}{
		{msg: "add", method: "Add", args: []interface{}{context.Background(), 1, 2}, want: []interface{}{3}},
		{msg: "variadic", method: "Sum", args: []interface{}{[]int{1, 2, 3}}, want: []interface{}{6}},
		{msg: "describe", method: "Describe", args: []interface{}{context.Background()}, want: []interface{}{`calculator "http"`}},
		{msg: "no results", method: "Reset", args: []interface{}{context.Background()}, want: []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := calc.Invoke(tt.method, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFault(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	ch := openChannel(t, NewBinding(), i.URL(calculator.Contract()))

	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Divide", context.Background(), 7, 0)
	require.Error(t, err)

	detail, ok := svcerrors.FaultDetail(err)
	require.True(t, ok)
	assert.Equal(t, calculator.DivideByZero{Dividend: 7}, detail)
	assert.Equal(t, lifecycle.Opened, ch.State(), "faults returned by the service keep the channel usable")
}

func TestTimeout(t *testing.T) {
	i := startInbound(t, &slowService{})
	ch := openChannel(t, NewBinding(Timeout(20*time.Millisecond)), i.URL(calculator.Contract()))

	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Reset", context.Background())
	assert.Equal(t, svcerrors.CodeDeadlineExceeded, svcerrors.FromError(err).Code())
	assert.Equal(t, lifecycle.Faulted, ch.State())
}

func TestUnreachable(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	address := i.URL(calculator.Contract())
	require.NoError(t, i.Stop())

	ch := openChannel(t, NewBinding(), address)
	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Add", context.Background(), 1, 1)
	assert.True(t, svcerrors.IsUnavailable(err))
	assert.Equal(t, lifecycle.Faulted, ch.State())
}

func TestInboundErrors(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	url := i.URL(calculator.Contract())

	tests := []struct {
		msg        string
		method     string
		headers    map[string]string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			msg:        "missing procedure",
			method:     "POST",
			body:       "[]",
			wantStatus: 400,
			wantCode:   "invalid-argument",
		},
		{
			msg:        "unknown procedure",
			method:     "POST",
			headers:    map[string]string{ProcedureHeader: "Multiply"},
			body:       "[1,2]",
			wantStatus: 501,
			wantCode:   "unimplemented",
		},
		{
			msg:        "unknown service",
			method:     "POST",
			headers:    map[string]string{ProcedureHeader: "Add", ServiceHeader: "nope"},
			body:       "[1,2]",
			wantStatus: 501,
			wantCode:   "unimplemented",
		},
		{
			msg:        "bad ttl",
			method:     "POST",
			headers:    map[string]string{ProcedureHeader: "Add", TTLMSHeader: "soon"},
			body:       "[1,2]",
			wantStatus: 400,
			wantCode:   "invalid-argument",
		},
		{
			msg:        "get",
			method:     "GET",
			wantStatus: 404,
			wantCode:   "not-found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, url, bytes.NewReader([]byte(tt.body)))
			require.NoError(t, err)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, ApplicationErrorStatus, res.Header.Get(ApplicationStatusHeader))
			assert.Equal(t, tt.wantCode, res.Header.Get(ErrorCodeHeader))
		})
	}
}

func TestForeignErrorResponse(t *testing.T) {
	f := &factory{}

	res := &http.Response{StatusCode: 503, Header: http.Header{}}
	err := f.fault(res, []byte("gateway is sad\n"))
	assert.True(t, svcerrors.IsUnavailable(err))
	assert.Contains(t, err.Error(), "gateway is sad")

	res = &http.Response{StatusCode: 500, Header: http.Header{ErrorCodeHeader: {"data-loss"}}}
	err = f.fault(res, nil)
	assert.Equal(t, svcerrors.CodeDataLoss, svcerrors.FromError(err).Code())
}

func TestTracing(t *testing.T) {
	tracer := mocktracer.New()
	i := startInbound(t, &calculator.Service{}, InboundTracer(tracer))
	ch := openChannel(t, NewBinding(Tracer(tracer)), i.URL(calculator.Contract()))

	parent := tracer.StartSpan("test")
	ctx := opentracing.ContextWithSpan(context.Background(), parent)
	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Add", ctx, 1, 2)
	require.NoError(t, err)
	parent.Finish()

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 3)
	server, client, root := spans[0], spans[1], spans[2]

	assert.Equal(t, "Add", server.OperationName)
	assert.Equal(t, "Add", client.OperationName)
	assert.Equal(t, client.SpanContext.SpanID, server.ParentID, "server span continues the client span")
	assert.Equal(t, root.SpanContext.SpanID, client.ParentID)
	assert.Equal(t, BindingName, client.Tag("rpc.transport"))
	assert.Equal(t, 200, client.Tag("http.status_code"))
}

func TestNewFactoryAddressErrors(t *testing.T) {
	b := NewBinding()
	for _, address := range []string{"grpc://127.0.0.1:80", "http://", "://nope"} {
		_, err := b.NewFactory(calculator.Contract(), address)
		var addrErr *svcerrors.AddressFormatError
		assert.ErrorAs(t, err, &addrErr, address)
	}
}

func TestSpec(t *testing.T) {
	r, err := binding.NewRegistry(Spec())
	require.NoError(t, err)

	b, err := r.Build(BindingName, config.AttributeMap{"timeout": "2s", "keepAlive": "0s"})
	require.NoError(t, err)
	assert.Equal(t, "http(timeout=2s,keepAlive=0s)", b.Key())
	assert.Equal(t, BindingName, b.Name())

	b, err = r.Build(BindingName, nil)
	require.NoError(t, err)
	assert.Equal(t, NewBinding().Key(), b.Key())

	_, err = r.Build(BindingName, config.AttributeMap{"retries": 3})
	assert.Error(t, err)

	_, err = r.Build(BindingName, config.AttributeMap{"timeout": "soon"})
	assert.Error(t, err)
}

func TestSessionProxyRecovers(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	f, err := NewBinding().NewFactory(calculator.Contract(), i.URL(calculator.Contract()))
	require.NoError(t, err)
	defer f.Close()

	typ, err := proxy.Generate(calculator.Contract(), proxy.PerSessionThrowable)
	require.NoError(t, err)
	p, err := proxy.New(typ, f)
	require.NoError(t, err)
	defer p.Close()

	calc, err := proxy.Stub[calculator.Calculator](p)
	require.NoError(t, err)

	got, err := calc.Add(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	_, err = calc.Divide(context.Background(), 1, 0)
	require.Error(t, err)

	got, err = calc.Add(context.Background(), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
	assert.Equal(t, 2, p.ChannelsCreated(), "the session channel is replaced after a failed call")
}

func TestKeyTracer(t *testing.T) {
	a, b := mocktracer.New(), mocktracer.New()

	assert.Equal(t, "http(timeout=1s,keepAlive=0s)", NewBinding(Timeout(time.Second), KeepAlive(0)).Key())
	assert.Equal(t,
		NewBinding(Tracer(opentracing.NoopTracer{})).Key(),
		NewBinding(Tracer(opentracing.NoopTracer{})).Key(),
		"no-op tracers are interchangeable")
	assert.Equal(t, NewBinding(Tracer(a)).Key(), NewBinding(Tracer(a)).Key())
	assert.NotEqual(t, NewBinding(Tracer(a)).Key(), NewBinding(Tracer(b)).Key())
	assert.Contains(t, NewBinding(Tracer(a)).Key(), ",tracer=")
}
