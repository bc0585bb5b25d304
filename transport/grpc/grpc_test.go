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

package grpc

import (
	"context"
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

func startInbound(t *testing.T, impl calculator.Calculator) *Inbound {
	i := NewInbound("127.0.0.1:0")
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
	t.Cleanup(ch.Abort)
	return ch
}

func TestRoundTrip(t *testing.T) {
	i := startInbound(t, &calculator.Service{Name: "grpc"})
	calc := channel.Invoker(openChannel(t, NewBinding(), i.URL()), calculator.Contract())

	tests := []struct {
		msg    string
		method string
		args   []interface{}
		want   []interface{}
	}{
		{msg: "add", method: "Add", args: []interface{}{context.Background(), 1, 2}, want: []interface{}{3}},
		{msg: "variadic", method: "Sum", args: []interface{}{[]int{4, 5}}, want: []interface{}{9}},
		{msg: "describe", method: "Describe", args: []interface{}{context.Background()}, want: []interface{}{`calculator "grpc"`}},
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

func TestFaultTrailer(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	ch := openChannel(t, NewBinding(), i.URL())

	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Divide", context.Background(), 9, 0)
	require.Error(t, err)

	detail, ok := svcerrors.FaultDetail(err)
	require.True(t, ok)
	assert.Equal(t, calculator.DivideByZero{Dividend: 9}, detail)
	assert.Equal(t, lifecycle.Opened, ch.State())
}

func TestDeadline(t *testing.T) {
	i := startInbound(t, &slowService{})
	ch := openChannel(t, NewBinding(Timeout(20*time.Millisecond)), i.URL())

	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Reset", context.Background())
	assert.Equal(t, svcerrors.CodeDeadlineExceeded, svcerrors.FromError(err).Code())
	assert.Equal(t, lifecycle.Faulted, ch.State())
}

func TestUnreachable(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	address := i.URL()
	require.NoError(t, i.Stop())

	ch := openChannel(t, NewBinding(Timeout(100*time.Millisecond)), address)
	_, err := channel.Invoker(ch, calculator.Contract()).Invoke("Add", context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, lifecycle.Faulted, ch.State())
}

func TestSplitProcedurePath(t *testing.T) {
	tests := []struct {
		give          string
		wantService   string
		wantProcedure string
		wantErr       bool
	}{
		{give: "/example.com/calc.Calculator/Add", wantService: "example.com/calc.Calculator", wantProcedure: "Add"},
		{give: "svc/Add", wantService: "svc", wantProcedure: "Add"},
		{give: "/Add", wantErr: true},
		{give: "/svc/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			service, procedure, err := splitProcedurePath(tt.give)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantService, service)
			assert.Equal(t, tt.wantProcedure, procedure)
		})
	}
}

func TestNewFactoryAddressErrors(t *testing.T) {
	b := NewBinding()
	for _, address := range []string{"http://127.0.0.1:80", "grpc://", "://"} {
		_, err := b.NewFactory(calculator.Contract(), address)
		var addrErr *svcerrors.AddressFormatError
		assert.ErrorAs(t, err, &addrErr, address)
	}
}

func TestSpec(t *testing.T) {
	r, err := binding.NewRegistry(Spec())
	require.NoError(t, err)

	b, err := r.Build(BindingName, config.AttributeMap{"timeout": "150ms"})
	require.NoError(t, err)
	assert.Equal(t, "grpc(timeout=150ms)", b.Key())

	_, err = r.Build(BindingName, config.AttributeMap{"keepAlive": "1s"})
	assert.Error(t, err)
}

func TestPerCallProxy(t *testing.T) {
	i := startInbound(t, &calculator.Service{})
	f, err := NewBinding().NewFactory(calculator.Contract(), i.URL())
	require.NoError(t, err)

	typ, err := proxy.Generate(calculator.Contract(), proxy.PerCallUnthrowable)
	require.NoError(t, err)
	p, err := proxy.New(typ, f)
	require.NoError(t, err)

	calc, err := proxy.Stub[calculator.Calculator](p)
	require.NoError(t, err)

	got, err := calc.Divide(context.Background(), 1, 0)
	require.NoError(t, err, "faults are swallowed")
	assert.Zero(t, got)

	got, err = calc.Add(context.Background(), 20, 22)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, p.ChannelsCreated())
}
