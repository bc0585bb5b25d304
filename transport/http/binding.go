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
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/typename"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type bindingOptions struct {
	timeout   time.Duration
	keepAlive time.Duration
	tracer    opentracing.Tracer
	logger    *zap.Logger
}

// BindingOption customizes the behavior of an HTTP Binding.
type BindingOption func(*bindingOptions)

// Timeout bounds every call made through the binding. Calls whose context
// has an earlier deadline keep it. Defaults to 30 seconds.
func Timeout(d time.Duration) BindingOption {
	return func(o *bindingOptions) {
		o.timeout = d
	}
}

// KeepAlive specifies the keep-alive period for the network connection. If
// zero, keep-alives are disabled. Defaults to 30 seconds.
func KeepAlive(d time.Duration) BindingOption {
	return func(o *bindingOptions) {
		o.keepAlive = d
	}
}

// Tracer configures a tracer for the binding. Defaults to the global
// opentracing tracer.
func Tracer(tracer opentracing.Tracer) BindingOption {
	return func(o *bindingOptions) {
		o.tracer = tracer
	}
}

// Logger sets a logger to use for internal logging.
func Logger(logger *zap.Logger) BindingOption {
	return func(o *bindingOptions) {
		o.logger = logger
	}
}

// Binding creates channel factories that POST calls to HTTP addresses.
type Binding struct {
	opts bindingOptions
}

var _ binding.Binding = (*Binding)(nil)

// NewBinding builds an HTTP Binding.
func NewBinding(opts ...BindingOption) *Binding {
	o := bindingOptions{
		timeout:   defaultTimeout,
		keepAlive: defaultKeepAlive,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = opentracing.GlobalTracer()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return &Binding{opts: o}
}

// Name returns "http".
func (b *Binding) Name() string { return BindingName }

// Key identifies the binding by its timeouts and, unless it is a no-op,
// its tracer. Loggers do not take part: bindings that differ only in their
// logger share cached factories.
func (b *Binding) Key() string {
	key := fmt.Sprintf("%s(timeout=%v,keepAlive=%v", BindingName, b.opts.timeout, b.opts.keepAlive)
	if _, noop := b.opts.tracer.(opentracing.NoopTracer); !noop {
		key += ",tracer=" + typename.Instance(b.opts.tracer)
	}
	return key + ")"
}

// NewFactory returns a factory of channels that call the contract at
// address, which must be an http or https URL.
func (b *Binding) NewFactory(c *contract.Contract, address string) (channel.Factory, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &svcerrors.AddressFormatError{
			Address: address,
			Reason:  fmt.Sprintf("scheme %q is not supported by the http binding", u.Scheme),
		}
	}
	if u.Host == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "host is required"}
	}

	return &factory{
		contract:  c,
		url:       u.String(),
		timeout:   b.opts.timeout,
		tracer:    b.opts.tracer,
		logger:    b.opts.logger.With(zap.String("service", c.Name()), zap.String("address", u.String())),
		transport: b.buildTransport(),
	}, nil
}

func (b *Binding) buildTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   b.opts.timeout,
		KeepAlive: b.opts.keepAlive,
	}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		DisableKeepAlives:   b.opts.keepAlive == 0,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
	}
}

// Spec returns the binding.Spec for the "http" binding type. Endpoints may
// set the "timeout" and "keepAlive" attributes; opts apply to every
// binding it builds, before the attributes.
func Spec(opts ...BindingOption) binding.Spec {
	return binding.Spec{
		Name: BindingName,
		Build: func(attrs config.AttributeMap) (binding.Binding, error) {
			all := append([]BindingOption(nil), opts...)

			var timeout time.Duration
			ok, err := attrs.Pop("timeout", &timeout)
			if err != nil {
				return nil, err
			}
			if ok {
				all = append(all, Timeout(timeout))
			}

			var keepAlive time.Duration
			ok, err = attrs.Pop("keepAlive", &keepAlive)
			if err != nil {
				return nil, err
			}
			if ok {
				all = append(all, KeepAlive(keepAlive))
			}

			return NewBinding(all...), nil
		},
	}
}
