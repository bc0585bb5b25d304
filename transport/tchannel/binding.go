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
	"fmt"
	"net/url"
	"strings"
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

// BindingName is the binding type name of TChannel bindings.
const BindingName = "tchannel"

const (
	defaultTimeout    = 30 * time.Second
	defaultCallerName = "svcclient"
)

type bindingOptions struct {
	caller  string
	timeout time.Duration
	tracer  opentracing.Tracer
	logger  *zap.Logger
}

// BindingOption customizes the behavior of a TChannel Binding.
type BindingOption func(*bindingOptions)

// CallerName is the TChannel service name channels call as. Defaults to
// "svcclient".
func CallerName(name string) BindingOption {
	return func(o *bindingOptions) {
		o.caller = name
	}
}

// Timeout bounds every call made through the binding. TChannel requires a
// deadline on every call; calls whose context has none get this one.
// Defaults to 30 seconds.
func Timeout(d time.Duration) BindingOption {
	return func(o *bindingOptions) {
		o.timeout = d
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

// Binding creates factories of TChannel channels. Every channel owns one
// TChannel, created when the channel opens.
type Binding struct {
	opts bindingOptions
}

var _ binding.Binding = (*Binding)(nil)

// NewBinding builds a TChannel Binding.
func NewBinding(opts ...BindingOption) *Binding {
	o := bindingOptions{
		caller:  defaultCallerName,
		timeout: defaultTimeout,
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

// Name returns "tchannel".
func (b *Binding) Name() string { return BindingName }

// Key identifies the binding by its caller name, its timeout and, unless
// it is a no-op, its tracer. Loggers do not take part.
func (b *Binding) Key() string {
	key := fmt.Sprintf("%s(caller=%s,timeout=%v", BindingName, b.opts.caller, b.opts.timeout)
	if _, noop := b.opts.tracer.(opentracing.NoopTracer); !noop {
		key += ",tracer=" + typename.Instance(b.opts.tracer)
	}
	return key + ")"
}

// NewFactory returns a factory of channels that call the contract at
// address, of the form "tchannel://host:port/<service>".
func (b *Binding) NewFactory(c *contract.Contract, address string) (channel.Factory, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: err.Error()}
	}
	if u.Scheme != BindingName {
		return nil, &svcerrors.AddressFormatError{
			Address: address,
			Reason:  fmt.Sprintf("scheme %q is not supported by the tchannel binding", u.Scheme),
		}
	}
	if u.Host == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "host is required"}
	}

	service := strings.TrimPrefix(u.Path, "/")
	if service == "" {
		service = c.Name()
	}
	return &factory{
		contract: c,
		hostPort: u.Host,
		service:  service,
		opts:     b.opts,
		logger:   b.opts.logger.With(zap.String("service", service), zap.String("hostPort", u.Host)),
	}, nil
}

// Spec returns the binding.Spec for the "tchannel" binding type. Endpoints
// may set the "caller" and "timeout" attributes.
func Spec(opts ...BindingOption) binding.Spec {
	return binding.Spec{
		Name: BindingName,
		Build: func(attrs config.AttributeMap) (binding.Binding, error) {
			all := append([]BindingOption(nil), opts...)

			var caller string
			ok, err := attrs.Pop("caller", &caller)
			if err != nil {
				return nil, err
			}
			if ok {
				all = append(all, CallerName(caller))
			}

			var timeout time.Duration
			ok, err = attrs.Pop("timeout", &timeout)
			if err != nil {
				return nil, err
			}
			if ok {
				all = append(all, Timeout(timeout))
			}
			return NewBinding(all...), nil
		},
	}
}
