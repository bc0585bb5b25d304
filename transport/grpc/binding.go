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
	"fmt"
	"net/url"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

type bindingOptions struct {
	timeout time.Duration
	logger  *zap.Logger
}

// BindingOption customizes the behavior of a gRPC Binding.
type BindingOption func(*bindingOptions)

// Timeout bounds every call made through the binding. Calls whose context
// has an earlier deadline keep it. Defaults to 30 seconds.
func Timeout(d time.Duration) BindingOption {
	return func(o *bindingOptions) {
		o.timeout = d
	}
}

// Logger sets a logger to use for internal logging.
func Logger(logger *zap.Logger) BindingOption {
	return func(o *bindingOptions) {
		o.logger = logger
	}
}

// Binding creates factories of gRPC channels. Every channel owns one client
// connection, dialed when the channel opens.
type Binding struct {
	opts bindingOptions
}

var _ binding.Binding = (*Binding)(nil)

// NewBinding builds a gRPC Binding.
func NewBinding(opts ...BindingOption) *Binding {
	o := bindingOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return &Binding{opts: o}
}

// Name returns "grpc".
func (b *Binding) Name() string { return BindingName }

// Key identifies the binding by its timeout.
func (b *Binding) Key() string {
	return fmt.Sprintf("%s(timeout=%v)", BindingName, b.opts.timeout)
}

// NewFactory returns a factory of channels that call the contract at
// address, of the form "grpc://host:port".
func (b *Binding) NewFactory(c *contract.Contract, address string) (channel.Factory, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: err.Error()}
	}
	if u.Scheme != BindingName {
		return nil, &svcerrors.AddressFormatError{
			Address: address,
			Reason:  fmt.Sprintf("scheme %q is not supported by the grpc binding", u.Scheme),
		}
	}
	if u.Host == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "host is required"}
	}

	return &factory{
		contract: c,
		target:   u.Host,
		timeout:  b.opts.timeout,
		logger:   b.opts.logger.With(zap.String("service", c.Name()), zap.String("target", u.Host)),
	}, nil
}

// Spec returns the binding.Spec for the "grpc" binding type. Endpoints may
// set the "timeout" attribute.
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
			return NewBinding(all...), nil
		},
	}
}
