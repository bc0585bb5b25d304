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

package svcclient

import (
	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcconfig"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
)

// Option customizes a Client.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

type options struct {
	logger       *zap.Logger
	scope        tally.Scope
	tracer       opentracing.Tracer
	config       *svcconfig.Config
	specs        []binding.Spec
	hook         proxy.FaultHook
	factorySize  *int
	instanceSize *int
}

// WithLogger sets the logger of the client and of the bindings it builds.
// Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// WithTally sets the scope the client reports metrics to. Defaults to
// tally.NoopScope.
func WithTally(scope tally.Scope) Option {
	return optionFunc(func(o *options) {
		o.scope = scope
	})
}

// WithTracer sets the tracer of the bindings the client builds. Defaults to
// opentracing.GlobalTracer().
func WithTracer(tracer opentracing.Tracer) Option {
	return optionFunc(func(o *options) {
		o.tracer = tracer
	})
}

// WithConfig sets the configuration that named and default endpoints are
// read from. Its cache bounds and log levels apply unless other options
// override them.
func WithConfig(cfg *svcconfig.Config) Option {
	return optionFunc(func(o *options) {
		o.config = cfg
	})
}

// WithBindingSpec teaches the client a binding type, replacing a default
// one of the same name. The client knows the http, grpc, tchannel and
// inproc binding types by default.
func WithBindingSpec(s binding.Spec) Option {
	return optionFunc(func(o *options) {
		o.specs = append(o.specs, s)
	})
}

// WithFaultHook sets the hook that PerSessionUnwrapping proxies hand
// declared fault details to.
func WithFaultHook(h proxy.FaultHook) Option {
	return optionFunc(func(o *options) {
		o.hook = h
	})
}

// WithFactoryCacheSize bounds the channel factory cache. Factories evicted
// from a full cache are closed. Zero means unbounded.
func WithFactoryCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.factorySize = &n
	})
}

// WithInstanceCacheSize bounds the proxy instance cache. Proxies evicted
// from a full cache are forgotten, not closed. Zero means unbounded.
func WithInstanceCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.instanceSize = &n
	})
}
