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

// Package clientfx provides a svcclient.Client to fx applications.
package clientfx

import (
	"context"

	svcclient "github.com/askguanyu/CodePlexDevLib-sub007"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcconfig"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a *svcclient.Client that is closed when the application
// stops.
var Module = fx.Options(
	fx.Provide(NewClient),
)

// ClientParams defines the dependencies of this module.
type ClientParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *svcconfig.Config  `optional:"true"`
	Logger    *zap.Logger        `optional:"true"`
	Scope     tally.Scope        `optional:"true"`
	Tracer    opentracing.Tracer `optional:"true"`
	FaultHook proxy.FaultHook    `optional:"true"`
	Bindings  []binding.Spec     `group:"svcclientbindings"`
}

// ClientResult defines the values produced by this module.
type ClientResult struct {
	fx.Out

	Client *svcclient.Client
}

// NewClient produces a svcclient.Client.
func NewClient(p ClientParams) (ClientResult, error) {
	opts := []svcclient.Option{
		svcclient.WithConfig(p.Config),
		svcclient.WithLogger(p.Logger),
		svcclient.WithTally(p.Scope),
		svcclient.WithTracer(p.Tracer),
		svcclient.WithFaultHook(p.FaultHook),
	}
	for _, s := range p.Bindings {
		opts = append(opts, svcclient.WithBindingSpec(s))
	}

	client, err := svcclient.New(opts...)
	if err != nil {
		return ClientResult{}, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return ClientResult{Client: client}, nil
}
