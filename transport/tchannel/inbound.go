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
	"fmt"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/dispatch"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/uber/tchannel-go"
	"github.com/uber/tchannel-go/raw"
	"go.uber.org/zap"
)

const defaultInboundName = "svchost"

// InboundOption customizes the behavior of a TChannel Inbound.
type InboundOption func(*Inbound)

// ServiceName sets the name of the inbound's own TChannel. Contracts are
// still served under their own service names. Defaults to "svchost".
func ServiceName(name string) InboundOption {
	return func(i *Inbound) {
		i.name = name
	}
}

// InboundTracer configures a tracer for the inbound. Defaults to the global
// opentracing tracer.
func InboundTracer(tracer opentracing.Tracer) InboundOption {
	return func(i *Inbound) {
		i.tracer = tracer
	}
}

// InboundLogger sets a logger to use for internal logging.
func InboundLogger(logger *zap.Logger) InboundOption {
	return func(i *Inbound) {
		i.logger = logger
	}
}

// Inbound hosts implementations of contracts over TChannel.
type Inbound struct {
	addr   string
	name   string
	ch     *tchannel.Channel
	router *dispatch.Router
	tracer opentracing.Tracer
	logger *zap.Logger
}

// NewInbound builds an Inbound that will listen on addr once started.
func NewInbound(addr string, opts ...InboundOption) (*Inbound, error) {
	i := &Inbound{
		addr:   addr,
		name:   defaultInboundName,
		router: dispatch.NewRouter(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.tracer == nil {
		i.tracer = opentracing.GlobalTracer()
	}
	if i.logger == nil {
		i.logger = zap.NewNop()
	}

	ch, err := tchannel.NewChannel(i.name, &tchannel.ChannelOptions{})
	if err != nil {
		return nil, err
	}
	i.ch = ch
	return i, nil
}

// Register serves impl as the implementation of contract c, under the
// contract's name.
func (i *Inbound) Register(c *contract.Contract, impl interface{}) error {
	h, err := dispatch.NewHandler(c, impl, i.logger)
	if err != nil {
		return err
	}
	if err := i.router.Register(h); err != nil {
		return err
	}

	sc := i.ch.GetSubChannel(c.Name())
	handler := raw.Wrap(rawHandler{inbound: i, service: c.Name()})
	for _, m := range c.Methods() {
		sc.Register(handler, m.Name)
	}
	return nil
}

// Start starts listening in the background.
func (i *Inbound) Start() error {
	if err := i.ch.ListenAndServe(i.addr); err != nil {
		return err
	}
	i.logger.Info("TChannel inbound started.",
		zap.String("hostPort", i.ch.PeerInfo().HostPort),
		zap.Strings("services", i.router.Services()))
	return nil
}

// Stop closes the inbound's TChannel.
func (i *Inbound) Stop() error {
	i.ch.Close()
	return nil
}

// HostPort returns the address the inbound listens on.
func (i *Inbound) HostPort() string {
	return i.ch.PeerInfo().HostPort
}

// URL returns the address of contract c on this inbound.
func (i *Inbound) URL(c *contract.Contract) string {
	return fmt.Sprintf("%s://%s/%s", BindingName, i.HostPort(), c.Name())
}

type rawHandler struct {
	inbound *Inbound
	service string
}

func (h rawHandler) Handle(ctx context.Context, args *raw.Args) (*raw.Res, error) {
	hdrs, err := decodeHeaders(args.Arg2)
	if err != nil {
		return nil, tchannel.NewSystemError(tchannel.ErrCodeBadRequest, "malformed headers: %v", err)
	}

	parent, _ := h.inbound.tracer.Extract(opentracing.TextMap, tracingCarrier(hdrs))
	span := h.inbound.tracer.StartSpan(
		args.Method,
		opentracing.Tags{
			"rpc.caller":    args.Caller,
			"rpc.service":   h.service,
			"rpc.encoding":  "json",
			"rpc.transport": BindingName,
		},
		ext.RPCServerOption(parent),
	)
	defer span.Finish()
	ctx = opentracing.ContextWithSpan(ctx, span)

	res, err := h.inbound.router.Handle(ctx, h.service, args.Method, args.Arg3)
	if err != nil {
		span.SetTag("error", true)
		span.LogEvent(err.Error())
		return &raw.Res{IsErr: true, Arg3: wire.EncodeFault(err)}, nil
	}
	return &raw.Res{Arg3: res}, nil
}

func (h rawHandler) OnError(ctx context.Context, err error) {
	h.inbound.logger.Error("TChannel call failed.", zap.String("service", h.service), zap.Error(err))
}
