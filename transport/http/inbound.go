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
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/dispatch"
	inet "github.com/askguanyu/CodePlexDevLib-sub007/internal/net"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
)

// InboundOption customizes the behavior of an HTTP Inbound.
type InboundOption func(*Inbound)

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

// Inbound hosts implementations of contracts over HTTP.
type Inbound struct {
	addr   string
	router *dispatch.Router
	server *inet.Server
	tracer opentracing.Tracer
	logger *zap.Logger
}

// NewInbound builds an Inbound that will listen on addr, such as
// "127.0.0.1:0", once started.
func NewInbound(addr string, opts ...InboundOption) *Inbound {
	i := &Inbound{
		addr:   addr,
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
	return i
}

// Register serves impl as the implementation of contract c.
func (i *Inbound) Register(c *contract.Contract, impl interface{}) error {
	h, err := dispatch.NewHandler(c, impl, i.logger)
	if err != nil {
		return err
	}
	return i.router.Register(h)
}

// Start starts listening in the background.
func (i *Inbound) Start() error {
	i.server = inet.NewHTTPServer(&http.Server{
		Addr:    i.addr,
		Handler: i,
	})
	if err := i.server.ListenAndServe(); err != nil {
		return err
	}
	i.logger.Info("HTTP inbound started.",
		zap.Stringer("addr", i.server.Addr()),
		zap.Strings("services", i.router.Services()))
	return nil
}

// Stop stops listening.
func (i *Inbound) Stop() error {
	if i.server == nil {
		return nil
	}
	return i.server.Stop()
}

// Addr returns the address the inbound listens on, or nil if it was not
// started.
func (i *Inbound) Addr() net.Addr {
	if i.server == nil {
		return nil
	}
	return i.server.Addr()
}

// URL returns the address of contract c on this inbound, in the form
// host/port destinations use.
func (i *Inbound) URL(c *contract.Contract) string {
	return fmt.Sprintf("http://%v/%s", i.Addr(), c.Name())
}

// ServeHTTP dispatches one call.
func (i *Inbound) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	defer req.Body.Close()

	res, err := i.handle(start, req)
	w.Header().Set("Content-Type", wire.ContentType)
	w.Header().Set(ApplicationStatusHeader, applicationStatusValue(err != nil))
	if err != nil {
		st := svcerrors.FromError(err)
		w.Header().Set(ErrorCodeHeader, st.Code().String())
		if st.Name() != "" {
			w.Header().Set(ErrorNameHeader, st.Name())
		}
		w.WriteHeader(codeToStatusCode(st.Code()))
		_, _ = w.Write(wire.EncodeFault(err))
		return
	}
	_, _ = w.Write(res)
}

func (i *Inbound) handle(start time.Time, req *http.Request) ([]byte, error) {
	if req.Method != http.MethodPost {
		return nil, svcerrors.Newf(svcerrors.CodeNotFound, "method %q is not supported", req.Method)
	}

	service := req.Header.Get(ServiceHeader)
	if service == "" {
		service = strings.TrimPrefix(req.URL.Path, "/")
	}
	procedure := req.Header.Get(ProcedureHeader)
	if procedure == "" {
		return nil, svcerrors.InvalidArgumentErrorf("missing %s header", ProcedureHeader)
	}

	ctx, cancel, err := parseTTL(req.Context(), req.Header.Get(TTLMSHeader))
	defer cancel()
	if err != nil {
		return nil, err
	}

	ctx, span := i.createSpan(ctx, req, service, procedure, start)
	defer span.Finish()

	body, err := ioutil.ReadAll(req.Body)
	if err != nil {
		updateSpanWithErr(span, err)
		return nil, svcerrors.InvalidArgumentErrorf("failed to read request body: %v", err)
	}

	res, err := i.router.Handle(ctx, service, procedure, body)
	updateSpanWithErr(span, err)
	return res, err
}

func parseTTL(ctx context.Context, ttl string) (context.Context, context.CancelFunc, error) {
	if ttl == "" {
		return ctx, func() {}, nil
	}
	ms, err := strconv.Atoi(ttl)
	if err != nil || ms < 0 {
		return ctx, func() {}, svcerrors.InvalidArgumentErrorf(
			"invalid TTL %q: must be a non-negative integer", ttl)
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
	return ctx, cancel, nil
}

func updateSpanWithErr(span opentracing.Span, err error) {
	if err != nil {
		span.SetTag("error", true)
		span.LogEvent(err.Error())
	}
}

func (i *Inbound) createSpan(ctx context.Context, req *http.Request, service, procedure string, start time.Time) (context.Context, opentracing.Span) {
	carrier := opentracing.HTTPHeadersCarrier(req.Header)
	parentSpanCtx, _ := i.tracer.Extract(opentracing.HTTPHeaders, carrier)
	// parentSpanCtx may be nil, ext.RPCServerOption handles a nil parent
	// gracefully.
	span := i.tracer.StartSpan(
		procedure,
		opentracing.StartTime(start),
		opentracing.Tags{
			"rpc.service":   service,
			"rpc.encoding":  "json",
			"rpc.transport": BindingName,
		},
		ext.RPCServerOption(parentSpanCtx), // implies ChildOf
	)
	ctx = opentracing.ContextWithSpan(ctx, span)
	return ctx, span
}
