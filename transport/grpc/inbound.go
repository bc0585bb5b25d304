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
	"net"
	"strings"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/dispatch"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/grpcerrorcodes"
	inet "github.com/askguanyu/CodePlexDevLib-sub007/internal/net"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// InboundOption customizes the behavior of a gRPC Inbound.
type InboundOption func(*Inbound)

// InboundLogger sets a logger to use for internal logging.
func InboundLogger(logger *zap.Logger) InboundOption {
	return func(i *Inbound) {
		i.logger = logger
	}
}

// Inbound hosts implementations of contracts over gRPC.
type Inbound struct {
	addr   string
	router *dispatch.Router
	server *inet.Server
	logger *zap.Logger
}

// NewInbound builds an Inbound that will listen on addr once started.
func NewInbound(addr string, opts ...InboundOption) *Inbound {
	i := &Inbound{
		addr:   addr,
		router: dispatch.NewRouter(),
	}
	for _, opt := range opts {
		opt(i)
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
	server := grpc.NewServer(
		grpc.CustomCodec(rawCodec{}),
		grpc.UnknownServiceHandler(i.handleStream),
	)
	i.server = inet.NewServer(i.addr, server.Serve, server.Stop)
	if err := i.server.ListenAndServe(); err != nil {
		return err
	}
	i.logger.Info("gRPC inbound started.",
		zap.Stringer("addr", i.server.Addr()),
		zap.Strings("services", i.router.Services()))
	return nil
}

// Stop stops listening and closes open connections.
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

// URL returns the address channels use to reach this inbound.
func (i *Inbound) URL() string {
	return fmt.Sprintf("%s://%v", BindingName, i.Addr())
}

func (i *Inbound) handleStream(_ interface{}, stream grpc.ServerStream) error {
	fullMethod, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(grpcerrorcodes.ToGRPC(svcerrors.CodeInternal), "no method in stream")
	}
	service, procedure, err := splitProcedurePath(fullMethod)
	if err != nil {
		return status.Error(grpcerrorcodes.ToGRPC(svcerrors.CodeInvalidArgument), err.Error())
	}

	var body []byte
	if err := stream.RecvMsg(&body); err != nil {
		return err
	}

	res, err := i.router.Handle(stream.Context(), service, procedure, body)
	if err != nil {
		if details, marshalErr := marshalFault(err); marshalErr == nil {
			stream.SetTrailer(metadata.Pairs(FaultTrailer, string(details)))
		} else {
			i.logger.Warn("Could not marshal fault status.", zap.Error(marshalErr))
		}
		st := svcerrors.FromError(err)
		return status.Error(grpcerrorcodes.ToGRPC(st.Code()), st.Message())
	}
	return stream.SendMsg(&res)
}

func splitProcedurePath(fullMethod string) (service, procedure string, err error) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	pos := strings.LastIndex(fullMethod, "/")
	if pos <= 0 || pos == len(fullMethod)-1 {
		return "", "", fmt.Errorf("malformed method %q", fullMethod)
	}
	return fullMethod[:pos], fullMethod[pos+1:], nil
}
