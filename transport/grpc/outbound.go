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
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/grpcerrorcodes"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/outbound"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type factory struct {
	contract *contract.Contract
	target   string
	timeout  time.Duration
	logger   *zap.Logger
}

func (f *factory) NewChannel() (channel.Channel, error) {
	var conn atomic.Value // *grpc.ClientConn

	return outbound.NewChannel(
		outbound.CallerFunc(func(ctx context.Context, m *contract.Method, body []byte) ([]byte, error) {
			return f.call(ctx, conn.Load().(*grpc.ClientConn), m, body)
		}),
		outbound.OnOpen(func() error {
			cc, err := grpc.Dial(f.target,
				grpc.WithInsecure(),
				grpc.WithDefaultCallOptions(grpc.CallCustomCodec(rawCodec{})),
			)
			if err != nil {
				return svcerrors.UnavailableErrorf("failed to dial %v: %v", f.target, err)
			}
			conn.Store(cc)
			return nil
		}),
		outbound.OnClose(func() error {
			if cc, ok := conn.Load().(*grpc.ClientConn); ok {
				return cc.Close()
			}
			return nil
		}),
		outbound.Name(BindingName),
	), nil
}

// Close is a no-op: connections belong to channels.
func (f *factory) Close() error { return nil }

func (f *factory) call(ctx context.Context, cc *grpc.ClientConn, m *contract.Method, body []byte) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok && f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var (
		res     []byte
		trailer metadata.MD
	)
	err := cc.Invoke(ctx, procedurePath(f.contract.Name(), m.Name), &body, &res, grpc.Trailer(&trailer))
	if err != nil {
		return nil, f.fault(err, trailer)
	}
	return res, nil
}

func (f *factory) fault(err error, trailer metadata.MD) error {
	if details := trailer.Get(FaultTrailer); len(details) > 0 {
		st, envelope, err := unmarshalFault([]byte(details[0]))
		switch {
		case err != nil:
			return svcerrors.InternalErrorf("malformed fault status: %v", err)
		case envelope != nil:
			return wire.DecodeFault(f.contract, envelope)
		default:
			return svcerrors.Newf(grpcerrorcodes.FromGRPC(st.Code()), "%s", st.Message())
		}
	}

	st, ok := status.FromError(err)
	if !ok {
		return svcerrors.UnavailableErrorf("%v", err)
	}
	if st.Code() == codes.Unavailable {
		f.logger.Debug("gRPC call failed.", zap.Error(err))
	}
	return svcerrors.Newf(grpcerrorcodes.FromGRPC(st.Code()), "%s", st.Message())
}

func procedurePath(service, procedure string) string {
	return "/" + service + "/" + procedure
}
