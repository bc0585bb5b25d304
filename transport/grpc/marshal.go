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
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/grpcerrorcodes"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/gogo/googleapis/google/rpc"
	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/types"
	"github.com/gogo/status"
)

// marshalFault encodes err as a google.rpc.Status whose only detail is
// the fault envelope, held in a BytesValue.
func marshalFault(err error) ([]byte, error) {
	st := svcerrors.FromError(err)
	withDetails, detailErr := status.New(grpcerrorcodes.ToGRPC(st.Code()), st.Message()).
		WithDetails(&types.BytesValue{Value: wire.EncodeFault(err)})
	if detailErr != nil {
		return nil, detailErr
	}
	return proto.Marshal(withDetails.Proto())
}

// unmarshalFault decodes a marshalFault body. The envelope is nil when
// the status carries none.
func unmarshalFault(body []byte) (*status.Status, []byte, error) {
	pb := &rpc.Status{}
	if err := proto.Unmarshal(body, pb); err != nil {
		return nil, nil, err
	}
	st := status.FromProto(pb)
	for _, detail := range st.Details() {
		if v, ok := detail.(*types.BytesValue); ok {
			return st, v.Value, nil
		}
	}
	return st, nil, nil
}
