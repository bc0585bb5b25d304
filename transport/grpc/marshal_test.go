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
	"testing"

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/wire"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/gogo/googleapis/google/rpc"
	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestFaultStatusRoundTrip(t *testing.T) {
	fault := svcerrors.NewFault(calculator.DivideByZero{Dividend: 3}, "cannot divide %d by zero", 3)

	body, err := marshalFault(fault)
	require.NoError(t, err)

	st, envelope, err := unmarshalFault(body)
	require.NoError(t, err)
	assert.Equal(t, codes.Unknown, st.Code())
	assert.Equal(t, fault.Message(), st.Message())
	require.NotNil(t, envelope)

	decoded := wire.DecodeFault(calculator.Contract(), envelope)
	detail, ok := svcerrors.FaultDetail(decoded)
	require.True(t, ok)
	assert.Equal(t, calculator.DivideByZero{Dividend: 3}, detail)
}

func TestFaultStatusWithoutEnvelope(t *testing.T) {
	body, err := proto.Marshal(&rpc.Status{Code: int32(codes.NotFound), Message: "gone"})
	require.NoError(t, err)

	st, envelope, err := unmarshalFault(body)
	require.NoError(t, err)
	assert.Nil(t, envelope)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "gone", st.Message())

	_, _, err = unmarshalFault([]byte{0xff, 0xff})
	assert.Error(t, err)
}
