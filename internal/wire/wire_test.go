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

package wire

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

type shapes interface {
	Move(ctx context.Context, p point, by ...int) (point, error)
}

type ledger interface {
	Put(values map[string]int) (map[string]int, error)
}

type outOfBounds struct {
	Limit int `json:"limit"`
}

func TestRequestRoundTrip(t *testing.T) {
	c, err := contract.Of[shapes](contract.WithFault("Move", &outOfBounds{}))
	require.NoError(t, err)
	move, _ := c.Method("Move")

	ctx := context.Background()
	args := []reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(point{X: 1, Y: 2}),
		reflect.ValueOf([]int{3, 4}),
	}

	body, err := EncodeRequest(move, args)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"X":1,"Y":2},[3,4]]`, string(body))

	decoded, err := DecodeRequest(ctx, move, body)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.Equal(t, ctx, decoded[0].Interface())
	if diff := cmp.Diff(point{X: 1, Y: 2}, decoded[1].Interface()); diff != "" {
		t.Errorf("point mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{3, 4}, decoded[2].Interface())
}

func TestMapRoundTrip(t *testing.T) {
	c, err := contract.Of[ledger]()
	require.NoError(t, err)
	put, _ := c.Method("Put")
	values := map[string]int{"a": 1, "b": 2}

	body, err := EncodeRequest(put, []reflect.Value{reflect.ValueOf(values)})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"a":1,"b":2}]`, string(body))

	decoded, err := DecodeRequest(context.Background(), put, body)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, values, decoded[0].Interface())

	body, err = EncodeResponse([]reflect.Value{reflect.ValueOf(values)})
	require.NoError(t, err)
	out, err := DecodeResponse(put, body)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, values, out[0].Interface())
}

func TestDecodeRequestErrors(t *testing.T) {
	add, _ := calculator.Contract().Method("Add")

	tests := []struct {
		msg  string
		give string
	}{
		{msg: "not json", give: "{"},
		{msg: "wrong arity", give: "[1]"},
		{msg: "wrong type", give: `["one", 2]`},
		{msg: "empty body", give: ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := DecodeRequest(context.Background(), add, []byte(tt.give))
			assert.True(t, svcerrors.IsInvalidArgument(err))
		})
	}

	reset, _ := calculator.Contract().Method("Reset")
	values, err := DecodeRequest(context.Background(), reset, nil)
	require.NoError(t, err, "an empty body is an empty argument list")
	assert.Len(t, values, 1)
}

func TestResponseRoundTrip(t *testing.T) {
	describe, _ := calculator.Contract().Method("Describe")

	body, err := EncodeResponse([]reflect.Value{reflect.ValueOf("calc")})
	require.NoError(t, err)
	assert.Equal(t, `["calc"]`, string(body))

	out, err := DecodeResponse(describe, body)
	require.NoError(t, err)
	assert.Equal(t, "calc", out[0].Interface())

	_, err = DecodeResponse(describe, []byte(`[]`))
	assert.True(t, svcerrors.IsInternal(err))

	reset, _ := calculator.Contract().Method("Reset")
	body, err = EncodeResponse(nil)
	require.NoError(t, err)
	out, err = DecodeResponse(reset, body)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFaultRoundTrip(t *testing.T) {
	c := calculator.Contract()

	fault := svcerrors.NewFault(calculator.DivideByZero{Dividend: 3}, "cannot divide %d by zero", 3)
	body := EncodeFault(fault)
	assert.JSONEq(t, `{
		"code": "unknown",
		"name": "github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator.DivideByZero",
		"message": "cannot divide 3 by zero",
		"faultType": "github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator.DivideByZero",
		"detail": {"dividend": 3}
	}`, string(body))

	err := DecodeFault(c, body)
	detail, ok := svcerrors.FaultDetail(err)
	require.True(t, ok)
	assert.Equal(t, calculator.DivideByZero{Dividend: 3}, detail)
	assert.Equal(t, fault.Error(), err.Error())
}

func TestFaultPointerDetail(t *testing.T) {
	c, err := contract.Of[shapes](contract.WithFault("Move", &outOfBounds{}))
	require.NoError(t, err)

	body := EncodeFault(svcerrors.NewFault(&outOfBounds{Limit: 10}, "too far"))
	got := DecodeFault(c, body)
	detail, ok := svcerrors.FaultDetail(got)
	require.True(t, ok)
	assert.Equal(t, &outOfBounds{Limit: 10}, detail)
}

func TestFaultWithoutDeclaredType(t *testing.T) {
	body := EncodeFault(svcerrors.NewFault(outOfBounds{Limit: 1}, "too far"))

	err := DecodeFault(calculator.Contract(), body)
	_, ok := svcerrors.FaultDetail(err)
	assert.False(t, ok, "undeclared detail types are not restored")
	assert.Equal(t, "github.com/askguanyu/CodePlexDevLib-sub007/internal/wire.outOfBounds", svcerrors.FromError(err).Name())
}

func TestPlainErrors(t *testing.T) {
	tests := []struct {
		msg      string
		give     error
		wantCode svcerrors.Code
	}{
		{msg: "status", give: svcerrors.UnavailableErrorf("down"), wantCode: svcerrors.CodeUnavailable},
		{msg: "plain", give: errors.New("oops"), wantCode: svcerrors.CodeUnknown},
		{msg: "address", give: &svcerrors.AddressFormatError{Address: "x", Reason: "bad"}, wantCode: svcerrors.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := DecodeFault(nil, EncodeFault(tt.give))
			assert.Equal(t, tt.wantCode, svcerrors.FromError(err).Code())
		})
	}

	err := DecodeFault(nil, []byte("<html>"))
	assert.Equal(t, svcerrors.CodeUnknown, svcerrors.FromError(err).Code())

	err = DecodeFault(nil, []byte(`{"code":"ok","message":"fine"}`))
	assert.Equal(t, svcerrors.CodeUnknown, svcerrors.FromError(err).Code(), "faults never decode as OK")
}
