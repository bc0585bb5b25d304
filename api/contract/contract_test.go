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

package contract_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type empty interface{}

type hidden interface {
	Visible() error
	hidden()
}

type overflow struct{}

func TestOfCalculator(t *testing.T) {
	c := calculator.Contract()

	assert.Equal(t,
		"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator.Calculator",
		c.Name())

	var names []string
	for _, m := range c.Methods() {
		names = append(names, m.Name)
	}
	// embedded Arithmetic methods are promoted
	assert.ElementsMatch(t, []string{"Add", "Describe", "Divide", "Reset", "Sum"}, names)

	tests := []struct {
		method      string
		wantIn      []reflect.Type
		wantOut     []reflect.Type
		wantContext bool
		wantError   bool
		wantVarargs bool
		wantFaults  int
	}{
		{
			method:      "Add",
			wantIn:      []reflect.Type{reflect.TypeOf(0), reflect.TypeOf(0)},
			wantOut:     []reflect.Type{reflect.TypeOf(0)},
			wantContext: true,
			wantError:   true,
		},
		{
			method:      "Divide",
			wantIn:      []reflect.Type{reflect.TypeOf(0), reflect.TypeOf(0)},
			wantOut:     []reflect.Type{reflect.TypeOf(0)},
			wantContext: true,
			wantError:   true,
			wantFaults:  1,
		},
		{
			method:      "Sum",
			wantIn:      []reflect.Type{reflect.TypeOf([]int{})},
			wantOut:     []reflect.Type{reflect.TypeOf(0)},
			wantVarargs: true,
		},
		{
			method:      "Reset",
			wantContext: true,
			wantError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, ok := c.Method(tt.method)
			require.True(t, ok)
			assert.Equal(t, tt.wantIn, m.In)
			assert.Equal(t, tt.wantOut, m.Out)
			assert.Equal(t, tt.wantContext, m.HasContext)
			assert.Equal(t, tt.wantError, m.HasError)
			assert.Equal(t, tt.wantVarargs, m.Variadic)
			assert.Len(t, m.Faults, tt.wantFaults)
			assert.Len(t, m.ZeroResults(), len(tt.wantOut))
		})
	}
}

func TestFaultLookup(t *testing.T) {
	c := calculator.Contract()
	divide, _ := c.Method("Divide")
	add, _ := c.Method("Add")

	assert.True(t, divide.DeclaresFault(calculator.DivideByZero{}))
	assert.True(t, divide.DeclaresFault(&calculator.DivideByZero{}), "pointer and value are alike")
	assert.False(t, add.DeclaresFault(calculator.DivideByZero{}))
	assert.False(t, divide.DeclaresFault(nil))

	ft, ok := c.FaultType("github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator.DivideByZero")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(calculator.DivideByZero{}), ft)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		msg  string
		give func() (*contract.Contract, error)
	}{
		{
			msg:  "not an interface",
			give: func() (*contract.Contract, error) { return contract.Of[calculator.Service]() },
		},
		{
			msg:  "nil type",
			give: func() (*contract.Contract, error) { return contract.New(nil) },
		},
		{
			msg:  "unexported method",
			give: func() (*contract.Contract, error) { return contract.Of[hidden]() },
		},
		{
			msg: "fault for unknown method",
			give: func() (*contract.Contract, error) {
				return contract.Of[calculator.Calculator](contract.WithFault("Multiply", overflow{}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := tt.give()
			require.Error(t, err)
			var genErr *svcerrors.TypeGenerationError
			assert.ErrorAs(t, err, &genErr)
			assert.True(t, svcerrors.IsInternal(err))
		})
	}
}

func TestEmptyContract(t *testing.T) {
	c, err := contract.Of[empty]()
	require.NoError(t, err)
	assert.Empty(t, c.Methods())
}

func TestWithFaultAll(t *testing.T) {
	c, err := contract.Of[calculator.Calculator](contract.WithFaultAll(overflow{}))
	require.NoError(t, err)
	for _, m := range c.Methods() {
		assert.True(t, m.DeclaresFault(overflow{}), m.Name)
	}
}

func TestValues(t *testing.T) {
	c := calculator.Contract()
	add, _ := c.Method("Add")

	values, err := add.Values([]interface{}{context.Background(), 1, 2})
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Len(t, add.Payload(values), 2)
	assert.NotNil(t, add.Context(values))

	values, err = add.Values([]interface{}{nil, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, context.Background(), add.Context(values), "nil context falls back to Background")

	_, err = add.Values([]interface{}{context.Background(), 1})
	assert.True(t, svcerrors.IsInvalidArgument(err))

	_, err = add.Values([]interface{}{context.Background(), "1", 2})
	assert.True(t, svcerrors.IsInvalidArgument(err))

	sum, _ := c.Method("Sum")
	values, err = sum.Values([]interface{}{[]int{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, context.Background(), sum.Context(values))
	assert.Len(t, sum.Payload(values), 1)
}

func TestCached(t *testing.T) {
	a := calculator.Contract()
	b, err := contract.Cached[calculator.Calculator]()
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = contract.Cached[calculator.Service]()
	assert.Error(t, err)
}
