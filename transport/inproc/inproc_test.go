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

package inproc

import (
	"context"
	"testing"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinding(t *testing.T) {
	r := NewRegistry()
	svc := &calculator.Service{}
	require.NoError(t, r.Register("Calc", svc))

	b := NewBinding(WithRegistry(r))
	f, err := b.NewFactory(calculator.Contract(), "inproc://calc")
	require.NoError(t, err)

	ch, err := f.NewChannel()
	require.NoError(t, err)
	require.NoError(t, ch.Open())

	got, err := channel.Invoker(ch, calculator.Contract()).Invoke("Add", context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{4}, got)
	assert.Equal(t, 1, svc.Calls())
}

func TestLateRegistration(t *testing.T) {
	r := NewRegistry()
	f, err := NewBinding(WithRegistry(r)).NewFactory(calculator.Contract(), "inproc://late")
	require.NoError(t, err)

	_, err = f.NewChannel()
	assert.True(t, svcerrors.IsUnavailable(err))

	require.NoError(t, r.Register("late", &calculator.Service{}))
	_, err = f.NewChannel()
	assert.NoError(t, err)
}

func TestWrongImplementation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("wrong", struct{}{}))

	f, err := NewBinding(WithRegistry(r)).NewFactory(calculator.Contract(), "inproc://wrong")
	require.NoError(t, err)

	_, err = f.NewChannel()
	assert.Equal(t, svcerrors.CodeUnimplemented, svcerrors.FromError(err).Code())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.True(t, svcerrors.IsInvalidArgument(r.Register("", &calculator.Service{})))
	assert.True(t, svcerrors.IsInvalidArgument(r.Register("x", nil)))

	require.NoError(t, r.Register("B", &calculator.Service{}))
	require.NoError(t, r.Register("a", &calculator.Service{}))
	err := r.Register("b", &calculator.Service{})
	assert.Equal(t, svcerrors.CodeAlreadyExists, svcerrors.FromError(err).Code())
	assert.Equal(t, []string{"a", "b"}, r.Names())

	r.Unregister("A")
	_, ok := r.Lookup("a")
	assert.False(t, ok)
}

func TestDefaultRegistry(t *testing.T) {
	require.NoError(t, Register("default-calc", &calculator.Service{}))
	defer Unregister("default-calc")

	reg, err := binding.NewRegistry(Spec())
	require.NoError(t, err)
	b, err := reg.Build(BindingName, config.AttributeMap{})
	require.NoError(t, err)
	assert.Equal(t, BindingName, b.Key())

	f, err := b.NewFactory(calculator.Contract(), "inproc://default-calc")
	require.NoError(t, err)
	_, err = f.NewChannel()
	assert.NoError(t, err)

	assert.NotEqual(t, BindingName, NewBinding(WithRegistry(NewRegistry())).Key())
}

func TestAddressErrors(t *testing.T) {
	b := NewBinding()
	for _, address := range []string{"http://calc", "inproc://", "://"} {
		_, err := b.NewFactory(calculator.Contract(), address)
		var addrErr *svcerrors.AddressFormatError
		assert.ErrorAs(t, err, &addrErr, address)
	}
}
