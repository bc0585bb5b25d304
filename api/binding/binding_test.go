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

package binding_test

import (
	"testing"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBinding struct {
	name  string
	level string
}

func (b fakeBinding) Name() string { return b.name }
func (b fakeBinding) Key() string  { return b.name + "/" + b.level }
func (b fakeBinding) NewFactory(*contract.Contract, string) (channel.Factory, error) {
	return nil, nil
}

var fakeSpec = binding.Spec{
	Name: "fake",
	Build: func(attrs config.AttributeMap) (binding.Binding, error) {
		level, err := attrs.PopString("level")
		if err != nil {
			return nil, err
		}
		return fakeBinding{name: "fake", level: level}, nil
	},
}

func TestRegistry(t *testing.T) {
	r, err := binding.NewRegistry(fakeSpec)
	require.NoError(t, err)
	assert.Equal(t, []string{"fake"}, r.Names())

	attrs := config.AttributeMap{"level": "debug"}
	b, err := r.Build("fake", attrs)
	require.NoError(t, err)
	assert.Equal(t, "fake/debug", b.Key())
	assert.Equal(t, config.AttributeMap{"level": "debug"}, attrs, "caller attributes are not consumed")

	_, err = r.Build("fake", config.AttributeMap{"level": "x", "color": "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unrecognized attributes ["color"]`)

	_, err = r.Build("carrier-pigeon", nil)
	assert.True(t, svcerrors.IsNotFound(err))
}

func TestRegisterInvalid(t *testing.T) {
	tests := []struct {
		msg     string
		give    binding.Spec
		wantErr string
	}{
		{msg: "no name", give: binding.Spec{Build: fakeSpec.Build}, wantErr: "binding spec name is required"},
		{msg: "no build", give: binding.Spec{Name: "x"}, wantErr: `invalid binding spec for "x": Build is required`},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := binding.NewRegistry(tt.give)
			assert.EqualError(t, err, tt.wantErr)
			r, _ := binding.NewRegistry()
			assert.Panics(t, func() { r.MustRegister(tt.give) })
		})
	}
}
