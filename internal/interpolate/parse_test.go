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

package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapResolver(m map[string]string) VariableResolver {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		give string
		want String
	}{
		{give: "", want: nil},
		{give: "plain", want: String{literal("plain")}},
		{
			give: "http://${HOST}:${PORT:8080}/calc",
			want: String{
				literal("http://"),
				variable{Name: "HOST"},
				literal(":"),
				variable{Name: "PORT", Default: "8080", HasDefault: true},
				literal("/calc"),
			},
		},
		{
			give: "${empty:}",
			want: String{variable{Name: "empty", HasDefault: true}},
		},
		{
			give: "${a:b:c}",
			want: String{variable{Name: "a", Default: "b:c", HasDefault: true}},
		},
		{give: `cost \${price}`, want: String{literal("cost ${price}")}},
		{give: "$5 and $ {x}", want: String{literal("$5 and $ {x}")}},
		{give: "${b-a-r}", want: String{variable{Name: "b-a-r"}}},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			got, err := Parse(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFailures(t *testing.T) {
	for _, give := range []string{"${foo", "${}", "${foo.}", "${foo-}", "${foo--bar}", "${1abc}"} {
		t.Run(give, func(t *testing.T) {
			_, err := Parse(give)
			assert.Error(t, err)
		})
	}
}

func TestRender(t *testing.T) {
	s, err := Parse("http://${HOST}:${PORT:8080}/")
	require.NoError(t, err)

	out, err := s.Render(mapResolver(map[string]string{"HOST": "10.0.0.1"}))
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080/", out)

	out, err = s.Render(mapResolver(map[string]string{"HOST": "h", "PORT": "1"}))
	require.NoError(t, err)
	assert.Equal(t, "http://h:1/", out)

	_, err = s.Render(mapResolver(nil))
	assert.EqualError(t, err, `variable "HOST" does not have a value or a default`)
}
