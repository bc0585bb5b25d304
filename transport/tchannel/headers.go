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

package tchannel

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/opentracing/opentracing-go"
)

const tracingKeyPrefix = "$tracing$"

var _json = jsoniter.ConfigCompatibleWithStandardLibrary

// headers travel in arg2 as a JSON object.
type headers map[string]string

func (h headers) encode() ([]byte, error) {
	if len(h) == 0 {
		return nil, nil
	}
	return _json.Marshal(map[string]string(h))
}

func decodeHeaders(arg2 []byte) (headers, error) {
	h := make(headers)
	if len(arg2) == 0 {
		return h, nil
	}
	if err := _json.Unmarshal(arg2, (*map[string]string)(&h)); err != nil {
		return nil, err
	}
	return h, nil
}

// tracingCarrier stores tracing headers among the headers with the
// "$tracing$" prefix that TChannel uses for them.
type tracingCarrier headers

var (
	_ opentracing.TextMapReader = tracingCarrier{}
	_ opentracing.TextMapWriter = tracingCarrier{}
)

// ForeachKey calls handler for every tracing header, without its prefix.
func (c tracingCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, v := range c {
		if !strings.HasPrefix(k, tracingKeyPrefix) {
			continue
		}
		if err := handler(strings.TrimPrefix(k, tracingKeyPrefix), v); err != nil {
			return err
		}
	}
	return nil
}

// Set adds a tracing header.
func (c tracingCarrier) Set(key, val string) {
	c[tracingKeyPrefix+key] = val
}
