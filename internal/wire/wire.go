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

// Package wire encodes calls, results and faults as JSON for the network
// bindings.
//
// A request body is a JSON array with one element per argument, excluding
// a leading context.Context. A response body is a JSON array with one
// element per result, excluding the error. A failed call is answered with
// a fault envelope instead.
package wire

import (
	"context"
	"fmt"
	"reflect"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/typename"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	jsoniter "github.com/json-iterator/go"
)

var _json = jsoniter.ConfigCompatibleWithStandardLibrary

// ContentType is the media type of every body this package produces.
const ContentType = "application/json"

// EncodeRequest encodes the arguments of a call to m. args holds the full
// parameter list, as given to channel.Channel.Invoke.
func EncodeRequest(m *contract.Method, args []reflect.Value) ([]byte, error) {
	return encodeValues(m.Payload(args))
}

// DecodeRequest decodes a request body into the full parameter list of m,
// with ctx in place of a leading context.Context.
func DecodeRequest(ctx context.Context, m *contract.Method, body []byte) ([]reflect.Value, error) {
	values, err := decodeValues(m.In, body)
	if err != nil {
		return nil, svcerrors.InvalidArgumentErrorf("failed to decode arguments of %q: %v", m.Name, err)
	}
	if m.HasContext {
		values = append([]reflect.Value{reflect.ValueOf(&ctx).Elem()}, values...)
	}
	return values, nil
}

// EncodeResponse encodes the results of a successful call.
func EncodeResponse(results []reflect.Value) ([]byte, error) {
	return encodeValues(results)
}

// DecodeResponse decodes a response body into the results of m.
func DecodeResponse(m *contract.Method, body []byte) ([]reflect.Value, error) {
	values, err := decodeValues(m.Out, body)
	if err != nil {
		return nil, svcerrors.InternalErrorf("failed to decode results of %q: %v", m.Name, err)
	}
	return values, nil
}

func encodeValues(values []reflect.Value) ([]byte, error) {
	items := make([]interface{}, len(values))
	for i, v := range values {
		if v.IsValid() {
			items[i] = v.Interface()
		}
	}
	return _json.Marshal(items)
}

func decodeValues(types []reflect.Type, body []byte) ([]reflect.Value, error) {
	var raw []jsoniter.RawMessage
	if len(body) > 0 {
		if err := _json.Unmarshal(body, &raw); err != nil {
			return nil, err
		}
	}
	if len(raw) != len(types) {
		return nil, fmt.Errorf("expected %d values, got %d", len(types), len(raw))
	}

	values := make([]reflect.Value, len(types))
	for i, t := range types {
		v := reflect.New(t)
		if err := _json.Unmarshal(raw[i], v.Interface()); err != nil {
			return nil, fmt.Errorf("value %d: %v", i, err)
		}
		values[i] = v.Elem()
	}
	return values, nil
}

type envelope struct {
	Code      svcerrors.Code      `json:"code"`
	Name      string              `json:"name,omitempty"`
	Message   string              `json:"message"`
	FaultType string              `json:"faultType,omitempty"`
	Detail    jsoniter.RawMessage `json:"detail,omitempty"`
}

// EncodeFault encodes err as a fault envelope. A fault detail carried by
// the error travels with its fully-qualified type name.
func EncodeFault(err error) []byte {
	st := svcerrors.FromError(err)
	env := envelope{
		Code:    st.Code(),
		Name:    st.Name(),
		Message: st.Message(),
	}
	if detail := st.Detail(); detail != nil {
		if raw, err := _json.Marshal(detail); err == nil {
			env.FaultType = typename.OfValue(detail)
			env.Detail = raw
		}
	}

	body, merr := _json.Marshal(env)
	if merr != nil {
		// The envelope only holds strings and already-encoded JSON.
		return []byte(fmt.Sprintf(`{"code":"internal","message":%q}`, merr.Error()))
	}
	return body
}

// DecodeFault decodes a fault envelope into a *svcerrors.Status. The detail
// is restored when its type is one of the contract's declared fault types;
// otherwise the Status keeps its name and code only.
func DecodeFault(c *contract.Contract, body []byte) error {
	var env envelope
	if err := _json.Unmarshal(body, &env); err != nil {
		return svcerrors.UnknownErrorf("malformed fault: %s", body)
	}

	code := env.Code
	if code == svcerrors.CodeOK {
		code = svcerrors.CodeUnknown
	}
	st := svcerrors.Newf(code, "%s", env.Message).WithName(env.Name)

	if env.FaultType == "" || c == nil {
		return st
	}
	ft, ok := c.FaultType(env.FaultType)
	if !ok {
		return st
	}

	elem := ft
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	v := reflect.New(elem)
	if err := _json.Unmarshal(env.Detail, v.Interface()); err != nil {
		return st
	}
	if ft.Kind() == reflect.Ptr {
		return st.WithDetail(v.Interface())
	}
	return st.WithDetail(v.Elem().Interface())
}
