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

// Package config decodes loosely typed configuration into Go values.
package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/interpolate"
	"github.com/uber-go/mapdecode"
)

const (
	_tagName           = "config"
	_interpolateOption = "interpolate"
)

// AttributeMap holds the free-form attributes of a configuration section,
// such as the options of a binding. Bindings pop the attributes they know
// and reject whatever is left over.
type AttributeMap map[string]interface{}

// PopString removes the named attribute and decodes it as a string.
func (m AttributeMap) PopString(name string) (s string, err error) {
	_, err = m.Pop(name, &s)
	return
}

// PopBool removes the named attribute and decodes it as a bool.
func (m AttributeMap) PopBool(name string) (b bool, err error) {
	_, err = m.Pop(name, &b)
	return
}

// PopInt removes the named attribute and decodes it as an int.
func (m AttributeMap) PopInt(name string) (i int, err error) {
	_, err = m.Pop(name, &i)
	return
}

// PopDuration removes the named attribute and decodes it as a duration.
// Strings like "2s" are accepted.
func (m AttributeMap) PopDuration(name string) (d time.Duration, err error) {
	_, err = m.Pop(name, &d)
	return
}

// Pop removes the named attribute and decodes it into dst. It reports
// whether the attribute was present.
func (m AttributeMap) Pop(name string, dst interface{}) (ok bool, err error) {
	ok, err = m.Get(name, dst)
	if ok {
		delete(m, name)
	}
	return
}

// Get decodes the named attribute into dst without removing it.
func (m AttributeMap) Get(name string, dst interface{}) (ok bool, err error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	if err := DecodeInto(dst, v); err != nil {
		return true, fmt.Errorf("failed to read attribute %q: %v", name, v)
	}
	return true, nil
}

// Keys returns the attribute names in sorted order.
func (m AttributeMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Decode decodes the whole map into dst.
func (m AttributeMap) Decode(dst interface{}, opts ...mapdecode.Option) error {
	return DecodeInto(dst, m, opts...)
}

// Unused returns an error naming the attributes nobody popped, or nil.
func (m AttributeMap) Unused() error {
	if len(m) == 0 {
		return nil
	}
	return fmt.Errorf("unrecognized attributes %q", m.Keys())
}

// DecodeInto decodes src into dst, reading field names from `config` tags.
func DecodeInto(dst interface{}, src interface{}, opts ...mapdecode.Option) error {
	opts = append(opts, mapdecode.TagName(_tagName))
	return mapdecode.Decode(dst, src, opts...)
}

// InterpolateWith expands variables in string values of struct fields
// tagged with the `interpolate` option, as in `config:"address,interpolate"`.
// Non-string values of such fields are left alone.
func InterpolateWith(resolver interpolate.VariableResolver) mapdecode.Option {
	return mapdecode.FieldHook(func(dest reflect.StructField, srcData reflect.Value) (reflect.Value, error) {
		if !hasOption(dest.Tag.Get(_tagName), _interpolateOption) {
			return srcData, nil
		}

		v, ok := srcData.Interface().(string)
		if !ok {
			return srcData, nil
		}

		s, err := interpolate.Parse(v)
		if err != nil {
			return srcData, fmt.Errorf("failed to parse %q for interpolation: %v", v, err)
		}

		rendered, err := s.Render(resolver)
		if err != nil {
			return srcData, fmt.Errorf("failed to render %q with environment variables: %v", v, err)
		}
		return reflect.ValueOf(rendered), nil
	})
}

func hasOption(tag, option string) bool {
	parts := strings.Split(tag, ",")
	for _, o := range parts[1:] {
		if o == option {
			return true
		}
	}
	return false
}
