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

// Package typename derives stable, fully-qualified names for Go types.
//
// Names are used as cache keys for contracts, as the path of synthesized
// endpoint addresses and as the fault type carried on the wire, so they must
// not depend on how a type is spelled at a call site.
package typename

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// names memoizes resolved names by type.
var names sync.Map // reflect.Type -> string

// Of returns "import/path.Name" for the nearest named type behind t,
// unwrapping pointers. Builtin types resolve to their bare name and unnamed
// composite types to their reflect spelling. Of(nil) is "".
func Of(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if v, ok := names.Load(t); ok {
		return v.(string)
	}

	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	var name string
	switch {
	case base.Name() == "":
		name = base.String()
	case base.PkgPath() == "":
		name = base.Name()
	default:
		name = base.PkgPath() + "." + stripTypeParams(base.Name())
	}

	names.Store(t, name)
	return name
}

// OfValue is Of(reflect.TypeOf(v)).
func OfValue(v interface{}) string {
	return Of(reflect.TypeOf(v))
}

// Short returns the last element of a fully-qualified name: "Name" for
// "import/path.Name".
func Short(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// stripTypeParams removes a generic instantiation suffix: "T[int]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// Instance names the value v: its type name, followed by its address when v
// is a pointer, map, channel or func. Distinct pointers of one type get
// distinct names; equal values of a struct type share one.
func Instance(v interface{}) string {
	if v == nil {
		return ""
	}
	name := OfValue(v)
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return name + "@" + strconv.FormatUint(uint64(rv.Pointer()), 16)
	}
	return name
}
