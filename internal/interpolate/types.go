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

// Package interpolate expands ${VAR} and ${VAR:default} references inside
// configuration strings.
package interpolate

import (
	"fmt"
	"io"
	"strings"
)

// A String is a parsed configuration value: a sequence of literal text and
// variable references, in order.
type String []term

type term interface {
	render(VariableResolver) (string, error)
}

type literal string

func (l literal) render(VariableResolver) (string, error) { return string(l), nil }

type variable struct {
	Name       string
	Default    string
	HasDefault bool
}

func (v variable) render(resolve VariableResolver) (string, error) {
	if val, ok := resolve(v.Name); ok {
		return val, nil
	}
	if v.HasDefault {
		return v.Default, nil
	}
	return "", errUnknownVariable{Name: v.Name}
}

// VariableResolver looks up the value of a variable. It reports false when
// the variable is not set, in which case the reference's default is used.
type VariableResolver func(name string) (value string, ok bool)

// Render expands every variable of s with resolve.
func (s String) Render(resolve VariableResolver) (string, error) {
	var sb strings.Builder
	if err := s.RenderTo(&sb, resolve); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo writes the expansion of s to w.
func (s String) RenderTo(w io.Writer, resolve VariableResolver) error {
	for _, t := range s {
		value, err := t.render(resolve)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, value); err != nil {
			return err
		}
	}
	return nil
}

type errUnknownVariable struct{ Name string }

func (e errUnknownVariable) Error() string {
	return fmt.Sprintf("variable %q does not have a value or a default", e.Name)
}
