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

package svcconfig

import (
	"fmt"

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/interpolate"
	"github.com/uber-go/mapdecode"
	"go.uber.org/zap/zapcore"
)

type rawConfig struct {
	Endpoints map[string]config.AttributeMap `config:"endpoints"`
	Cache     Cache                          `config:"cache"`
	Logging   struct {
		Levels struct {
			Success    *zapLevel `config:"success,interpolate"`
			Propagated *zapLevel `config:"propagated,interpolate"`
			Swallowed  *zapLevel `config:"swallowed,interpolate"`
			Translated *zapLevel `config:"translated,interpolate"`
		} `config:"levels"`
	} `config:"logging"`
}

type zapLevel zapcore.Level

// mapdecode doesn't support encoding.TextUnmarshaler by default so we have
// to do this manually.
func (l *zapLevel) Decode(into mapdecode.Into) error {
	var s string
	if err := into(&s); err != nil {
		return fmt.Errorf("could not decode Zap log level: %v", err)
	}

	if err := (*zapcore.Level)(l).UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("could not decode Zap log level: %v", err)
	}
	return nil
}

func (r VariableResolver) interpolateResolver() interpolate.VariableResolver {
	return interpolate.VariableResolver(r)
}

func parseEndpoint(name string, attrs config.AttributeMap, resolver VariableResolver) (Endpoint, error) {
	e := Endpoint{Name: name, Attributes: make(config.AttributeMap, len(attrs))}
	for k, v := range attrs {
		s, ok := v.(string)
		if !ok {
			e.Attributes[k] = v
			continue
		}
		rendered, err := render(s, resolver)
		if err != nil {
			return Endpoint{}, fmt.Errorf("endpoint %q: attribute %q: %v", name, k, err)
		}
		e.Attributes[k] = rendered
	}

	var err error
	if e.Contract, err = e.Attributes.PopString("contract"); err != nil {
		return Endpoint{}, fmt.Errorf("endpoint %q: %v", name, err)
	}
	if e.Binding, err = e.Attributes.PopString("binding"); err != nil {
		return Endpoint{}, fmt.Errorf("endpoint %q: %v", name, err)
	}
	if e.Address, err = e.Attributes.PopString("address"); err != nil {
		return Endpoint{}, fmt.Errorf("endpoint %q: %v", name, err)
	}
	if e.Binding == "" {
		return Endpoint{}, fmt.Errorf("endpoint %q: binding is required", name)
	}
	return e, nil
}

func render(s string, resolver VariableResolver) (string, error) {
	parsed, err := interpolate.Parse(s)
	if err != nil {
		return "", fmt.Errorf("failed to parse %q for interpolation: %v", s, err)
	}
	return parsed.Render(resolver.interpolateResolver())
}
