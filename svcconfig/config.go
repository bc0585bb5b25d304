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

// Package svcconfig loads client configuration: named endpoints that
// destinations may refer to, cache bounds and log levels.
//
// Configuration is usually read from YAML:
//
//	endpoints:
//	  calculator:
//	    contract: example.com/calc.Calculator
//	    binding: http
//	    address: http://127.0.0.1:${CALC_PORT:8080}/calc
//	    timeout: 2s
//	cache:
//	  factories: 0
//	  instances: 0
//	logging:
//	  levels:
//	    success: debug
//	    swallowed: warn
//
// Every key of an endpoint other than contract, binding and address is an
// attribute handed to the binding. String values of endpoints may refer to
// environment variables with ${NAME} or ${NAME:default}.
package svcconfig

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"github.com/askguanyu/CodePlexDevLib-sub007/internal/config"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// Config is the loaded client configuration.
type Config struct {
	Endpoints map[string]Endpoint
	Cache     Cache
	Logging   Logging
}

// Endpoint is a named destination: a binding type, its attributes and an
// address.
type Endpoint struct {
	// Name is the key of the endpoint in the configuration.
	Name string
	// Contract is the fully-qualified contract name the endpoint serves.
	// Optional; endpoints with a contract may be used as its default.
	Contract string
	// Binding is the binding type name, such as "http".
	Binding string
	// Address is the address of the service. Optional; destinations may
	// supply their own.
	Address string
	// Attributes are handed to the binding.
	Attributes config.AttributeMap
}

// Cache bounds the client caches. Zero means unbounded.
type Cache struct {
	Factories int `config:"factories"`
	Instances int `config:"instances"`
}

// Logging overrides the levels calls are logged at.
type Logging struct {
	Levels Levels `config:"levels"`
}

// Levels holds a log level per call outcome. Nil levels keep their
// defaults.
type Levels struct {
	Success    *zapcore.Level
	Propagated *zapcore.Level
	Swallowed  *zapcore.Level
	Translated *zapcore.Level
}

// VariableResolver looks up the value of a variable.
type VariableResolver func(name string) (value string, ok bool)

type options struct {
	resolver VariableResolver
}

// Option customizes loading.
type Option func(*options)

// WithResolver resolves ${VAR} references with r instead of the process
// environment.
func WithResolver(r VariableResolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// Load builds a Config from a map[string]interface{} or
// map[interface{}]interface{}.
func Load(data interface{}, opts ...Option) (*Config, error) {
	o := options{resolver: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}

	var raw rawConfig
	if err := config.DecodeInto(&raw, data, config.InterpolateWith(o.resolver.interpolateResolver())); err != nil {
		return nil, err
	}

	cfg := &Config{
		Endpoints: make(map[string]Endpoint, len(raw.Endpoints)),
		Cache:     raw.Cache,
		Logging: Logging{Levels: Levels{
			Success:    (*zapcore.Level)(raw.Logging.Levels.Success),
			Propagated: (*zapcore.Level)(raw.Logging.Levels.Propagated),
			Swallowed:  (*zapcore.Level)(raw.Logging.Levels.Swallowed),
			Translated: (*zapcore.Level)(raw.Logging.Levels.Translated),
		}},
	}

	var err error
	for name, attrs := range raw.Endpoints {
		e, perr := parseEndpoint(name, attrs, o.resolver)
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		cfg.Endpoints[name] = e
	}
	if raw.Cache.Factories < 0 || raw.Cache.Instances < 0 {
		err = multierr.Append(err, fmt.Errorf("cache sizes must not be negative, got %+v", raw.Cache))
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadYAML builds a Config from YAML.
func LoadYAML(r io.Reader, opts ...Option) (*Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return Load(data, opts...)
}

// LoadFile builds a Config from a YAML file.
func LoadFile(path string, opts ...Option) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f, opts...)
}

// Endpoint returns the endpoint with the given name.
func (c *Config) Endpoint(name string) (Endpoint, bool) {
	if c == nil {
		return Endpoint{}, false
	}
	e, ok := c.Endpoints[name]
	return e, ok
}

// DefaultEndpoint returns the only endpoint declared for the contract. It
// fails if there is none or more than one.
func (c *Config) DefaultEndpoint(contractName string) (Endpoint, error) {
	var matches []string
	if c != nil {
		for name, e := range c.Endpoints {
			if e.Contract == contractName {
				matches = append(matches, name)
			}
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return Endpoint{}, fmt.Errorf("no endpoint is configured for contract %q", contractName)
	case 1:
		return c.Endpoints[matches[0]], nil
	default:
		return Endpoint{}, fmt.Errorf(
			"endpoints %q are all configured for contract %q, name one of them", matches, contractName)
	}
}

// Names returns the endpoint names, sorted.
func (c *Config) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Endpoints))
	for name := range c.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
