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

package cache

import (
	"reflect"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	"go.uber.org/atomic"
)

// TypeKey identifies a proxy type.
type TypeKey struct {
	Contract reflect.Type
	Variant  proxy.Variant
}

// TypeCache holds the proxy type of every contract and variant pair in use.
//
// Reads are lock-free: the cache publishes an immutable map that is
// replaced, under a lock, whenever a type is added. Generation happens
// under that lock, so each pair is generated once.
type TypeCache struct {
	mu       sync.Mutex
	types    atomic.Value // map[TypeKey]*proxy.Type
	generate func(*contract.Contract, proxy.Variant) (*proxy.Type, error)
}

// NewTypeCache returns an empty TypeCache.
func NewTypeCache() *TypeCache {
	return &TypeCache{generate: proxy.Generate}
}

// Load returns the cached type for a contract and variant.
func (c *TypeCache) Load(ct *contract.Contract, v proxy.Variant) (*proxy.Type, bool) {
	t, ok := c.published()[TypeKey{Contract: ct.Type(), Variant: v}]
	return t, ok
}

// GetOrGenerate returns the proxy type for a contract and variant,
// generating it on first use. generated reports whether this call produced
// the type. Failures are not cached; the next call tries again.
func (c *TypeCache) GetOrGenerate(ct *contract.Contract, v proxy.Variant) (t *proxy.Type, generated bool, err error) {
	if t, ok := c.Load(ct, v); ok {
		return t, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.Load(ct, v); ok {
		return t, false, nil
	}

	t, err = c.generate(ct, v)
	if err != nil {
		return nil, false, err
	}

	old := c.published()
	next := make(map[TypeKey]*proxy.Type, len(old)+1)
	for k, existing := range old {
		next[k] = existing
	}
	next[TypeKey{Contract: ct.Type(), Variant: v}] = t
	c.types.Store(next)
	return t, true, nil
}

// Len returns the number of cached types.
func (c *TypeCache) Len() int {
	return len(c.published())
}

func (c *TypeCache) published() map[TypeKey]*proxy.Type {
	m, _ := c.types.Load().(map[TypeKey]*proxy.Type)
	return m
}
