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

	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/atomic"
)

// InstanceKey identifies a cached proxy.
type InstanceKey struct {
	Contract reflect.Type
	Variant  proxy.Variant
	Identity string
}

// InstanceCache holds long-lived proxies so that callers asking for the
// same contract, variant and destination share one proxy.
//
// Unbounded caches use the same lock-free read path as TypeCache. Bounded
// caches evict the least recently used proxy; evicted proxies are not
// closed since callers may still hold them.
type InstanceCache struct {
	mu      sync.Mutex
	proxies atomic.Value // map[InstanceKey]*proxy.Proxy
	lru     *lru.Cache
}

// NewInstanceCache returns an InstanceCache, bounded if size is positive.
func NewInstanceCache(size int) (*InstanceCache, error) {
	c := &InstanceCache{}
	if size > 0 {
		cache, err := lru.New(size)
		if err != nil {
			return nil, err
		}
		c.lru = cache
	}
	return c, nil
}

// Load returns the proxy cached under key.
func (c *InstanceCache) Load(key InstanceKey) (*proxy.Proxy, bool) {
	if c.lru != nil {
		v, ok := c.lru.Get(key)
		if !ok {
			return nil, false
		}
		return v.(*proxy.Proxy), true
	}
	p, ok := c.published()[key]
	return p, ok
}

// GetOrCreate returns the proxy cached under key, building it first if it
// is missing. created reports whether build ran. Build failures are not
// cached.
func (c *InstanceCache) GetOrCreate(key InstanceKey, build func() (*proxy.Proxy, error)) (p *proxy.Proxy, created bool, err error) {
	if p, ok := c.Load(key); ok {
		return p, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.Load(key); ok {
		return p, false, nil
	}

	p, err = build()
	if err != nil {
		return nil, false, err
	}

	if c.lru != nil {
		c.lru.Add(key, p)
		return p, true, nil
	}

	old := c.published()
	next := make(map[InstanceKey]*proxy.Proxy, len(old)+1)
	for k, existing := range old {
		next[k] = existing
	}
	next[key] = p
	c.proxies.Store(next)
	return p, true, nil
}

// Remove drops the proxy cached under key and returns it.
func (c *InstanceCache) Remove(key InstanceKey) (*proxy.Proxy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lru != nil {
		v, ok := c.lru.Peek(key)
		if !ok {
			return nil, false
		}
		c.lru.Remove(key)
		return v.(*proxy.Proxy), true
	}

	old := c.published()
	p, ok := old[key]
	if !ok {
		return nil, false
	}
	next := make(map[InstanceKey]*proxy.Proxy, len(old))
	for k, existing := range old {
		if k != key {
			next[k] = existing
		}
	}
	c.proxies.Store(next)
	return p, true
}

// Drain empties the cache and returns the proxies it held.
func (c *InstanceCache) Drain() []*proxy.Proxy {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*proxy.Proxy
	if c.lru != nil {
		for _, k := range c.lru.Keys() {
			if v, ok := c.lru.Peek(k); ok {
				out = append(out, v.(*proxy.Proxy))
			}
		}
		c.lru.Purge()
		return out
	}

	for _, p := range c.published() {
		out = append(out, p)
	}
	c.proxies.Store(map[InstanceKey]*proxy.Proxy{})
	return out
}

// Len returns the number of cached proxies.
func (c *InstanceCache) Len() int {
	if c.lru != nil {
		return c.lru.Len()
	}
	return len(c.published())
}

func (c *InstanceCache) published() map[InstanceKey]*proxy.Proxy {
	m, _ := c.proxies.Load().(map[InstanceKey]*proxy.Proxy)
	return m
}
